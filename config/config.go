// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads client defaults from a YAML or TOML file and
// applies them to requests.
//
// A defaults file in YAML looks like this:
//
//	user_agent: inventory-sync/2.1
//	connect_timeout: 5s
//	read_timeout: 30s
//	verify: true
//	follow_redirect: false
//	proxy: socks5://127.0.0.1:1080
//	headers:
//	  - name: Accept
//	    value: application/json
//
// The same file in TOML:
//
//	user_agent = "inventory-sync/2.1"
//	connect_timeout = "5s"
//	read_timeout = "30s"
//	verify = true
//	follow_redirect = false
//	proxy = "socks5://127.0.0.1:1080"
//
//	[[headers]]
//	name = "Accept"
//	value = "application/json"
//
// Every setting is optional. Settings left out of the file leave the
// request's own value alone.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogama/requests/request"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// A Format names a configuration file syntax.
type Format string

const (
	// YAML is the format of files ending in ".yaml" or ".yml".
	YAML Format = "yaml"
	// TOML is the format of files ending in ".toml".
	TOML Format = "toml"
)

// Config holds request defaults. The zero value changes nothing.
type Config struct {
	// UserAgent replaces the request's User-Agent unless empty.
	UserAgent string `yaml:"user_agent" toml:"user_agent"`

	// ConnectTimeout and ReadTimeout replace the request's timeouts
	// when set. An explicit "0s" disables the timeout.
	ConnectTimeout *Duration `yaml:"connect_timeout" toml:"connect_timeout"`
	ReadTimeout    *Duration `yaml:"read_timeout" toml:"read_timeout"`

	Verify         *bool `yaml:"verify" toml:"verify"`
	Compress       *bool `yaml:"compress" toml:"compress"`
	KeepAlive      *bool `yaml:"keep_alive" toml:"keep_alive"`
	FollowRedirect *bool `yaml:"follow_redirect" toml:"follow_redirect"`

	// Proxy is an http, https or socks5 proxy URL.
	Proxy string `yaml:"proxy" toml:"proxy"`

	// Charset names the request body encoding, for example
	// "iso-8859-1".
	Charset string `yaml:"charset" toml:"charset"`

	// Headers are added to every request, in order, unless the request
	// already has a header of the same name.
	Headers []Field `yaml:"headers" toml:"headers"`
}

// A Field is a header name and value.
type Field struct {
	Name  string `yaml:"name" toml:"name"`
	Value string `yaml:"value" toml:"value"`
}

// Duration is a time.Duration written in configuration files in the
// syntax of time.ParseDuration, for example "1m30s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler, used by the TOML
// decoder.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Load reads the configuration file at path. The format is chosen by
// the file extension.
func Load(path string) (*Config, error) {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = YAML
	case ".toml":
		format = TOML
	default:
		return nil, fmt.Errorf("requests/config: unknown format of %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("requests/config: %w", err)
	}
	c, err := parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("requests/config: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes configuration data in the given format and validates
// it. Unknown keys are an error.
func Parse(data []byte, format Format) (*Config, error) {
	c, err := parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("requests/config: %w", err)
	}
	return c, nil
}

func parse(data []byte, format Format) (*Config, error) {
	var c Config
	var err error
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// A document with no content decodes to io.EOF.
		if err = dec.Decode(&c); errors.Is(err, io.EOF) {
			err = nil
		}
	case TOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&c)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if err = c.check(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the proxy URL, charset, timeouts and header fields.
func (c *Config) Validate() error {
	if err := c.check(); err != nil {
		return fmt.Errorf("requests/config: %w", err)
	}
	return nil
}

func (c *Config) check() error {
	if _, err := c.proxyURL(); err != nil {
		return err
	}
	if c.Charset != "" {
		if _, err := request.LookupCharset(c.Charset); err != nil {
			return err
		}
	}
	for _, f := range c.Headers {
		if f.Name == "" {
			return errors.New("header with empty name")
		}
	}
	if c.ConnectTimeout != nil && *c.ConnectTimeout < 0 {
		return errors.New("negative connect_timeout")
	}
	if c.ReadTimeout != nil && *c.ReadTimeout < 0 {
		return errors.New("negative read_timeout")
	}
	return nil
}

func (c *Config) proxyURL() (*url.URL, error) {
	if c.Proxy == "" {
		return nil, nil
	}
	u, err := url.Parse(c.Proxy)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "socks5", "socks5h":
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("no host in proxy URL %q", c.Proxy)
	}
	return u, nil
}

// Apply sets the configured defaults on r. It fails only if c is
// invalid, in which case r is unchanged.
func (c *Config) Apply(r *request.Request) error {
	if err := c.Validate(); err != nil {
		return err
	}
	proxy, _ := c.proxyURL()
	if c.UserAgent != "" {
		r.UserAgent = c.UserAgent
	}
	if c.ConnectTimeout != nil {
		r.ConnectTimeout = time.Duration(*c.ConnectTimeout)
	}
	if c.ReadTimeout != nil {
		r.ReadTimeout = time.Duration(*c.ReadTimeout)
	}
	if c.Verify != nil {
		r.Verify = *c.Verify
	}
	if c.Compress != nil {
		r.Compress = *c.Compress
	}
	if c.KeepAlive != nil {
		r.KeepAlive = *c.KeepAlive
	}
	if c.FollowRedirect != nil {
		r.FollowRedirect = *c.FollowRedirect
	}
	if proxy != nil {
		r.Proxy = proxy
	}
	if c.Charset != "" {
		r.Charset = c.Charset
	}
	for _, f := range c.Headers {
		if !r.Header.Has(f.Name) {
			r.Header.Add(f.Name, f.Value)
		}
	}
	return nil
}
