// Copyright 2026 The requests Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"crypto/tls"
	"crypto/x509"

	"github.com/gogama/requests/request"
)

// TLSConfig returns the TLS client configuration implementing the trust
// policy of r for a server named serverName.
//
// If r.Verify is false, every certificate chain and host name is
// accepted. Otherwise, if r.Certs is non-empty, only chains rooted in
// exactly those certificates are trusted. Otherwise the platform roots
// are used.
func TLSConfig(r *request.Request, serverName string) *tls.Config {
	cfg := &tls.Config{
		ServerName: serverName,
		NextProtos: []string{"http/1.1"},
	}
	switch {
	case !r.Verify:
		cfg.InsecureSkipVerify = true
	case len(r.Certs) > 0:
		pool := x509.NewCertPool()
		for _, cert := range r.Certs {
			pool.AddCert(cert)
		}
		cfg.RootCAs = pool
	}
	return cfg
}

// proxyTLSConfig returns the TLS client configuration for the
// connection to an https proxy named serverName. Certificates pinned
// in r.Certs apply to the target only, so the proxy is verified against
// the platform roots unless r.Verify is false.
func proxyTLSConfig(r *request.Request, serverName string) *tls.Config {
	return &tls.Config{
		ServerName:         serverName,
		NextProtos:         []string{"http/1.1"},
		InsecureSkipVerify: !r.Verify,
	}
}
