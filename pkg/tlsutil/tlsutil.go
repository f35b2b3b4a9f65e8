// Package tlsutil provides TLS configuration utilities for secure client
// connections to the source database.
package tlsutil

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/c360/featureflow/errors"
)

// ClientConfig describes the TLS requirements of an outbound connection.
type ClientConfig struct {
	// CAFile is an additional trusted CA bundle in PEM format. The system
	// CA pool is always trusted first.
	CAFile string `json:"ca_file,omitempty"`

	// MinVersion is "1.2" or "1.3"; empty defaults to 1.2.
	MinVersion string `json:"min_version,omitempty"`

	// InsecureSkipVerify disables certificate verification. Development
	// and testing only.
	InsecureSkipVerify bool `json:"insecure_skip_verify,omitempty"`
}

// LoadClientTLSConfig creates a tls.Config from client settings.
// Always uses the system CA bundle first; CAFile adds trusted CAs.
func LoadClientTLSConfig(cfg ClientConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion: parseTLSVersion(cfg.MinVersion),
	}

	rootCAs, err := x509.SystemCertPool()
	if err != nil {
		// If system pool unavailable, create empty pool
		rootCAs = x509.NewCertPool()
	}

	if cfg.CAFile != "" {
		caPEM, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, errors.WrapFatal(err, "tlsutil", "LoadClientTLSConfig",
				fmt.Sprintf("read CA file %s", cfg.CAFile))
		}
		if !rootCAs.AppendCertsFromPEM(caPEM) {
			return nil, errors.WrapFatal(
				fmt.Errorf("invalid PEM data"),
				"tlsutil",
				"LoadClientTLSConfig",
				fmt.Sprintf("parse CA certificate from %s", cfg.CAFile),
			)
		}
	}

	tlsConfig.RootCAs = rootCAs

	// Note: Setting this is intentional via config - operators know the security implications
	if cfg.InsecureSkipVerify {
		tlsConfig.InsecureSkipVerify = true
	}

	return tlsConfig, nil
}

// parseTLSVersion converts version string to crypto/tls constant
// Returns tls.VersionTLS12 if empty or invalid
func parseTLSVersion(version string) uint16 {
	switch version {
	case "1.3":
		return tls.VersionTLS13
	case "1.2":
		return tls.VersionTLS12
	default:
		return tls.VersionTLS12 // Safe default
	}
}
