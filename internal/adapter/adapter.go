package adapter

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

var ErrInvalidCA = errors.New("failed to parse CA certificate")

// A MakeTLSConfig returns [*tls.Config] for mutual TLS with the broker and
// the schema registry.
//
// All args are the filepaths. An empty ca means plaintext and returns nil.
func MakeTLSConfig(ca, cert, key string) (*tls.Config, error) {
	const op = "adapter.MakeTLSConfig"

	if ca == "" {
		return nil, nil
	}

	caCert, err := os.ReadFile(ca)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: failed to read CA certificate file: %w", op, err,
		)
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCA)
	}

	cfg := &tls.Config{
		RootCAs:    caCertPool,
		MinVersion: tls.VersionTLS12,
	}

	if cert == "" && key == "" {
		return cfg, nil
	}

	clientCert, err := tls.LoadX509KeyPair(cert, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cfg.Certificates = []tls.Certificate{clientCert}
	return cfg, nil
}
