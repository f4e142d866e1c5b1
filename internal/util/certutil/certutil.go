/*
Copyright 2024 Alexandre Mahdhaoui

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package certutil issues short-lived certificates for tests of the TLS code paths.
package certutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"
)

const (
	CAFileName   = "ca.crt"
	CertFileName = "tls.crt"
	KeyFileName  = "tls.key"

	organization = "machina test only"
	validity     = 2 * time.Hour
)

var (
	ErrCreateCA       = errors.New("creating certificate authority")
	ErrIssueCert      = errors.New("issuing certificate")
	ErrWriteKeyPair   = errors.New("writing key pair")
	errGenerateKey    = errors.New("generating private key")
	errSignCert       = errors.New("signing certificate")
	errMarshalKey     = errors.New("marshaling private key")
	errGenerateSerial = errors.New("generating serial number")
)

// ------------------------------------------------------- CA ------------------------------------------------------- //

// CA is a self-signed certificate authority.
type CA struct {
	key      *ecdsa.PrivateKey
	pool     *x509.CertPool
	rootCert *x509.Certificate
}

// NewCA creates a new CA.
func NewCA() (*CA, error) {
	serial, err := newSerial()
	if err != nil {
		return nil, errors.Join(err, ErrCreateCA)
	}

	template := &x509.Certificate{
		Subject:               pkix.Name{Organization: []string{organization}},
		SerialNumber:          serial,
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(validity),
		IsCA:                  true,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
	}

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, errors.Join(err, errGenerateKey, ErrCreateCA)
	}

	raw, err := x509.CreateCertificate(rand.Reader, template, template, key.Public(), key)
	if err != nil {
		return nil, errors.Join(err, errSignCert, ErrCreateCA)
	}

	root, err := x509.ParseCertificate(raw)
	if err != nil {
		return nil, errors.Join(err, ErrCreateCA)
	}

	pool := x509.NewCertPool()
	pool.AddCert(root)

	return &CA{
		key:      key,
		pool:     pool,
		rootCert: root,
	}, nil
}

// Pool returns a pool trusting the CA.
func (ca *CA) Pool() *x509.CertPool {
	return ca.pool
}

// Cert returns the CA's root certificate in PEM format.
func (ca *CA) Cert() []byte {
	return certToPEM(ca.rootCert)
}

// ------------------------------------------------ CertifiedKeypair ------------------------------------------------ //

// NewCertifiedKey issues a key and a certificate valid for hosts. Hosts parsing as IP addresses become IP SANs.
func (ca *CA) NewCertifiedKey(hosts ...string) (*ecdsa.PrivateKey, *x509.Certificate, error) {
	serial, err := newSerial()
	if err != nil {
		return nil, nil, errors.Join(err, ErrIssueCert)
	}

	template := &x509.Certificate{
		Subject:      pkix.Name{Organization: []string{organization}},
		SerialNumber: serial,
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(validity),
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}

	for _, h := range hosts {
		if ip := net.ParseIP(h); ip != nil {
			template.IPAddresses = append(template.IPAddresses, ip)
		} else {
			template.DNSNames = append(template.DNSNames, h)
		}
	}

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, errors.Join(err, errGenerateKey, ErrIssueCert)
	}

	raw, err := x509.CreateCertificate(rand.Reader, template, ca.rootCert, key.Public(), ca.key)
	if err != nil {
		return nil, nil, errors.Join(err, errSignCert, ErrIssueCert)
	}

	cert, err := x509.ParseCertificate(raw)
	if err != nil {
		return nil, nil, errors.Join(err, ErrIssueCert)
	}

	return key, cert, nil
}

// NewCertifiedKeyPEM is NewCertifiedKey with PEM encoded results.
func (ca *CA) NewCertifiedKeyPEM(hosts ...string) (key []byte, cert []byte, err error) {
	k, c, err := ca.NewCertifiedKey(hosts...)
	if err != nil {
		return nil, nil, err
	}

	keyPEM, err := privateKeyToPEM(k)
	if err != nil {
		return nil, nil, errors.Join(err, ErrIssueCert)
	}

	return keyPEM, certToPEM(c), nil
}

// Paths locates the files written by WriteKeyPair.
type Paths struct {
	CA   string
	Cert string
	Key  string
}

// WriteKeyPair issues a key pair for hosts and writes it with the CA certificate into dir.
func (ca *CA) WriteKeyPair(dir string, hosts ...string) (Paths, error) {
	key, cert, err := ca.NewCertifiedKeyPEM(hosts...)
	if err != nil {
		return Paths{}, errors.Join(err, ErrWriteKeyPair)
	}

	paths := Paths{
		CA:   filepath.Join(dir, CAFileName),
		Cert: filepath.Join(dir, CertFileName),
		Key:  filepath.Join(dir, KeyFileName),
	}

	for path, content := range map[string][]byte{
		paths.CA:   ca.Cert(),
		paths.Cert: cert,
		paths.Key:  key,
	} {
		if err := os.WriteFile(path, content, 0o600); err != nil {
			return Paths{}, errors.Join(err, ErrWriteKeyPair)
		}
	}

	return paths, nil
}

func newSerial() (*big.Int, error) {
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	if err != nil {
		return nil, errors.Join(err, errGenerateSerial)
	}

	return serial, nil
}

func privateKeyToPEM(key *ecdsa.PrivateKey) ([]byte, error) {
	kb, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, errors.Join(err, errMarshalKey)
	}

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: kb}), nil
}

func certToPEM(cert *x509.Certificate) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})
}
