//go:build unit

// Copyright 2024 Alexandre Mahdhaoui
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tlsutil_test

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandremahdhaoui/machina/internal/util/certutil"
	"github.com/alexandremahdhaoui/machina/internal/util/tlsutil"
)

func writeKeyPair(t *testing.T) certutil.Paths {
	t.Helper()

	ca, err := certutil.NewCA()
	require.NoError(t, err)

	paths, err := ca.WriteKeyPair(t.TempDir(), "localhost", "127.0.0.1")
	require.NoError(t, err)

	return paths
}

func TestBuildTLSConfig_Disabled(t *testing.T) {
	t.Parallel()

	for name, config := range map[string]*tlsutil.Config{
		"nil config":       nil,
		"enabled is false": {Enabled: false, CertPath: "/does/not/matter"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tlsConfig, err := tlsutil.BuildTLSConfig(config)
			assert.NoError(t, err)
			assert.Nil(t, tlsConfig)
		})
	}
}

func TestBuildTLSConfig_ClientAuth(t *testing.T) {
	t.Parallel()

	paths := writeKeyPair(t)

	tests := []struct {
		clientAuth string
		expected   tls.ClientAuthType
	}{
		{clientAuth: "", expected: tls.NoClientCert},
		{clientAuth: "none", expected: tls.NoClientCert},
		{clientAuth: "request", expected: tls.VerifyClientCertIfGiven},
		{clientAuth: "require", expected: tls.RequireAndVerifyClientCert},
	}

	for _, tt := range tests {
		t.Run(tt.clientAuth, func(t *testing.T) {
			t.Parallel()

			tlsConfig, err := tlsutil.BuildTLSConfig(&tlsutil.Config{
				Enabled:    true,
				ClientAuth: tt.clientAuth,
				CertPath:   paths.Cert,
				KeyPath:    paths.Key,
				CAPath:     paths.CA,
			})
			require.NoError(t, err)
			require.NotNil(t, tlsConfig)

			assert.Equal(t, tt.expected, tlsConfig.ClientAuth)
			assert.Equal(t, uint16(tls.VersionTLS12), tlsConfig.MinVersion)
			assert.Len(t, tlsConfig.Certificates, 1)

			if tt.expected == tls.NoClientCert {
				assert.Nil(t, tlsConfig.ClientCAs)
			} else {
				assert.NotNil(t, tlsConfig.ClientCAs)
			}
		})
	}
}

func TestBuildTLSConfig_Errors(t *testing.T) {
	t.Parallel()

	paths := writeKeyPair(t)
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.pem")
	require.NoError(t, os.WriteFile(garbage, []byte("not a pem"), 0o600))

	tests := []struct {
		name     string
		config   tlsutil.Config
		expected error
	}{
		{
			name:     "cert not found",
			config:   tlsutil.Config{CertPath: filepath.Join(dir, "absent.crt"), KeyPath: paths.Key},
			expected: tlsutil.ErrCertNotFound,
		},
		{
			name:     "key not found",
			config:   tlsutil.Config{CertPath: paths.Cert, KeyPath: filepath.Join(dir, "absent.key")},
			expected: tlsutil.ErrKeyNotFound,
		},
		{
			name:     "invalid client auth",
			config:   tlsutil.Config{CertPath: paths.Cert, KeyPath: paths.Key, ClientAuth: "maybe"},
			expected: tlsutil.ErrInvalidClientAuth,
		},
		{
			name: "CA not found",
			config: tlsutil.Config{
				CertPath: paths.Cert, KeyPath: paths.Key, ClientAuth: "require",
				CAPath: filepath.Join(dir, "absent-ca.crt"),
			},
			expected: tlsutil.ErrCANotFound,
		},
		{
			name:     "malformed key pair",
			config:   tlsutil.Config{CertPath: garbage, KeyPath: paths.Key},
			expected: tlsutil.ErrLoadCertFailed,
		},
		{
			name: "malformed CA",
			config: tlsutil.Config{
				CertPath: paths.Cert, KeyPath: paths.Key, ClientAuth: "request", CAPath: garbage,
			},
			expected: tlsutil.ErrParseCAFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.config.Enabled = true

			tlsConfig, err := tlsutil.BuildTLSConfig(&tt.config)
			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, tlsConfig)
		})
	}
}
