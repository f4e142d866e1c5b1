//go:build unit

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

package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/alexandremahdhaoui/machina/internal/types"
	"github.com/alexandremahdhaoui/machina/internal/util/certutil"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, "machina-api", Name)
	assert.Equal(t, "MACHINA_CONFIG_PATH", ConfigPathEnvKey)
}

func newTestConfig(t *testing.T, storeKind string) *Config {
	t.Helper()

	config := &Config{}
	config.Driver.BaseDir = t.TempDir()
	config.Driver.Tart.VMHome = t.TempDir()
	config.Store.Kind = storeKind
	require.NoError(t, config.SetDefaults())
	require.NoError(t, config.Validate())

	return config
}

func serve(t *testing.T, server *http.Server, method, path string, auth ...string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if len(auth) == 2 {
		req.SetBasicAuth(auth[0], auth[1])
	}

	rr := httptest.NewRecorder()
	server.Handler.ServeHTTP(rr, req)

	return rr
}

func TestNewApp(t *testing.T) {
	ctx := context.Background()

	t.Run("Bolt store and servers", func(t *testing.T) {
		config := newTestConfig(t, StoreKindBolt)
		reg := prometheus.NewRegistry()

		a, err := newApp(ctx, config, logr.Discard(), reg, reg)
		require.NoError(t, err)
		t.Cleanup(func() { assert.NoError(t, a.close()) })

		assert.FileExists(t, filepath.Join(config.Driver.BaseDir, "machina.db"))
		assert.Nil(t, a.api.TLSConfig)

		rr := serve(t, a.api, http.MethodGet, "/machines")
		assert.Equal(t, http.StatusOK, rr.Code)

		var list []types.Machine
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
		assert.Empty(t, list)

		rr = serve(t, a.api, http.MethodGet, "/machine/i-000000000000")
		assert.Equal(t, http.StatusNotFound, rr.Code)

		assert.Equal(t, http.StatusOK, serve(t, a.probes, http.MethodGet, "/healthz").Code)
		assert.Equal(t, http.StatusOK, serve(t, a.probes, http.MethodGet, "/readyz").Code)

		rr = serve(t, a.metrics, http.MethodGet, "/metrics")
		assert.Equal(t, http.StatusOK, rr.Code)

		body, err := io.ReadAll(rr.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "machina_forced_stops_total")
	})

	t.Run("Readiness fails once the store is closed", func(t *testing.T) {
		config := newTestConfig(t, StoreKindBolt)
		reg := prometheus.NewRegistry()

		a, err := newApp(ctx, config, logr.Discard(), reg, reg)
		require.NoError(t, err)
		require.NoError(t, a.close())

		assert.Equal(t, http.StatusServiceUnavailable, serve(t, a.probes, http.MethodGet, "/readyz").Code)
	})

	t.Run("Basic auth", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("s3cr3t"), bcrypt.MinCost)
		require.NoError(t, err)

		config := newTestConfig(t, StoreKindMemory)
		config.APIServer.BasicAuth = BasicAuthConfig{Username: "admin", PasswordHash: string(hash)}
		reg := prometheus.NewRegistry()

		a, err := newApp(ctx, config, logr.Discard(), reg, reg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = a.close() })

		assert.Equal(t, http.StatusUnauthorized, serve(t, a.api, http.MethodGet, "/machines").Code)
		assert.Equal(t, http.StatusUnauthorized, serve(t, a.api, http.MethodGet, "/machines", "admin", "nope").Code)
		assert.Equal(t, http.StatusOK, serve(t, a.api, http.MethodGet, "/machines", "admin", "s3cr3t").Code)
	})

	t.Run("TLS", func(t *testing.T) {
		ca, err := certutil.NewCA()
		require.NoError(t, err)

		paths, err := ca.WriteKeyPair(t.TempDir(), "localhost")
		require.NoError(t, err)

		config := newTestConfig(t, StoreKindMemory)
		config.APIServer.TLS.Enabled = true
		config.APIServer.TLS.CertPath = paths.Cert
		config.APIServer.TLS.KeyPath = paths.Key
		reg := prometheus.NewRegistry()

		a, err := newApp(ctx, config, logr.Discard(), reg, reg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = a.close() })

		assert.NotNil(t, a.api.TLSConfig)
	})

	t.Run("Invalid TLS releases the store", func(t *testing.T) {
		config := newTestConfig(t, StoreKindBolt)
		config.APIServer.TLS.Enabled = true
		config.APIServer.TLS.CertPath = filepath.Join(t.TempDir(), "absent.crt")
		reg := prometheus.NewRegistry()

		_, err := newApp(ctx, config, logr.Discard(), reg, reg)
		require.Error(t, err)

		// A second open only succeeds once the first handle on the database was closed.
		reg = prometheus.NewRegistry()
		config.APIServer.TLS.Enabled = false

		a, err := newApp(ctx, config, logr.Discard(), reg, reg)
		require.NoError(t, err)
		assert.NoError(t, a.close())
	})

	t.Run("Missing public key", func(t *testing.T) {
		config := newTestConfig(t, StoreKindMemory)
		config.CloudInit.DefaultUsers = []CloudInitUser{
			{Name: "builder", PublicKeyPaths: []string{filepath.Join(t.TempDir(), "id.pub")}},
		}
		reg := prometheus.NewRegistry()

		_, err := newApp(ctx, config, logr.Discard(), reg, reg)
		assert.Error(t, err)
	})
}
