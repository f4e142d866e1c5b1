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

package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexandremahdhaoui/machina/internal/driver/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIPMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name:       "X-Forwarded-For first entry",
			headers:    map[string]string{"X-Forwarded-For": " 10.0.0.1 , 10.0.0.2", "X-Real-IP": "10.0.0.3"},
			remoteAddr: "192.168.1.1:1234",
			expected:   "10.0.0.1",
		},
		{
			name:       "X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "10.0.0.3"},
			remoteAddr: "192.168.1.1:1234",
			expected:   "10.0.0.3",
		},
		{
			name:       "RemoteAddr IPv6",
			remoteAddr: "[::1]:1234",
			expected:   "::1",
		},
		{
			name:       "RemoteAddr without port",
			remoteAddr: "192.168.1.1",
			expected:   "192.168.1.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var actual string

			handler := server.ClientIPMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				actual = server.GetClientIP(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/machines", nil)
			req.RemoteAddr = tt.remoteAddr

			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			handler.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.expected, actual)
		})
	}

	assert.Empty(t, server.GetClientIP(context.Background()))
}

func TestLoggingMiddleware(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	buf := &bytes.Buffer{}
	slog.SetDefault(slog.New(slog.NewJSONHandler(buf, nil)))

	handler := server.ClientIPMiddleware(server.LoggingMiddleware(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
	))

	req := httptest.NewRequest(http.MethodGet, "/machines", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTeapot, rr.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "served request", line["msg"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/machines", line["path"])
	assert.InDelta(t, http.StatusTeapot, line["status"], 0)
	assert.Equal(t, "10.1.2.3", line["client_ip"])
}
