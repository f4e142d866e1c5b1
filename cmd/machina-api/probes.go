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
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexandremahdhaoui/machina/internal/adapter"
)

// setupProbesServer creates an HTTP server for health probes. The readiness probe fails while the store cannot list
// its records.
func setupProbesServer(config *Config, store adapter.MachineStore) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc(config.ProbesServer.LivenessPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc(config.ProbesServer.ReadinessPath, func(w http.ResponseWriter, r *http.Request) {
		if _, err := store.List(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "readiness probe failed", "error", err.Error())
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)

			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &http.Server{ //nolint:exhaustruct
		Addr:              fmt.Sprintf(":%d", config.ProbesServer.Port),
		Handler:           mux,
		ReadHeaderTimeout: time.Second,
	}
}
