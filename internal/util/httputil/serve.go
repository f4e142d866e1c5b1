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

package httputil

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/alexandremahdhaoui/machina/internal/util/gracefulshutdown"
)

type contextKey string

// ServerNameContextKey holds the name of the server a request was received by.
const ServerNameContextKey contextKey = "serverName"

// ShutdownTimeout bounds the time given to in-flight requests once shutdown started.
var ShutdownTimeout = time.Minute

// Serve runs the given servers until gs is shut down. A server carrying a TLSConfig serves TLS with the certificates
// of that config. A server failing to listen initiates a shutdown with exit code 1.
func Serve(servers map[string]*http.Server, gs *gracefulshutdown.GracefulShutdown) {
	for name, server := range servers {
		ctx := context.WithValue(gs.Context(), ServerNameContextKey, name)

		server.BaseContext = func(_ net.Listener) context.Context {
			return ctx
		}

		// One for the listener, one for the drain.
		gs.WaitGroup().Add(2)

		go func() {
			var err error
			if server.TLSConfig != nil {
				err = server.ListenAndServeTLS("", "")
			} else {
				err = server.ListenAndServe()
			}

			gs.WaitGroup().Done()

			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.ErrorContext(ctx, "❌ received error", "server", name, "error", err.Error())
				gs.Shutdown(1)

				return
			}

			gs.Shutdown(0)
		}()

		go func() {
			defer gs.WaitGroup().Done()

			<-gs.Context().Done()

			shutdownCtx, cancel := context.WithTimeout(
				context.WithValue(context.Background(), ServerNameContextKey, name),
				ShutdownTimeout,
			)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.ErrorContext(shutdownCtx, "❌ shutting down server", "server", name, "error", err.Error())

				return
			}

			slog.InfoContext(shutdownCtx, "✅ gracefully shut down server", "server", name)
		}()
	}

	gs.Ready()

	<-gs.Context().Done()
}
