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
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexandremahdhaoui/machina/internal/types"
	"golang.org/x/crypto/bcrypt"
)

const contentTypeJSON = "application/json"

// Validator reports whether the credentials of r are valid.
type Validator func(username, password string, r *http.Request) (bool, error)

// BasicAuth is a middleware that performs basic authentication.
func BasicAuth(next http.Handler, validator Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { //nolint:varnamelen
		// ok is false if the Authorization header is absent or malformed.
		username, password, ok := r.BasicAuth()
		if ok {
			if ok, err := validator(username, password, r); err != nil {
				slog.ErrorContext(r.Context(), "validating credentials", "error", err.Error())
				WriteError(w, http.StatusInternalServerError, err.Error())

				return
			} else if ok {
				next.ServeHTTP(w, r)
				return
			}
		}

		w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
		WriteError(w, http.StatusUnauthorized, types.MessageUnauthorized)
	}
}

// BcryptValidator returns a Validator accepting username with any password matching the bcrypt passwordHash.
func BcryptValidator(username, passwordHash string) Validator {
	return func(u, p string, _ *http.Request) (bool, error) {
		usernameOK := subtle.ConstantTimeCompare([]byte(u), []byte(username)) == 1

		err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(p))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		} else if err != nil {
			return false, err
		}

		return usernameOK, nil
	}
}

// WriteJSON writes v as the JSON body of a response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("writing json response", "error", err.Error())
	}
}

// WriteError writes {"error": message} with the given status.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, types.ErrorResponse{Error: message})
}
