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

package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexandremahdhaoui/machina/internal/adapter"
	"github.com/alexandremahdhaoui/machina/internal/controller"
	"github.com/alexandremahdhaoui/machina/internal/types"
	"github.com/alexandremahdhaoui/machina/internal/util/httputil"
	"github.com/gorilla/mux"
)

// MaxRequestBodyBytes bounds the size of a create request.
const MaxRequestBodyBytes = 1 << 20

const idVar = "id"

// New returns the handler of the machine API.
func New(machine controller.Machine) http.Handler {
	s := &server{machine: machine}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(badRequest)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	r.HandleFunc("/machines", s.list).Methods(http.MethodGet)
	r.HandleFunc("/machine", s.create).Methods(http.MethodPost)
	r.HandleFunc("/machine/{id}", s.get).Methods(http.MethodGet)
	r.HandleFunc("/machine/{id}", notImplemented).Methods(http.MethodPut)
	r.HandleFunc("/machine/{id}", s.delete).Methods(http.MethodDelete)
	r.HandleFunc("/machine/{id}/start", s.start).Methods(http.MethodPost)
	r.HandleFunc("/machine/{id}/stop", s.stop).Methods(http.MethodPost)

	// Router-level middlewares do not wrap the NotFound and MethodNotAllowed handlers.
	return ClientIPMiddleware(LoggingMiddleware(r))
}

type server struct {
	machine controller.Machine
}

func (s *server) list(w http.ResponseWriter, r *http.Request) {
	machines, err := s.machine.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, machines)
}

func (s *server) get(w http.ResponseWriter, r *http.Request) {
	s.byID(w, r, http.StatusOK, s.machine.Get)
}

func (s *server) create(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes))
	dec.DisallowUnknownFields()

	var req types.MachineRequest
	if err := dec.Decode(&req); err != nil {
		slog.InfoContext(r.Context(), "rejecting malformed create request", "error", err.Error())
		httputil.WriteError(w, http.StatusBadRequest, err.Error())

		return
	}

	machine, err := s.machine.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, machine)
}

func (s *server) delete(w http.ResponseWriter, r *http.Request) {
	s.byID(w, r, http.StatusOK, s.machine.Delete)
}

func (s *server) start(w http.ResponseWriter, r *http.Request) {
	s.byID(w, r, http.StatusOK, s.machine.Start)
}

func (s *server) stop(w http.ResponseWriter, r *http.Request) {
	s.byID(w, r, http.StatusOK, s.machine.Stop)
}

type byIDFunc func(ctx context.Context, id string) (types.Machine, error)

func (s *server) byID(w http.ResponseWriter, r *http.Request, status int, fn byIDFunc) {
	machine, err := fn(r.Context(), mux.Vars(r)[idVar])
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.WriteJSON(w, status, machine)
}

// writeError maps controller errors to API responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, adapter.ErrMachineNotFound):
		httputil.WriteError(w, http.StatusNotFound, types.MessageMachineNotFound)
	case errors.Is(err, types.ErrInvalidMachineRequest):
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "❌ handling request",
			"method", r.Method, "path", r.URL.Path, "error", err.Error())
		httputil.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func badRequest(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteError(w, http.StatusBadRequest, types.MessageBadRequest)
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteError(w, http.StatusMethodNotAllowed, types.MessageMethodNotAllowed)
}

func notImplemented(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteError(w, http.StatusNotImplemented, types.MessageNotImplemented)
}
