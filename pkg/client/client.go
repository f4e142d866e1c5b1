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

// Package client is a typed client of the machina API.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexandremahdhaoui/machina/internal/types"
)

const DefaultTimeout = 5 * time.Minute

var (
	ErrBadRequest       = errors.New("bad request")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("machine not found")
	ErrNotImplemented   = errors.New("not implemented")
	ErrServer           = errors.New("server error")
	ErrUnexpectedStatus = errors.New("unexpected status")

	ErrInvalidURL = errors.New("invalid server url")

	errRequest = errors.New("sending request")
	errDecode  = errors.New("decoding response")
)

// --------------------------------------------------- INTERFACES --------------------------------------------------- //

// Client manages machines through the machina API.
type Client interface {
	Get(ctx context.Context, id string) (types.Machine, error)
	List(ctx context.Context) ([]types.Machine, error)
	Create(ctx context.Context, req types.MachineRequest) (types.Machine, error)
	Delete(ctx context.Context, id string) (types.Machine, error)
	Start(ctx context.Context, id string) (types.Machine, error)
	Stop(ctx context.Context, id string) (types.Machine, error)
}

// --------------------------------------------------- CONSTRUCTORS ------------------------------------------------- //

type Option func(*client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.http = hc
	}
}

// WithBasicAuth authenticates every request.
func WithBasicAuth(username, password string) Option {
	return func(c *client) {
		c.username = username
		c.password = password
	}
}

// WithTLSConfig sets the TLS configuration of the default transport.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *client) {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = cfg
		c.http.Transport = transport
	}
}

// New returns a Client for the server at baseURL, e.g. "http://127.0.0.1:8080".
func New(baseURL string, opts ...Option) (Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Join(err, ErrInvalidURL)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.Join(fmt.Errorf("url=%q", baseURL), ErrInvalidURL)
	}

	c := &client{
		baseURL: u.String(),
		http:    &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// --------------------------------------------- CONCRETE IMPLEMENTATION -------------------------------------------- //

type client struct {
	baseURL  string
	http     *http.Client
	username string
	password string
}

func (c *client) Get(ctx context.Context, id string) (types.Machine, error) {
	return c.machine(ctx, http.MethodGet, "/machine/"+url.PathEscape(id), nil)
}

func (c *client) List(ctx context.Context) ([]types.Machine, error) {
	var out []types.Machine
	if err := c.do(ctx, http.MethodGet, "/machines", nil, &out); err != nil {
		return nil, err
	}

	if out == nil {
		out = []types.Machine{}
	}

	return out, nil
}

func (c *client) Create(ctx context.Context, req types.MachineRequest) (types.Machine, error) {
	return c.machine(ctx, http.MethodPost, "/machine", req)
}

func (c *client) Delete(ctx context.Context, id string) (types.Machine, error) {
	return c.machine(ctx, http.MethodDelete, "/machine/"+url.PathEscape(id), nil)
}

func (c *client) Start(ctx context.Context, id string) (types.Machine, error) {
	return c.machine(ctx, http.MethodPost, "/machine/"+url.PathEscape(id)+"/start", nil)
}

func (c *client) Stop(ctx context.Context, id string) (types.Machine, error) {
	return c.machine(ctx, http.MethodPost, "/machine/"+url.PathEscape(id)+"/stop", nil)
}

func (c *client) machine(ctx context.Context, method, path string, body any) (types.Machine, error) {
	var out types.Machine
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return types.Machine{}, err
	}

	return out, nil
}

func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Join(err, errRequest)
		}

		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Join(err, errRequest)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Join(err, fmt.Errorf("method=%s path=%s", method, path), errRequest)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(err, errDecode)
	}

	return nil
}

func statusError(resp *http.Response) error {
	var body types.ErrorResponse

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(raw))
	}

	detail := fmt.Errorf("status=%d message=%q", resp.StatusCode, body.Error)

	switch code := resp.StatusCode; {
	case code == http.StatusBadRequest:
		return errors.Join(detail, ErrBadRequest)
	case code == http.StatusUnauthorized:
		return errors.Join(detail, ErrUnauthorized)
	case code == http.StatusNotFound:
		return errors.Join(detail, ErrNotFound)
	case code == http.StatusNotImplemented:
		return errors.Join(detail, ErrNotImplemented)
	case code >= http.StatusInternalServerError:
		return errors.Join(detail, ErrServer)
	default:
		return errors.Join(detail, ErrUnexpectedStatus)
	}
}
