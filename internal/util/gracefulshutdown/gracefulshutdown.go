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

package gracefulshutdown

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// DefaultHookTimeout bounds the time given to each shutdown hook.
const DefaultHookTimeout = 30 * time.Second

// Hook releases a resource once every tracked goroutine returned.
type Hook func(ctx context.Context) error

type namedHook struct {
	name string
	fn   Hook
}

// GracefulShutdown coordinates the shutdown of a process: it cancels a shared context on SIGTERM or SIGINT, waits
// for the goroutines tracked by its wait group, runs the registered hooks and exits.
type GracefulShutdown struct {
	ctx    context.Context
	cancel context.CancelFunc
	name   string

	once      sync.Once
	readyOnce sync.Once
	wg        *sync.WaitGroup

	// ready is closed by Ready once every WaitGroup.Add call was made.
	ready chan struct{}

	hooksMu sync.Mutex
	hooks   []namedHook

	exitFunc func(int)
}

// NewWithExit creates a GracefulShutdown exiting through exitFunc.
func NewWithExit(name string, exitFunc func(int)) *GracefulShutdown {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)

	gs := &GracefulShutdown{
		ctx:      ctx,
		cancel:   cancel,
		name:     name,
		wg:       &sync.WaitGroup{},
		ready:    make(chan struct{}),
		exitFunc: exitFunc,
	}

	// Shutdown runs at least once when the context is done.
	go func() {
		select {
		case <-gs.ready:
			<-ctx.Done()
		case <-ctx.Done():
			slog.Warn("context canceled before Ready was called", "name", name)
		}

		gs.Shutdown(0)
	}()

	return gs
}

// New creates a GracefulShutdown exiting through os.Exit.
func New(name string) *GracefulShutdown {
	return NewWithExit(name, os.Exit)
}

// OnShutdown registers a hook. Hooks run in reverse registration order after the wait group is drained.
func (s *GracefulShutdown) OnShutdown(name string, fn Hook) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()

	s.hooks = append(s.hooks, namedHook{name: name, fn: fn})
}

// Shutdown cancels the context, waits for the tracked goroutines, runs the hooks and exits. Only the first call has
// any effect. A failing hook turns a zero exitCode into 1.
func (s *GracefulShutdown) Shutdown(exitCode int) {
	s.once.Do(func() {
		slog.InfoContext(s.ctx, "⌛ gracefully shutting down", "name", s.name)

		s.cancel()
		s.wg.Wait()

		if !s.runHooks() && exitCode == 0 {
			exitCode = 1
		}

		s.exitFunc(exitCode)
	})
}

func (s *GracefulShutdown) runHooks() bool {
	s.hooksMu.Lock()
	hooks := make([]namedHook, len(s.hooks))
	copy(hooks, s.hooks)
	s.hooksMu.Unlock()

	ok := true

	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]

		ctx, cancel := context.WithTimeout(context.Background(), DefaultHookTimeout)
		err := h.fn(ctx)
		cancel()

		if err != nil {
			slog.Error("❌ running shutdown hook", "hook", h.name, "error", err.Error())

			ok = false
		}
	}

	return ok
}

// Context returns the context canceled when shutdown starts.
func (s *GracefulShutdown) Context() context.Context {
	return s.ctx
}

// CancelFunc returns the cancel function of the shutdown context.
func (s *GracefulShutdown) CancelFunc() context.CancelFunc {
	return s.cancel
}

// WaitGroup returns the wait group Shutdown drains before running hooks.
func (s *GracefulShutdown) WaitGroup() *sync.WaitGroup {
	return s.wg
}

// Ready signals that all WaitGroup.Add calls have been made. It must be called before the context is canceled, and
// is safe to call multiple times.
func (s *GracefulShutdown) Ready() {
	s.readyOnce.Do(func() {
		close(s.ready)
	})
}
