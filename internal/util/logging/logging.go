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

// Package logging configures the process-wide slog logger of the machina binaries and exposes it as a logr.Logger
// for the libraries logging through logr.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-logr/logr"
)

var ErrInvalidLevel = errors.New("invalid log level")

// Options configures the logger.
type Options struct {
	// Development selects the human readable text handler instead of JSON.
	Development bool
	// Level is the minimum level. Defaults to slog.LevelInfo.
	Level slog.Level
	// Output defaults to os.Stdout.
	Output io.Writer
}

// DefaultOptions returns the production options.
func DefaultOptions() Options {
	return Options{Level: slog.LevelInfo}
}

// ParseLevel maps "debug", "info", "warn" or "error" to a slog.Level. The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, errors.Join(err, fmt.Errorf("level=%q", s), ErrInvalidLevel)
	}

	return level, nil
}

// Setup installs the default slog logger and returns the same sink as a logr.Logger.
// It must be called early in main.
func Setup(opts Options) logr.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var handler slog.Handler
	if opts.Development {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}

	slog.SetDefault(slog.New(handler))

	return logr.FromSlogHandler(handler)
}

// SetupDefault sets up logging with DefaultOptions.
func SetupDefault() logr.Logger {
	return Setup(DefaultOptions())
}

// SetupDevelopment sets up text logging at debug level.
func SetupDevelopment() logr.Logger {
	return Setup(Options{
		Development: true,
		Level:       slog.LevelDebug,
	})
}
