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

package adapter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alexandremahdhaoui/machina/pkg/execcontext"
)

const (
	DefaultTartBinary  = "tart"
	DefaultPgrepBinary = "pgrep"

	// pgrep exits with 1 when no process matched.
	pgrepNoMatchExitCode = 1
)

// --------------------------------------------------- CONSTRUCTORS ------------------------------------------------- //

// TartOption configures the tart Driver.
type TartOption func(*tart)

// WithTartBinary overrides the tart binary.
func WithTartBinary(binary string) TartOption {
	return func(t *tart) {
		if binary != "" {
			t.binary = binary
		}
	}
}

// WithPgrepBinary overrides the pgrep binary used to locate VM processes.
func WithPgrepBinary(binary string) TartOption {
	return func(t *tart) {
		if binary != "" {
			t.pgrep = binary
		}
	}
}

// WithSignalFunc overrides how the graceful-stop signal is delivered.
func WithSignalFunc(signal func(pid int) error) TartOption {
	return func(t *tart) {
		t.signal = signal
	}
}

// NewTart returns a Driver invoking the tart command-line tool through runner.
func NewTart(runner execcontext.Runner, opts ...TartOption) Driver {
	t := &tart{
		runner: runner,
		binary: DefaultTartBinary,
		pgrep:  DefaultPgrepBinary,
		signal: sendGracefulStopSignal,
		self:   os.Getpid(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// --------------------------------------------- CONCRETE IMPLEMENTATION -------------------------------------------- //

type tart struct {
	runner execcontext.Runner
	binary string
	pgrep  string
	signal func(pid int) error
	self   int
}

type tartStatus struct {
	Running bool `json:"Running"`
}

func (t *tart) Exists(ctx context.Context, id string) bool {
	_, err := t.runner.Run(ctx, t.binary, "get", id)

	return err == nil
}

func (t *tart) IsRunning(ctx context.Context, id string) bool {
	res, err := t.runner.Run(ctx, t.binary, "get", id, "--format", "json")
	if err != nil {
		slog.DebugContext(ctx, "querying vm status", "id", id, "error", err.Error())
		return false
	}

	status := tartStatus{}
	if err := json.Unmarshal(res.Stdout, &status); err != nil {
		slog.DebugContext(ctx, "parsing vm status", "id", id, "error", err.Error())
		return false
	}

	return status.Running
}

func (t *tart) Clone(ctx context.Context, baseImage, id string) error {
	if res, err := t.runner.Run(ctx, t.binary, "clone", baseImage, id); err != nil {
		return errors.Join(err, classifyTart(res), fmt.Errorf("baseImage=%s id=%s", baseImage, id), errClone)
	}

	return nil
}

func (t *tart) Configure(ctx context.Context, id string, res Resources) error {
	out, err := t.runner.Run(ctx, t.binary, "set", id,
		"--disk-size", strconv.Itoa(res.DiskSizeG),
		"--memory", strconv.Itoa(res.MemoryMiB),
		"--cpu", strconv.Itoa(res.VCPU),
	)
	if err != nil {
		return errors.Join(err, classifyTart(out), fmt.Errorf("id=%s", id), errConfigure)
	}

	return nil
}

func (t *tart) Launch(ctx context.Context, id string, opts LaunchOptions) (int, error) {
	pid, err := t.runner.Start(ctx, tartRunArgs(t.binary, id, opts)...)
	if err != nil {
		return 0, errors.Join(err, ErrOperationFailed, fmt.Errorf("id=%s", id), errLaunch)
	}

	return pid, nil
}

func tartRunArgs(binary, id string, opts LaunchOptions) []string {
	args := []string{binary, "run", id, "--disk", opts.SeedImagePath, "--no-graphics"}
	if opts.NetworkInterface != "" {
		args = append(args, "--net-bridged", opts.NetworkInterface)
	}

	return append(args, opts.ExtraArgs...)
}

func (t *tart) ResolveIP(ctx context.Context, id, networkInterface string, wait time.Duration) (string, error) {
	args := []string{t.binary, "ip", id, "--wait", seconds(wait)}
	if networkInterface != "" {
		// bridged networks expose no DHCP leases to the host.
		args = append(args, "--resolver", "arp")
	}

	res, err := t.runner.Run(ctx, args...)
	if err != nil {
		classified := classifyTart(res)
		if errors.Is(classified, ErrOperationFailed) {
			classified = errors.Join(classified, ErrResolutionTimeout)
		}

		return "", errors.Join(err, classified, fmt.Errorf("id=%s", id), errResolveIP)
	}

	ip := strings.TrimSpace(string(res.Stdout))
	if net.ParseIP(ip) == nil {
		return "", errors.Join(fmt.Errorf("unexpected output %q", ip), ErrResolutionTimeout, errResolveIP)
	}

	return ip, nil
}

func (t *tart) Stop(ctx context.Context, id string, timeout time.Duration) error {
	if res, err := t.runner.Run(ctx, t.binary, "stop", id, "--timeout", seconds(timeout)); err != nil {
		return errors.Join(err, classifyTart(res), fmt.Errorf("id=%s", id), errStop)
	}

	return nil
}

func (t *tart) Delete(ctx context.Context, id string) error {
	if res, err := t.runner.Run(ctx, t.binary, "delete", id); err != nil {
		return errors.Join(err, classifyTart(res), fmt.Errorf("id=%s", id), errDelete)
	}

	return nil
}

func (t *tart) FindProcessID(ctx context.Context, id string) (int, bool, error) {
	// The bracket keeps the pattern from matching the command line of pgrep itself or of a prepended command.
	pattern := "[r]un " + regexp.QuoteMeta(id)

	res, err := t.runner.Run(ctx, t.pgrep, "-f", pattern)
	if err != nil {
		if res.ExitCode == pgrepNoMatchExitCode {
			return 0, false, nil
		}

		return 0, false, errors.Join(err, ErrOperationFailed, fmt.Errorf("id=%s", id), errFindProcessID)
	}

	scanner := bufio.NewScanner(bytes.NewReader(res.Stdout))
	for scanner.Scan() {
		pid, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || pid <= 0 || pid == t.self {
			continue
		}

		return pid, true, nil
	}

	return 0, false, nil
}

func (t *tart) SignalGracefulStop(_ context.Context, id string, pid int) error {
	if err := t.signal(pid); err != nil {
		kind := ErrOperationFailed
		if isNoSuchProcess(err) {
			kind = ErrNotFound
		}

		return errors.Join(err, kind, fmt.Errorf("id=%s pid=%d", id, pid), errSignalGraceful)
	}

	return nil
}

// ---------------------------------------------- ERROR CLASSIFICATION ---------------------------------------------- //

// classifyTart maps a failed tart invocation to ErrNotFound or ErrOperationFailed.
func classifyTart(res execcontext.Result) error {
	stderr := strings.ToLower(string(res.Stderr))
	if strings.Contains(stderr, "does not exist") || strings.Contains(stderr, "not found") {
		return ErrNotFound
	}

	return ErrOperationFailed
}

// ---------------------------------------------------- HELPERS ----------------------------------------------------- //

// seconds renders d as a whole number of seconds, rounded up.
func seconds(d time.Duration) string {
	if d <= 0 {
		return "0"
	}

	return strconv.Itoa(int(math.Ceil(d.Seconds())))
}
