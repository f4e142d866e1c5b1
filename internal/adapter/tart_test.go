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

package adapter_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/alexandremahdhaoui/machina/internal/adapter"
	"github.com/alexandremahdhaoui/machina/pkg/execcontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records every command and answers with the configured functions.
type fakeRunner struct {
	mu     sync.Mutex
	calls  [][]string
	starts [][]string

	run   func(cmd []string) (execcontext.Result, error)
	start func(cmd []string) (int, error)
}

func (f *fakeRunner) Run(_ context.Context, cmd ...string) (execcontext.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if f.run == nil {
		return execcontext.Result{}, nil
	}

	return f.run(cmd)
}

func (f *fakeRunner) Start(_ context.Context, cmd ...string) (int, error) {
	f.mu.Lock()
	f.starts = append(f.starts, cmd)
	f.mu.Unlock()

	if f.start == nil {
		return 4242, nil
	}

	return f.start(cmd)
}

func (f *fakeRunner) lastCall(t *testing.T) []string {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	require.NotEmpty(t, f.calls)

	return f.calls[len(f.calls)-1]
}

func succeed(stdout string) func([]string) (execcontext.Result, error) {
	return func([]string) (execcontext.Result, error) {
		return execcontext.Result{Stdout: []byte(stdout)}, nil
	}
}

func fail(exitCode int, stderr string) func([]string) (execcontext.Result, error) {
	return func([]string) (execcontext.Result, error) {
		return execcontext.Result{Stderr: []byte(stderr), ExitCode: exitCode},
			fmt.Errorf("exit code %d: %w", exitCode, execcontext.ErrCommandFailed)
	}
}

func TestTart(t *testing.T) {
	const id = "i-0123456789ab"

	var (
		ctx    context.Context
		runner *fakeRunner
		driver adapter.Driver
	)

	setup := func(t *testing.T, opts ...adapter.TartOption) {
		t.Helper()

		ctx = context.Background()
		runner = &fakeRunner{}
		driver = adapter.NewTart(runner, opts...)
	}

	t.Run("Exists", func(t *testing.T) {
		setup(t)

		assert.True(t, driver.Exists(ctx, id))
		assert.Equal(t, []string{"tart", "get", id}, runner.lastCall(t))

		runner.run = fail(1, "the specified VM \"i-0123456789ab\" does not exist")
		assert.False(t, driver.Exists(ctx, id))
	})

	t.Run("IsRunning", func(t *testing.T) {
		for _, tt := range []struct {
			name     string
			run      func([]string) (execcontext.Result, error)
			expected bool
		}{
			{name: "running", run: succeed(`{"Running": true, "State": "running"}`), expected: true},
			{name: "stopped", run: succeed(`{"Running": false, "State": "stopped"}`), expected: false},
			{name: "malformed output", run: succeed(`not json`), expected: false},
			{name: "tool failure", run: fail(1, "does not exist"), expected: false},
		} {
			t.Run(tt.name, func(t *testing.T) {
				setup(t)
				runner.run = tt.run

				assert.Equal(t, tt.expected, driver.IsRunning(ctx, id))
				assert.Equal(t, []string{"tart", "get", id, "--format", "json"}, runner.lastCall(t))
			})
		}
	})

	t.Run("Clone", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			setup(t)

			require.NoError(t, driver.Clone(ctx, "debian:bookworm", id))
			assert.Equal(t, []string{"tart", "clone", "debian:bookworm", id}, runner.lastCall(t))
		})

		t.Run("Failure", func(t *testing.T) {
			setup(t)
			runner.run = fail(1, "VM already exists")

			err := driver.Clone(ctx, "debian:bookworm", id)
			assert.ErrorIs(t, err, adapter.ErrOperationFailed)
			assert.NotErrorIs(t, err, adapter.ErrNotFound)
		})

		t.Run("Base image not found", func(t *testing.T) {
			setup(t)
			runner.run = fail(1, "Error: image not found")

			assert.ErrorIs(t, driver.Clone(ctx, "ghcr.io/missing:latest", id), adapter.ErrNotFound)
		})
	})

	t.Run("Configure", func(t *testing.T) {
		setup(t, adapter.WithTartBinary("/opt/homebrew/bin/tart"))

		require.NoError(t, driver.Configure(ctx, id, adapter.Resources{VCPU: 2, MemoryMiB: 1024, DiskSizeG: 10}))
		assert.Equal(t, []string{
			"/opt/homebrew/bin/tart", "set", id, "--disk-size", "10", "--memory", "1024", "--cpu", "2",
		}, runner.lastCall(t))
	})

	t.Run("Launch", func(t *testing.T) {
		t.Run("Default network", func(t *testing.T) {
			setup(t)

			pid, err := driver.Launch(ctx, id, adapter.LaunchOptions{SeedImagePath: "/vms/" + id + "/cloud-init.iso"})
			require.NoError(t, err)
			assert.Equal(t, 4242, pid)

			require.Len(t, runner.starts, 1)
			assert.Equal(t, []string{
				"tart", "run", id, "--disk", "/vms/" + id + "/cloud-init.iso", "--no-graphics",
			}, runner.starts[0])
		})

		t.Run("Bridged with extra args", func(t *testing.T) {
			setup(t)

			_, err := driver.Launch(ctx, id, adapter.LaunchOptions{
				SeedImagePath:    "/seed.iso",
				NetworkInterface: "en0",
				ExtraArgs:        []string{"--rosetta", "rosetta"},
			})
			require.NoError(t, err)

			assert.Equal(t, []string{
				"tart", "run", id, "--disk", "/seed.iso", "--no-graphics", "--net-bridged", "en0", "--rosetta", "rosetta",
			}, runner.starts[0])
		})

		t.Run("Spawn failure", func(t *testing.T) {
			setup(t)
			runner.start = func([]string) (int, error) { return 0, execcontext.ErrStartCommand }

			_, err := driver.Launch(ctx, id, adapter.LaunchOptions{SeedImagePath: "/seed.iso"})
			assert.ErrorIs(t, err, adapter.ErrOperationFailed)
		})
	})

	t.Run("ResolveIP", func(t *testing.T) {
		t.Run("DHCP lease", func(t *testing.T) {
			setup(t)
			runner.run = succeed("192.168.64.3\n")

			ip, err := driver.ResolveIP(ctx, id, "", 5*time.Second)
			require.NoError(t, err)
			assert.Equal(t, "192.168.64.3", ip)
			assert.Equal(t, []string{"tart", "ip", id, "--wait", "5"}, runner.lastCall(t))
			assert.NotContains(t, runner.lastCall(t), "arp")
		})

		t.Run("ARP when bridged", func(t *testing.T) {
			setup(t)
			runner.run = succeed("4.3.2.1\n")

			ip, err := driver.ResolveIP(ctx, id, "en0", 5*time.Second)
			require.NoError(t, err)
			assert.Equal(t, "4.3.2.1", ip)
			assert.Equal(t, []string{"tart", "ip", id, "--wait", "5", "--resolver", "arp"}, runner.lastCall(t))
		})

		t.Run("Timeout", func(t *testing.T) {
			setup(t)
			runner.run = fail(1, "no IP address found")

			_, err := driver.ResolveIP(ctx, id, "", 5*time.Second)
			assert.ErrorIs(t, err, adapter.ErrResolutionTimeout)
		})

		t.Run("Unexpected output", func(t *testing.T) {
			setup(t)
			runner.run = succeed("\n")

			_, err := driver.ResolveIP(ctx, id, "", 5*time.Second)
			assert.ErrorIs(t, err, adapter.ErrResolutionTimeout)
		})
	})

	t.Run("Stop", func(t *testing.T) {
		setup(t)

		require.NoError(t, driver.Stop(ctx, id, time.Second))
		assert.Equal(t, []string{"tart", "stop", id, "--timeout", "1"}, runner.lastCall(t))

		runner.run = fail(1, "VM \"i-0123456789ab\" does not exist")
		assert.ErrorIs(t, driver.Stop(ctx, id, time.Second), adapter.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		setup(t)

		require.NoError(t, driver.Delete(ctx, id))
		assert.Equal(t, []string{"tart", "delete", id}, runner.lastCall(t))

		runner.run = fail(1, "VM does not exist")
		assert.ErrorIs(t, driver.Delete(ctx, id), adapter.ErrNotFound)
	})

	t.Run("FindProcessID", func(t *testing.T) {
		t.Run("Found", func(t *testing.T) {
			setup(t)
			runner.run = succeed(fmt.Sprintf("%d\n1234\n5678\n", os.Getpid()))

			pid, found, err := driver.FindProcessID(ctx, id)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, 1234, pid)
			assert.Equal(t, []string{"pgrep", "-f", "[r]un " + id}, runner.lastCall(t))
		})

		t.Run("Not found", func(t *testing.T) {
			setup(t)
			runner.run = fail(1, "")

			_, found, err := driver.FindProcessID(ctx, id)
			require.NoError(t, err)
			assert.False(t, found)
		})

		t.Run("pgrep failure", func(t *testing.T) {
			setup(t, adapter.WithPgrepBinary("/usr/bin/pgrep"))
			runner.run = fail(2, "pgrep: invalid option")

			_, _, err := driver.FindProcessID(ctx, id)
			assert.ErrorIs(t, err, adapter.ErrOperationFailed)
			assert.Equal(t, "/usr/bin/pgrep", runner.lastCall(t)[0])
		})
	})

	t.Run("SignalGracefulStop", func(t *testing.T) {
		var signaled []int

		t.Run("Success", func(t *testing.T) {
			setup(t, adapter.WithSignalFunc(func(pid int) error {
				signaled = append(signaled, pid)
				return nil
			}))

			require.NoError(t, driver.SignalGracefulStop(ctx, id, 1234))
			assert.Equal(t, []int{1234}, signaled)
		})

		t.Run("Process gone", func(t *testing.T) {
			setup(t, adapter.WithSignalFunc(func(int) error { return syscall.ESRCH }))

			assert.ErrorIs(t, driver.SignalGracefulStop(ctx, id, 1234), adapter.ErrNotFound)
		})

		t.Run("Permission denied", func(t *testing.T) {
			setup(t, adapter.WithSignalFunc(func(int) error { return syscall.EPERM }))

			assert.ErrorIs(t, driver.SignalGracefulStop(ctx, id, 1), adapter.ErrOperationFailed)
		})
	})
}
