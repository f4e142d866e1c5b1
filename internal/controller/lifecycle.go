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

package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexandremahdhaoui/machina/internal/adapter"
	"github.com/alexandremahdhaoui/machina/internal/types"
	"github.com/alexandremahdhaoui/machina/internal/util/keylock"
	"github.com/alexandremahdhaoui/machina/internal/util/poll"
)

const (
	DefaultStartupTimeout   = 5 * time.Second
	DefaultShutdownTimeout  = 15 * time.Second
	DefaultPollInterval     = time.Second
	DefaultIPWait           = 5 * time.Second
	DefaultForceStopTimeout = time.Second

	operationCreate = "create"
	operationStart  = "start"
	operationStop   = "stop"
	operationDelete = "delete"
)

var (
	// ErrFailedPrecondition is returned by Create when the machine could not be cloned or configured.
	ErrFailedPrecondition = errors.New("failed precondition")

	ErrLifecycleCreate = errors.New("creating machine")
	ErrLifecycleStart  = errors.New("starting machine")
	ErrLifecycleStop   = errors.New("stopping machine")
	ErrLifecycleDelete = errors.New("deleting machine")

	errAcquireMachineLock = errors.New("acquiring machine lock")
	errNoConfigPatcher    = errors.New("mac address requested but no configuration patcher is available")
	errWaitRunning        = errors.New("waiting for machine to run")
	errWaitStopped        = errors.New("waiting for machine to stop")
)

// ---------------------------------------------------- INTERFACES -------------------------------------------------- //

// Lifecycle drives a machine through the external virtualization tool. The tool is the source of truth: every
// transition is derived from its answers, never from the record passed in.
//
// Operations on the same machine ID are serialized. The context only interrupts waits between polls; a call already
// handed to the tool runs to completion.
type Lifecycle interface {
	// Create clones and configures the machine unless it already exists, then starts it.
	Create(ctx context.Context, machine types.Machine) (types.Machine, error)
	// Start launches the machine unless it is running, waits for it to run, then resolves its IP.
	Start(ctx context.Context, machine types.Machine) (types.Machine, error)
	// Stop requests a graceful shutdown and forces it once the shutdown window elapsed.
	Stop(ctx context.Context, machine types.Machine) (types.Machine, error)
	// Delete stops the machine, removes it from the tool and removes its seed image.
	Delete(ctx context.Context, machine types.Machine) (types.Machine, error)
}

// LifecycleConfig holds the timing of a Lifecycle.
type LifecycleConfig struct {
	// StartupTimeout bounds the wait for a launched machine to report running.
	StartupTimeout time.Duration
	// ShutdownTimeout bounds the wait for a signaled machine to stop.
	ShutdownTimeout time.Duration
	// PollInterval is the fixed delay between two status queries.
	PollInterval time.Duration
	// IPWait is the wait budget handed to the tool when resolving an IP.
	IPWait time.Duration
	// ForceStopTimeout is the tool-enforced timeout of the forced stop.
	ForceStopTimeout time.Duration
}

// DefaultLifecycleConfig returns the default timings.
func DefaultLifecycleConfig() LifecycleConfig {
	return LifecycleConfig{
		StartupTimeout:   DefaultStartupTimeout,
		ShutdownTimeout:  DefaultShutdownTimeout,
		PollInterval:     DefaultPollInterval,
		IPWait:           DefaultIPWait,
		ForceStopTimeout: DefaultForceStopTimeout,
	}
}

// --------------------------------------------------- CONSTRUCTORS ------------------------------------------------- //

// NewLifecycle returns a Lifecycle. patcher may be nil for backends that cannot pin a MAC address, in which case
// starting a machine requesting one fails. metrics may be nil.
func NewLifecycle(
	driver adapter.Driver,
	patcher adapter.ConfigPatcher,
	provisioner adapter.Provisioner,
	cfg LifecycleConfig,
	metrics *Metrics,
) Lifecycle {
	return &lifecycle{
		driver:      driver,
		patcher:     patcher,
		provisioner: provisioner,
		cfg:         cfg,
		metrics:     metrics,
	}
}

// ---------------------------------------------------- LIFECYCLE --------------------------------------------------- //

type lifecycle struct {
	driver      adapter.Driver
	patcher     adapter.ConfigPatcher
	provisioner adapter.Provisioner
	cfg         LifecycleConfig
	metrics     *Metrics

	locks keylock.Locker
}

// ------------------------------------------------------ Create ---------------------------------------------------- //

func (l *lifecycle) Create(ctx context.Context, machine types.Machine) (out types.Machine, err error) {
	defer func(start time.Time) { l.metrics.observeOperation(operationCreate, start, err) }(time.Now())

	release, err := l.lock(ctx, machine.ID)
	if err != nil {
		return machine, errors.Join(err, ErrLifecycleCreate)
	}

	defer release()

	toolCtx := context.WithoutCancel(ctx)

	if l.driver.Exists(toolCtx, machine.ID) {
		slog.InfoContext(ctx, "machine already exists, skipping clone and configure", "id", machine.ID)
	} else {
		if err := l.driver.Clone(toolCtx, machine.BaseImage, machine.ID); err != nil {
			return machine, errors.Join(err, ErrFailedPrecondition, ErrLifecycleCreate)
		}

		slog.InfoContext(ctx, "cloned machine", "id", machine.ID, "baseImage", machine.BaseImage)

		if err := l.driver.Configure(toolCtx, machine.ID, adapter.Resources{
			VCPU:      machine.VCPU,
			MemoryMiB: machine.Memory,
			DiskSizeG: machine.DiskSize,
		}); err != nil {
			return machine, errors.Join(err, ErrFailedPrecondition, ErrLifecycleCreate)
		}

		slog.InfoContext(ctx, "configured machine",
			"id", machine.ID,
			"vcpu", machine.VCPU,
			"memory", machine.Memory,
			"diskSize", machine.DiskSize,
		)
	}

	out, err = l.start(ctx, machine)
	if err != nil {
		return out, errors.Join(err, ErrLifecycleCreate)
	}

	return out, nil
}

// ------------------------------------------------------ Start ----------------------------------------------------- //

func (l *lifecycle) Start(ctx context.Context, machine types.Machine) (out types.Machine, err error) {
	defer func(start time.Time) { l.metrics.observeOperation(operationStart, start, err) }(time.Now())

	release, err := l.lock(ctx, machine.ID)
	if err != nil {
		return machine, errors.Join(err, ErrLifecycleStart)
	}

	defer release()

	return l.start(ctx, machine)
}

func (l *lifecycle) start(ctx context.Context, machine types.Machine) (types.Machine, error) {
	toolCtx := context.WithoutCancel(ctx)

	if l.driver.IsRunning(toolCtx, machine.ID) {
		slog.InfoContext(ctx, "machine already running", "id", machine.ID)
	} else {
		if err := l.launch(ctx, machine); err != nil {
			return machine, errors.Join(err, ErrLifecycleStart)
		}

		running, err := poll.Until(ctx, l.cfg.PollInterval, l.cfg.StartupTimeout, func(context.Context) bool {
			return l.driver.IsRunning(toolCtx, machine.ID)
		})
		if err != nil {
			return machine, errors.Join(err, fmt.Errorf("id=%s", machine.ID), errWaitRunning, ErrLifecycleStart)
		}

		if !running {
			slog.WarnContext(ctx, "machine did not report running within the startup window, proceeding",
				"id", machine.ID,
				"startupTimeout", l.cfg.StartupTimeout.String(),
			)
		}
	}

	if machine.SkipIPResolution {
		slog.InfoContext(ctx, "skipping ip resolution", "id", machine.ID)
		return machine, nil
	}

	ip, err := l.driver.ResolveIP(toolCtx, machine.ID, machine.Interface(), l.cfg.IPWait)
	l.metrics.observeIPResolution(err == nil)

	if err != nil {
		slog.WarnContext(ctx, "resolving machine ip", "id", machine.ID, "error", err.Error())
		machine.ResolvedIP = nil

		return machine, nil
	}

	slog.InfoContext(ctx, "resolved machine ip", "id", machine.ID, "ip", ip)
	machine.ResolvedIP = &ip

	return machine, nil
}

// launch writes everything the tool reads at spawn time, then spawns the machine.
func (l *lifecycle) launch(ctx context.Context, machine types.Machine) error {
	toolCtx := context.WithoutCancel(ctx)

	seedImagePath, err := l.provisioner.EnsureSeedImage(toolCtx, machine)
	if err != nil {
		return err
	}

	if machine.MACAddress != nil {
		if l.patcher == nil {
			return errors.Join(errNoConfigPatcher, fmt.Errorf("id=%s", machine.ID))
		}

		if err := l.patcher.PatchMACAddress(toolCtx, machine.ID, *machine.MACAddress); err != nil {
			return err
		}
	}

	pid, err := l.driver.Launch(toolCtx, machine.ID, adapter.LaunchOptions{
		SeedImagePath:    seedImagePath,
		NetworkInterface: machine.Interface(),
		ExtraArgs:        machine.ExtraArgs,
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "launched machine", "id", machine.ID, "pid", pid, "seedImage", seedImagePath)

	return nil
}

// ------------------------------------------------------- Stop ----------------------------------------------------- //

func (l *lifecycle) Stop(ctx context.Context, machine types.Machine) (out types.Machine, err error) {
	defer func(start time.Time) { l.metrics.observeOperation(operationStop, start, err) }(time.Now())

	release, err := l.lock(ctx, machine.ID)
	if err != nil {
		return machine, errors.Join(err, ErrLifecycleStop)
	}

	defer release()

	if err := l.stop(ctx, machine.ID); err != nil {
		return machine, err
	}

	return machine, nil
}

func (l *lifecycle) stop(ctx context.Context, id string) error {
	toolCtx := context.WithoutCancel(ctx)

	pid, found, err := l.driver.FindProcessID(toolCtx, id)
	switch {
	case err != nil:
		slog.WarnContext(ctx, "looking up machine process", "id", id, "error", err.Error())
	case !found:
		slog.DebugContext(ctx, "no machine process found", "id", id)
	default:
		if err := l.driver.SignalGracefulStop(toolCtx, id, pid); err != nil {
			slog.WarnContext(ctx, "signaling graceful stop", "id", id, "pid", pid, "error", err.Error())
		} else {
			slog.InfoContext(ctx, "requested graceful stop", "id", id, "pid", pid)
		}
	}

	stopped, err := poll.Until(ctx, l.cfg.PollInterval, l.cfg.ShutdownTimeout, func(context.Context) bool {
		return !l.driver.IsRunning(toolCtx, id)
	})
	if err != nil {
		return errors.Join(err, fmt.Errorf("id=%s", id), errWaitStopped, ErrLifecycleStop)
	}

	if stopped || !l.driver.IsRunning(toolCtx, id) {
		slog.InfoContext(ctx, "machine stopped", "id", id)
		return nil
	}

	slog.WarnContext(ctx, "machine still running after the shutdown window, forcing stop",
		"id", id,
		"shutdownTimeout", l.cfg.ShutdownTimeout.String(),
	)
	l.metrics.incForcedStops()

	if err := l.driver.Stop(toolCtx, id, l.cfg.ForceStopTimeout); err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			slog.InfoContext(ctx, "machine vanished before the forced stop", "id", id)
			return nil
		}

		return errors.Join(err, ErrLifecycleStop)
	}

	return nil
}

// ------------------------------------------------------ Delete ---------------------------------------------------- //

func (l *lifecycle) Delete(ctx context.Context, machine types.Machine) (out types.Machine, err error) {
	defer func(start time.Time) { l.metrics.observeOperation(operationDelete, start, err) }(time.Now())

	release, err := l.lock(ctx, machine.ID)
	if err != nil {
		return machine, errors.Join(err, ErrLifecycleDelete)
	}

	defer release()

	if err := l.stop(ctx, machine.ID); err != nil {
		if ctx.Err() != nil {
			return machine, errors.Join(err, ErrLifecycleDelete)
		}

		slog.WarnContext(ctx, "stopping machine before deletion", "id", machine.ID, "error", err.Error())
	}

	toolCtx := context.WithoutCancel(ctx)

	if err := l.driver.Delete(toolCtx, machine.ID); err != nil {
		if !errors.Is(err, adapter.ErrNotFound) {
			return machine, errors.Join(err, ErrLifecycleDelete)
		}

		slog.InfoContext(ctx, "machine already absent from the tool", "id", machine.ID)
	} else {
		slog.InfoContext(ctx, "deleted machine", "id", machine.ID)
	}

	if err := l.provisioner.RemoveSeedImage(toolCtx, machine.ID); err != nil {
		return machine, errors.Join(err, ErrLifecycleDelete)
	}

	return machine, nil
}

// ----------------------------------------------------- HELPERS ---------------------------------------------------- //

func (l *lifecycle) lock(ctx context.Context, id string) (func(), error) {
	release, err := l.locks.Acquire(ctx, id)
	if err != nil {
		return nil, errors.Join(err, fmt.Errorf("id=%s", id), errAcquireMachineLock)
	}

	return release, nil
}
