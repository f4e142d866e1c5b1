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
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when the virtual machine does not exist. It is benign for idempotent operations.
	ErrNotFound = errors.New("virtual machine not found")
	// ErrOperationFailed is returned when the virtualization driver reports any other failure.
	ErrOperationFailed = errors.New("virtualization driver operation failed")
	// ErrResolutionTimeout is returned when no address could be resolved within the wait budget.
	ErrResolutionTimeout = errors.New("ip resolution timed out")

	errClone          = errors.New("cloning virtual machine")
	errConfigure      = errors.New("configuring virtual machine")
	errLaunch         = errors.New("launching virtual machine")
	errResolveIP      = errors.New("resolving virtual machine ip")
	errStop           = errors.New("stopping virtual machine")
	errDelete         = errors.New("deleting virtual machine")
	errFindProcessID  = errors.New("finding virtual machine process")
	errSignalGraceful = errors.New("signaling graceful stop")
)

// --------------------------------------------------- INTERFACES --------------------------------------------------- //

// Resources are the compute resources applied to a virtual machine.
type Resources struct {
	VCPU      int
	MemoryMiB int
	DiskSizeG int
}

// LaunchOptions are the arguments used to launch a virtual machine.
type LaunchOptions struct {
	// SeedImagePath is the path of the cloud-init seed image attached to the machine.
	SeedImagePath string
	// NetworkInterface is the host interface to bridge onto. Empty means the driver's default network.
	NetworkInterface string
	// ExtraArgs are appended verbatim.
	ExtraArgs []string
}

// Driver is a synchronous facade over a virtualization tool. It never waits for a state to be reached and never
// retries: polling and escalation are the caller's concern.
//
// Failures wrap ErrNotFound when the machine does not exist and ErrOperationFailed otherwise.
type Driver interface {
	// Exists reports whether the machine is known to the driver.
	Exists(ctx context.Context, id string) bool
	// IsRunning reports whether the machine is running. Any failure is reported as not running.
	IsRunning(ctx context.Context, id string) bool

	// Clone creates the machine id from baseImage.
	Clone(ctx context.Context, baseImage, id string) error
	// Configure applies compute resources to a stopped machine.
	Configure(ctx context.Context, id string, res Resources) error
	// Launch spawns the machine in the background and returns the pid of the spawned process.
	// It does not wait for the machine to boot.
	Launch(ctx context.Context, id string, opts LaunchOptions) (int, error)
	// ResolveIP blocks for up to wait until the machine reports an address. ARP resolution is used when
	// networkInterface is not empty.
	ResolveIP(ctx context.Context, id, networkInterface string, wait time.Duration) (string, error)
	// Stop forcefully stops the machine, the driver enforcing timeout.
	Stop(ctx context.Context, id string, timeout time.Duration) error
	// Delete removes the machine and its artifacts.
	Delete(ctx context.Context, id string) error

	// FindProcessID locates the OS process driving the machine. found is false when no process matches.
	FindProcessID(ctx context.Context, id string) (pid int, found bool, err error)
	// SignalGracefulStop requests a cooperative shutdown of the machine driven by pid.
	SignalGracefulStop(ctx context.Context, id string, pid int) error
}

// ConfigPatcher mutates the persisted configuration of a machine for settings the driver exposes no command for.
type ConfigPatcher interface {
	// PatchMACAddress sets the MAC address of the machine's primary interface. The address is lower-cased.
	PatchMACAddress(ctx context.Context, id, mac string) error
}
