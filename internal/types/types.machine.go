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

package types

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/google/uuid"
	"k8s.io/utils/ptr"
)

const (
	// MachineIDPrefix prefixes every generated machine identifier.
	MachineIDPrefix = "i-"

	// DefaultDiskSize is the disk size in GB applied when a request omits it.
	DefaultDiskSize = 10

	machineIDHexLength = 12
)

var (
	ErrInvalidMachineRequest = errors.New("invalid machine request")

	errNameRequired      = errors.New("name is required")
	errBaseImageRequired = errors.New("base_image is required")
	errVCPUMustBePos     = errors.New("vcpu must be a positive integer")
	errMemoryMustBePos   = errors.New("memory must be a positive integer")
	errDiskSizeMustBePos = errors.New("disk_size must be a positive integer")
	errInvalidMACAddress = errors.New("mac_address is not a valid 48-bit MAC address")
	errEmptyInterface    = errors.New("network_interface cannot be empty when set")
)

// ---------------------------------------------------- MACHINE ----------------------------------------------------- //

// Machine is the record of a virtual machine managed by machina.
//
// The record and the underlying VM can diverge: a record's existence does not imply the VM process is running.
type Machine struct {
	// ID is the unique, immutable identifier of the machine. It is the handle used with the virtualization driver and
	// the key of the record store.
	ID string `json:"id"`
	// Name is the hostname written into the cloud-init meta-data.
	Name string `json:"name"`

	// VCPU is the number of virtual CPUs.
	VCPU int `json:"vcpu"`
	// Memory is the amount of memory in MiB.
	Memory int `json:"memory"`
	// DiskSize is the disk size in GB.
	DiskSize int `json:"disk_size"`

	// BaseImage references the image the machine is cloned from.
	BaseImage string `json:"base_image"`

	// NetworkInterface is an optional host interface to bridge the machine onto.
	NetworkInterface *string `json:"network_interface"`
	// MACAddress optionally overrides the MAC address of the machine.
	MACAddress *string `json:"mac_address"`
	// SkipIPResolution disables waiting for a network address.
	SkipIPResolution bool `json:"skip_ip_resolution"`
	// ExtraArgs are passed verbatim to the driver when launching the machine.
	ExtraArgs []string `json:"extra_args"`
	// UserData is an optional cloud-init user-data document.
	UserData *string `json:"user_data"`

	// ResolvedIP is set once the machine's address has been resolved.
	ResolvedIP *string `json:"resolved_ip"`
}

// Interface returns the network interface or an empty string.
func (m Machine) Interface() string {
	return ptr.Deref(m.NetworkInterface, "")
}

// NewMachineID returns a new random machine identifier.
func NewMachineID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")

	return MachineIDPrefix + hex[:machineIDHexLength]
}

// ------------------------------------------------ MACHINE REQUEST ------------------------------------------------- //

// MachineRequest holds the fields a client provides to create a Machine.
type MachineRequest struct {
	Name             string   `json:"name"`
	VCPU             int      `json:"vcpu"`
	Memory           int      `json:"memory"`
	DiskSize         int      `json:"disk_size,omitempty"`
	BaseImage        string   `json:"base_image"`
	NetworkInterface *string  `json:"network_interface,omitempty"`
	MACAddress       *string  `json:"mac_address,omitempty"`
	SkipIPResolution bool     `json:"skip_ip_resolution,omitempty"`
	ExtraArgs        []string `json:"extra_args,omitempty"`
	UserData         *string  `json:"user_data,omitempty"`
}

// Validate returns an error wrapping ErrInvalidMachineRequest if the request cannot be turned into a Machine.
func (r MachineRequest) Validate() error {
	var errs []error

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, errNameRequired)
	}

	if strings.TrimSpace(r.BaseImage) == "" {
		errs = append(errs, errBaseImageRequired)
	}

	if r.VCPU <= 0 {
		errs = append(errs, errVCPUMustBePos)
	}

	if r.Memory <= 0 {
		errs = append(errs, errMemoryMustBePos)
	}

	if r.DiskSize < 0 {
		errs = append(errs, errDiskSizeMustBePos)
	}

	if r.NetworkInterface != nil && strings.TrimSpace(*r.NetworkInterface) == "" {
		errs = append(errs, errEmptyInterface)
	}

	if r.MACAddress != nil {
		if hw, err := net.ParseMAC(*r.MACAddress); err != nil || len(hw) != 6 {
			errs = append(errs, fmt.Errorf("%w: %q", errInvalidMACAddress, *r.MACAddress))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append(errs, ErrInvalidMachineRequest)...)
	}

	return nil
}

// ToMachine converts the request into a Machine with the given id, applying defaults.
func (r MachineRequest) ToMachine(id string) Machine {
	diskSize := r.DiskSize
	if diskSize == 0 {
		diskSize = DefaultDiskSize
	}

	extraArgs := make([]string, len(r.ExtraArgs))
	copy(extraArgs, r.ExtraArgs)

	return Machine{
		ID:               id,
		Name:             r.Name,
		VCPU:             r.VCPU,
		Memory:           r.Memory,
		DiskSize:         diskSize,
		BaseImage:        r.BaseImage,
		NetworkInterface: r.NetworkInterface,
		MACAddress:       r.MACAddress,
		SkipIPResolution: r.SkipIPResolution,
		ExtraArgs:        extraArgs,
		UserData:         r.UserData,
	}
}
