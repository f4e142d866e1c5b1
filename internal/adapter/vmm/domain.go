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

package vmm

import (
	"errors"
	"strings"

	"k8s.io/utils/ptr"
	"libvirt.org/go/libvirtxml"

	"github.com/alexandremahdhaoui/machina/internal/adapter"
)

const (
	defaultNetwork = "default"

	// seedDiskTarget is the target device the cloud-init seed image is attached to.
	seedDiskTarget = "sdb"

	initialVCPU      = 1
	initialMemoryMiB = 1024
)

var errNoInterface = errors.New("domain has no network interface")

// newDomain returns the definition of a stopped KVM domain booting from diskPath on the default NAT network.
// Resources are placeholders until applyResources is called.
func newDomain(id, diskPath string) *libvirtxml.Domain {
	return &libvirtxml.Domain{
		Type: "kvm",
		Name: id,
		Memory: &libvirtxml.DomainMemory{
			Value: initialMemoryMiB,
			Unit:  "MiB",
		},
		VCPU: &libvirtxml.DomainVCPU{
			Value: initialVCPU,
		},
		OS: &libvirtxml.DomainOS{
			Type: &libvirtxml.DomainOSType{
				Arch: "x86_64",
				Type: "hvm",
			},
			BootDevices: []libvirtxml.DomainBootDevice{
				{Dev: "hd"},
			},
		},
		Features: &libvirtxml.DomainFeatureList{
			ACPI: &libvirtxml.DomainFeature{},
			APIC: &libvirtxml.DomainFeatureAPIC{},
		},
		CPU: &libvirtxml.DomainCPU{
			Mode: "host-passthrough",
		},
		OnPoweroff: "destroy",
		OnReboot:   "restart",
		OnCrash:    "destroy",
		Devices: &libvirtxml.DomainDeviceList{
			Disks: []libvirtxml.DomainDisk{
				{
					Device: "disk",
					Driver: &libvirtxml.DomainDiskDriver{
						Name: "qemu",
						Type: "qcow2",
					},
					Source: &libvirtxml.DomainDiskSource{
						File: &libvirtxml.DomainDiskSourceFile{
							File: diskPath,
						},
					},
					Target: &libvirtxml.DomainDiskTarget{
						Dev: "vda",
						Bus: "virtio",
					},
				},
			},
			Interfaces: []libvirtxml.DomainInterface{
				{
					Source: &libvirtxml.DomainInterfaceSource{
						Network: &libvirtxml.DomainInterfaceSourceNetwork{
							Network: defaultNetwork,
						},
					},
					Model: &libvirtxml.DomainInterfaceModel{
						Type: "virtio",
					},
				},
			},
			Consoles: []libvirtxml.DomainConsole{
				{
					Target: &libvirtxml.DomainConsoleTarget{
						Type: "serial",
						Port: ptr.To(uint(0)),
					},
					Source: &libvirtxml.DomainChardevSource{
						Pty: &libvirtxml.DomainChardevSourcePty{},
					},
				},
			},
		},
	}
}

func applyResources(dom *libvirtxml.Domain, res adapter.Resources) {
	dom.VCPU = &libvirtxml.DomainVCPU{Value: uint(res.VCPU)}
	dom.Memory = &libvirtxml.DomainMemory{Value: uint(res.MemoryMiB), Unit: "MiB"}
	dom.CurrentMemory = nil
}

// applyMACAddress pins the MAC address of the first interface.
func applyMACAddress(dom *libvirtxml.Domain, mac string) error {
	if dom.Devices == nil || len(dom.Devices.Interfaces) == 0 {
		return errNoInterface
	}

	dom.Devices.Interfaces[0].MAC = &libvirtxml.DomainInterfaceMAC{
		Address: strings.ToLower(mac),
	}

	return nil
}

// applyLaunchOptions attaches the seed image, selects the network source of the first interface, and replaces the
// qemu pass-through arguments.
func applyLaunchOptions(dom *libvirtxml.Domain, opts adapter.LaunchOptions) error {
	if dom.Devices == nil || len(dom.Devices.Interfaces) == 0 {
		return errNoInterface
	}

	seed := libvirtxml.DomainDisk{
		Device: "cdrom",
		Driver: &libvirtxml.DomainDiskDriver{
			Name: "qemu",
			Type: "raw",
		},
		Source: &libvirtxml.DomainDiskSource{
			File: &libvirtxml.DomainDiskSourceFile{
				File: opts.SeedImagePath,
			},
		},
		Target: &libvirtxml.DomainDiskTarget{
			Dev: seedDiskTarget,
			Bus: "sata",
		},
		ReadOnly: &libvirtxml.DomainDiskReadOnly{},
	}

	replaced := false
	for i, disk := range dom.Devices.Disks {
		if disk.Target != nil && disk.Target.Dev == seedDiskTarget {
			dom.Devices.Disks[i] = seed
			replaced = true
		}
	}

	if !replaced {
		dom.Devices.Disks = append(dom.Devices.Disks, seed)
	}

	iface := &dom.Devices.Interfaces[0]
	if opts.NetworkInterface != "" {
		iface.Source = &libvirtxml.DomainInterfaceSource{
			Bridge: &libvirtxml.DomainInterfaceSourceBridge{
				Bridge: opts.NetworkInterface,
			},
		}
	} else {
		iface.Source = &libvirtxml.DomainInterfaceSource{
			Network: &libvirtxml.DomainInterfaceSourceNetwork{
				Network: defaultNetwork,
			},
		}
	}

	dom.QEMUCommandline = nil
	if len(opts.ExtraArgs) > 0 {
		args := make([]libvirtxml.DomainQEMUCommandlineArg, 0, len(opts.ExtraArgs))
		for _, arg := range opts.ExtraArgs {
			args = append(args, libvirtxml.DomainQEMUCommandlineArg{Value: arg})
		}

		dom.QEMUCommandline = &libvirtxml.DomainQEMUCommandline{Args: args}
	}

	return nil
}
