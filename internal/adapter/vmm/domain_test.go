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

package vmm

import (
	"testing"

	"github.com/alexandremahdhaoui/machina/internal/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
	"libvirt.org/go/libvirtxml"
)

// roundTrip marshals and parses dom, the way redefine does.
func roundTrip(t *testing.T, dom *libvirtxml.Domain) *libvirtxml.Domain {
	t.Helper()

	xmlStr, err := dom.Marshal()
	require.NoError(t, err)

	out := &libvirtxml.Domain{}
	require.NoError(t, out.Unmarshal(xmlStr))

	return out
}

func TestNewDomain(t *testing.T) {
	dom := roundTrip(t, newDomain("i-0123456789ab", "/var/lib/machina/i-0123456789ab/disk.qcow2"))

	assert.Equal(t, "i-0123456789ab", dom.Name)
	assert.Equal(t, "kvm", dom.Type)

	require.NotNil(t, dom.Devices)
	require.Len(t, dom.Devices.Disks, 1)
	assert.Equal(t, "/var/lib/machina/i-0123456789ab/disk.qcow2", dom.Devices.Disks[0].Source.File.File)
	assert.Equal(t, "vda", dom.Devices.Disks[0].Target.Dev)

	require.Len(t, dom.Devices.Interfaces, 1)
	assert.Equal(t, defaultNetwork, dom.Devices.Interfaces[0].Source.Network.Network)
	assert.Nil(t, dom.Devices.Interfaces[0].MAC)

	require.Len(t, dom.Devices.Consoles, 1)
	require.NotNil(t, dom.Devices.Consoles[0].Target)
	assert.Equal(t, "serial", dom.Devices.Consoles[0].Target.Type)
	assert.Equal(t, ptr.To(uint(0)), dom.Devices.Consoles[0].Target.Port)
}

func TestApplyResources(t *testing.T) {
	dom := newDomain("i-0123456789ab", "/disk.qcow2")
	applyResources(dom, adapter.Resources{VCPU: 4, MemoryMiB: 2048, DiskSizeG: 20})

	dom = roundTrip(t, dom)

	assert.Equal(t, uint(4), dom.VCPU.Value)
	assert.Equal(t, uint(2048), dom.Memory.Value)
	assert.Equal(t, "MiB", dom.Memory.Unit)
}

func TestApplyMACAddress(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		dom := newDomain("i-0123456789ab", "/disk.qcow2")
		require.NoError(t, applyMACAddress(dom, "AA:BB:CC:DD:EE:FF"))

		dom = roundTrip(t, dom)

		require.NotNil(t, dom.Devices.Interfaces[0].MAC)
		assert.Equal(t, "aa:bb:cc:dd:ee:ff", dom.Devices.Interfaces[0].MAC.Address)
	})

	t.Run("No interface", func(t *testing.T) {
		dom := newDomain("i-0123456789ab", "/disk.qcow2")
		dom.Devices.Interfaces = nil

		assert.ErrorIs(t, applyMACAddress(dom, "aa:bb:cc:dd:ee:ff"), errNoInterface)
	})
}

func TestApplyLaunchOptions(t *testing.T) {
	t.Run("Bridged with extra args", func(t *testing.T) {
		dom := newDomain("i-0123456789ab", "/disk.qcow2")

		require.NoError(t, applyLaunchOptions(dom, adapter.LaunchOptions{
			SeedImagePath:    "/seed.iso",
			NetworkInterface: "br0",
			ExtraArgs:        []string{"-smbios", "type=1,serial=abc"},
		}))

		dom = roundTrip(t, dom)

		require.Len(t, dom.Devices.Disks, 2)
		seed := dom.Devices.Disks[1]
		assert.Equal(t, "cdrom", seed.Device)
		assert.Equal(t, "/seed.iso", seed.Source.File.File)
		assert.NotNil(t, seed.ReadOnly)

		require.NotNil(t, dom.Devices.Interfaces[0].Source.Bridge)
		assert.Equal(t, "br0", dom.Devices.Interfaces[0].Source.Bridge.Bridge)

		require.NotNil(t, dom.QEMUCommandline)
		require.Len(t, dom.QEMUCommandline.Args, 2)
		assert.Equal(t, "-smbios", dom.QEMUCommandline.Args[0].Value)
		assert.Equal(t, "type=1,serial=abc", dom.QEMUCommandline.Args[1].Value)
	})

	t.Run("Relaunch replaces the seed disk", func(t *testing.T) {
		dom := newDomain("i-0123456789ab", "/disk.qcow2")

		require.NoError(t, applyLaunchOptions(dom, adapter.LaunchOptions{
			SeedImagePath: "/old.iso",
			ExtraArgs:     []string{"-no-reboot"},
		}))
		require.NoError(t, applyLaunchOptions(dom, adapter.LaunchOptions{SeedImagePath: "/new.iso"}))

		dom = roundTrip(t, dom)

		require.Len(t, dom.Devices.Disks, 2)
		assert.Equal(t, "/new.iso", dom.Devices.Disks[1].Source.File.File)
		assert.Equal(t, defaultNetwork, dom.Devices.Interfaces[0].Source.Network.Network)
		assert.Nil(t, dom.QEMUCommandline)
	})
}
