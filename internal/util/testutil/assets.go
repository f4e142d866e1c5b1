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

// Package testutil holds machine fixtures shared by tests.
package testutil

import (
	"k8s.io/utils/ptr"

	"github.com/alexandremahdhaoui/machina/internal/types"
)

const (
	MachineID   = "i-0123456789ab"
	MachineName = "test-machine"
	MachineIP   = "4.3.2.1"
	BaseImage   = "debian:bookworm"
)

// NewMachineRequest returns a minimal valid request.
func NewMachineRequest() types.MachineRequest {
	return types.MachineRequest{
		Name:      MachineName,
		VCPU:      2,
		Memory:    1024,
		BaseImage: BaseImage,
	}
}

// NewMachine returns the machine created from NewMachineRequest once its address has been resolved.
func NewMachine() types.Machine {
	m := NewMachineRequest().ToMachine(MachineID)
	m.ResolvedIP = ptr.To(MachineIP)

	return m
}
