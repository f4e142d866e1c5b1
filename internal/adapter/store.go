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
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/alexandremahdhaoui/machina/internal/types"
)

var (
	ErrMachineNotFound = errors.New("machine not found")

	errMachineIDEmpty = errors.New("machine id cannot be empty")
	errStoreGet       = errors.New("getting machine from store")
	errStoreSet       = errors.New("setting machine in store")
	errStoreDelete    = errors.New("deleting machine from store")
	errStoreList      = errors.New("listing machines from store")
)

// --------------------------------------------------- INTERFACES --------------------------------------------------- //

// MachineStore persists Machine records keyed by their ID.
type MachineStore interface {
	// Get returns the machine or an error wrapping ErrMachineNotFound.
	Get(ctx context.Context, id string) (types.Machine, error)
	// Set creates or replaces the machine.
	Set(ctx context.Context, machine types.Machine) error
	// Delete removes the machine or returns an error wrapping ErrMachineNotFound.
	Delete(ctx context.Context, id string) error
	// List returns all machines ordered by ID.
	List(ctx context.Context) ([]types.Machine, error)
	// Close releases the resources held by the store.
	Close() error
}

// --------------------------------------------------- CONSTRUCTORS ------------------------------------------------- //

// NewMemoryStore returns a MachineStore held in memory.
func NewMemoryStore() MachineStore {
	return &memoryStore{
		machines: make(map[string]types.Machine),
	}
}

// --------------------------------------------- CONCRETE IMPLEMENTATION -------------------------------------------- //

type memoryStore struct {
	mu       sync.RWMutex
	machines map[string]types.Machine
}

func (s *memoryStore) Get(_ context.Context, id string) (types.Machine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.machines[id]
	if !ok {
		return types.Machine{}, errors.Join(fmt.Errorf("id=%s", id), ErrMachineNotFound, errStoreGet)
	}

	return cloneMachine(m), nil
}

func (s *memoryStore) Set(_ context.Context, machine types.Machine) error {
	if machine.ID == "" {
		return errors.Join(errMachineIDEmpty, errStoreSet)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.machines[machine.ID] = cloneMachine(machine)

	return nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.machines[id]; !ok {
		return errors.Join(fmt.Errorf("id=%s", id), ErrMachineNotFound, errStoreDelete)
	}

	delete(s.machines, id)

	return nil
}

func (s *memoryStore) List(_ context.Context) ([]types.Machine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Machine, 0, len(s.machines))
	for _, m := range s.machines {
		out = append(out, cloneMachine(m))
	}

	slices.SortFunc(out, func(a, b types.Machine) int {
		return strings.Compare(a.ID, b.ID)
	})

	return out, nil
}

func (s *memoryStore) Close() error {
	return nil
}

// cloneMachine deep-copies the reference fields of m so callers cannot mutate stored records.
func cloneMachine(m types.Machine) types.Machine {
	m.ExtraArgs = slices.Clone(m.ExtraArgs)
	m.NetworkInterface = clonePtr(m.NetworkInterface)
	m.MACAddress = clonePtr(m.MACAddress)
	m.UserData = clonePtr(m.UserData)
	m.ResolvedIP = clonePtr(m.ResolvedIP)

	return m
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}
