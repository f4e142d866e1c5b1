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

	"github.com/alexandremahdhaoui/machina/internal/adapter"
	"github.com/alexandremahdhaoui/machina/internal/types"
	"github.com/alexandremahdhaoui/machina/internal/util/keylock"
)

const maxIDAttempts = 5

var (
	ErrMachineGet    = errors.New("getting machine")
	ErrMachineList   = errors.New("listing machines")
	ErrMachineCreate = errors.New("creating machine record")
	ErrMachineStart  = errors.New("starting machine record")
	ErrMachineStop   = errors.New("stopping machine record")
	ErrMachineDelete = errors.New("deleting machine record")

	errGenerateID = errors.New("cannot generate a unique machine id")
	errLockRecord = errors.New("acquiring machine record lock")
	errPersist    = errors.New("persisting machine record")
)

// ---------------------------------------------------- INTERFACES -------------------------------------------------- //

// Machine manages the machine records and drives their lifecycle. Operations on the same ID hold a lock from the
// record lookup until the record is persisted or removed.
type Machine interface {
	// Get returns the record or an error wrapping adapter.ErrMachineNotFound.
	Get(ctx context.Context, id string) (types.Machine, error)
	// List returns every record ordered by ID.
	List(ctx context.Context) ([]types.Machine, error)
	// Create validates the request, creates the machine and persists its record.
	Create(ctx context.Context, req types.MachineRequest) (types.Machine, error)
	// Start starts the machine and persists the refreshed record.
	Start(ctx context.Context, id string) (types.Machine, error)
	// Stop stops the machine.
	Stop(ctx context.Context, id string) (types.Machine, error)
	// Delete deletes the machine and its record.
	Delete(ctx context.Context, id string) (types.Machine, error)
}

// --------------------------------------------------- CONSTRUCTORS ------------------------------------------------- //

// NewMachine returns a Machine.
func NewMachine(store adapter.MachineStore, lifecycle Lifecycle) Machine {
	return &machine{
		store:     store,
		lifecycle: lifecycle,
		newID:     types.NewMachineID,
	}
}

// ----------------------------------------------------- MACHINE ---------------------------------------------------- //

type machine struct {
	store     adapter.MachineStore
	lifecycle Lifecycle

	newID func() string
	locks keylock.Locker
}

func (c *machine) Get(ctx context.Context, id string) (types.Machine, error) {
	m, err := c.store.Get(ctx, id)
	if err != nil {
		return types.Machine{}, errors.Join(err, ErrMachineGet)
	}

	return m, nil
}

func (c *machine) List(ctx context.Context) ([]types.Machine, error) {
	list, err := c.store.List(ctx)
	if err != nil {
		return nil, errors.Join(err, ErrMachineList)
	}

	return list, nil
}

func (c *machine) Create(ctx context.Context, req types.MachineRequest) (types.Machine, error) {
	if err := req.Validate(); err != nil {
		return types.Machine{}, errors.Join(err, ErrMachineCreate)
	}

	id, err := c.uniqueID(ctx)
	if err != nil {
		return types.Machine{}, errors.Join(err, ErrMachineCreate)
	}

	release, err := c.lock(ctx, id)
	if err != nil {
		return types.Machine{}, errors.Join(err, ErrMachineCreate)
	}

	defer release()

	m := req.ToMachine(id)

	out, err := c.lifecycle.Create(ctx, m)
	if err != nil {
		// no record is kept for a machine that failed to come up.
		if _, rollbackErr := c.lifecycle.Delete(context.WithoutCancel(ctx), m); rollbackErr != nil {
			slog.ErrorContext(ctx, "rolling back machine", "id", id, "error", rollbackErr.Error())
		}

		return types.Machine{}, errors.Join(err, ErrMachineCreate)
	}

	if err := c.store.Set(ctx, out); err != nil {
		return types.Machine{}, errors.Join(err, errPersist, ErrMachineCreate)
	}

	slog.InfoContext(ctx, "created machine", "id", out.ID, "name", out.Name)

	return out, nil
}

func (c *machine) Start(ctx context.Context, id string) (types.Machine, error) {
	release, err := c.lock(ctx, id)
	if err != nil {
		return types.Machine{}, errors.Join(err, ErrMachineStart)
	}

	defer release()

	m, err := c.store.Get(ctx, id)
	if err != nil {
		return types.Machine{}, errors.Join(err, ErrMachineStart)
	}

	out, err := c.lifecycle.Start(ctx, m)
	if err != nil {
		return types.Machine{}, errors.Join(err, ErrMachineStart)
	}

	if err := c.store.Set(ctx, out); err != nil {
		return types.Machine{}, errors.Join(err, errPersist, ErrMachineStart)
	}

	return out, nil
}

func (c *machine) Stop(ctx context.Context, id string) (types.Machine, error) {
	release, err := c.lock(ctx, id)
	if err != nil {
		return types.Machine{}, errors.Join(err, ErrMachineStop)
	}

	defer release()

	m, err := c.store.Get(ctx, id)
	if err != nil {
		return types.Machine{}, errors.Join(err, ErrMachineStop)
	}

	out, err := c.lifecycle.Stop(ctx, m)
	if err != nil {
		return types.Machine{}, errors.Join(err, ErrMachineStop)
	}

	if err := c.store.Set(ctx, out); err != nil {
		return types.Machine{}, errors.Join(err, errPersist, ErrMachineStop)
	}

	return out, nil
}

func (c *machine) Delete(ctx context.Context, id string) (types.Machine, error) {
	release, err := c.lock(ctx, id)
	if err != nil {
		return types.Machine{}, errors.Join(err, ErrMachineDelete)
	}

	defer release()

	m, err := c.store.Get(ctx, id)
	if err != nil {
		return types.Machine{}, errors.Join(err, ErrMachineDelete)
	}

	out, err := c.lifecycle.Delete(ctx, m)
	if err != nil {
		return types.Machine{}, errors.Join(err, ErrMachineDelete)
	}

	if err := c.store.Delete(ctx, id); err != nil && !errors.Is(err, adapter.ErrMachineNotFound) {
		return types.Machine{}, errors.Join(err, ErrMachineDelete)
	}

	slog.InfoContext(ctx, "deleted machine", "id", id)

	return out, nil
}

func (c *machine) lock(ctx context.Context, id string) (func(), error) {
	release, err := c.locks.Acquire(ctx, id)
	if err != nil {
		return nil, errors.Join(err, fmt.Errorf("id=%s", id), errLockRecord)
	}

	return release, nil
}

// uniqueID returns an ID no stored record uses.
func (c *machine) uniqueID(ctx context.Context) (string, error) {
	for range maxIDAttempts {
		id := c.newID()

		_, err := c.store.Get(ctx, id)
		if errors.Is(err, adapter.ErrMachineNotFound) {
			return id, nil
		}

		if err != nil {
			return "", errors.Join(err, errGenerateID)
		}

		slog.DebugContext(ctx, "machine id collision", "id", id)
	}

	return "", errors.Join(fmt.Errorf("attempts=%d", maxIDAttempts), errGenerateID)
}
