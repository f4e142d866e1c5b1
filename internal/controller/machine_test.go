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

package controller_test

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexandremahdhaoui/machina/internal/adapter"
	"github.com/alexandremahdhaoui/machina/internal/controller"
	"github.com/alexandremahdhaoui/machina/internal/types"
	"github.com/alexandremahdhaoui/machina/internal/util/mocks/mockadapter"
	"github.com/alexandremahdhaoui/machina/internal/util/mocks/mockcontroller"
	"github.com/alexandremahdhaoui/machina/internal/util/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestMachine(t *testing.T) {
	var (
		ctx       context.Context
		store     *mockadapter.MockMachineStore
		lifecycle *mockcontroller.MockLifecycle
		machine   controller.Machine
	)

	setup := func(t *testing.T) {
		t.Helper()

		ctx = context.Background()
		store = mockadapter.NewMockMachineStore(t)
		lifecycle = mockcontroller.NewMockLifecycle(t)
		machine = controller.NewMachine(store, lifecycle)
	}

	isGeneratedID := mock.MatchedBy(func(id string) bool {
		return strings.HasPrefix(id, types.MachineIDPrefix)
	})

	isRequestedMachine := mock.MatchedBy(func(m types.Machine) bool {
		return strings.HasPrefix(m.ID, types.MachineIDPrefix) &&
			m.Name == "test-machine" &&
			m.DiskSize == types.DefaultDiskSize
	})

	withIP := func(m types.Machine) types.Machine {
		m.ResolvedIP = ptr.To(testIP)
		return m
	}

	t.Run("Get", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			setup(t)

			expected := newTestMachine()
			store.EXPECT().Get(ctx, testID).Return(expected, nil).Once()

			actual, err := machine.Get(ctx, testID)
			require.NoError(t, err)
			assert.Equal(t, expected, actual)
		})

		t.Run("Not found", func(t *testing.T) {
			setup(t)

			store.EXPECT().Get(ctx, testID).Return(types.Machine{}, adapter.ErrMachineNotFound).Once()

			_, err := machine.Get(ctx, testID)
			assert.ErrorIs(t, err, adapter.ErrMachineNotFound)
			assert.ErrorIs(t, err, controller.ErrMachineGet)
		})
	})

	t.Run("List", func(t *testing.T) {
		setup(t)

		expected := []types.Machine{newTestMachine()}
		store.EXPECT().List(ctx).Return(expected, nil).Once()

		actual, err := machine.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	})

	t.Run("Create", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			setup(t)

			var created types.Machine

			store.EXPECT().Get(ctx, isGeneratedID).Return(types.Machine{}, adapter.ErrMachineNotFound).Once()
			lifecycle.EXPECT().Create(ctx, isRequestedMachine).
				RunAndReturn(func(_ context.Context, m types.Machine) (types.Machine, error) {
					created = withIP(m)
					return created, nil
				}).Once()
			store.EXPECT().Set(ctx, mock.Anything).
				Run(func(_ context.Context, m types.Machine) { assert.Equal(t, created, m) }).
				Return(nil).Once()

			actual, err := machine.Create(ctx, testutil.NewMachineRequest())
			require.NoError(t, err)
			assert.Equal(t, created, actual)
			assert.Equal(t, testIP, *actual.ResolvedIP)
		})

		t.Run("ID collision", func(t *testing.T) {
			setup(t)

			store.EXPECT().Get(ctx, isGeneratedID).Return(newTestMachine(), nil).Once()
			store.EXPECT().Get(ctx, isGeneratedID).Return(types.Machine{}, adapter.ErrMachineNotFound).Once()
			lifecycle.EXPECT().Create(ctx, isRequestedMachine).
				RunAndReturn(func(_ context.Context, m types.Machine) (types.Machine, error) { return m, nil }).
				Once()
			store.EXPECT().Set(ctx, isRequestedMachine).Return(nil).Once()

			_, err := machine.Create(ctx, testutil.NewMachineRequest())
			require.NoError(t, err)
		})

		t.Run("Invalid request", func(t *testing.T) {
			setup(t)

			req := testutil.NewMachineRequest()
			req.VCPU = 0

			_, err := machine.Create(ctx, req)
			assert.ErrorIs(t, err, types.ErrInvalidMachineRequest)
			assert.ErrorIs(t, err, controller.ErrMachineCreate)
		})

		t.Run("Lifecycle failure rolls back", func(t *testing.T) {
			setup(t)

			store.EXPECT().Get(ctx, isGeneratedID).Return(types.Machine{}, adapter.ErrMachineNotFound).Once()
			lifecycle.EXPECT().Create(ctx, isRequestedMachine).
				Return(types.Machine{}, controller.ErrFailedPrecondition).Once()
			lifecycle.EXPECT().Delete(mock.Anything, isRequestedMachine).
				Return(types.Machine{}, adapter.ErrNotFound).Once()

			_, err := machine.Create(ctx, testutil.NewMachineRequest())
			assert.ErrorIs(t, err, controller.ErrFailedPrecondition)
			store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
		})

		t.Run("Store failure", func(t *testing.T) {
			setup(t)

			store.EXPECT().Get(ctx, isGeneratedID).Return(types.Machine{}, errExpected).Once()

			_, err := machine.Create(ctx, testutil.NewMachineRequest())
			assert.ErrorIs(t, err, errExpected)
			lifecycle.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	})

	t.Run("Start", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			setup(t)

			stored := newTestMachine()
			started := withIP(stored)

			store.EXPECT().Get(ctx, testID).Return(stored, nil).Once()
			lifecycle.EXPECT().Start(ctx, stored).Return(started, nil).Once()
			store.EXPECT().Set(ctx, started).Return(nil).Once()

			actual, err := machine.Start(ctx, testID)
			require.NoError(t, err)
			assert.Equal(t, started, actual)
		})

		t.Run("Not found", func(t *testing.T) {
			setup(t)

			store.EXPECT().Get(ctx, testID).Return(types.Machine{}, adapter.ErrMachineNotFound).Once()

			_, err := machine.Start(ctx, testID)
			assert.ErrorIs(t, err, adapter.ErrMachineNotFound)
		})

		t.Run("Lifecycle failure", func(t *testing.T) {
			setup(t)

			store.EXPECT().Get(ctx, testID).Return(newTestMachine(), nil).Once()
			lifecycle.EXPECT().Start(ctx, newTestMachine()).Return(types.Machine{}, controller.ErrLifecycleStart).Once()

			_, err := machine.Start(ctx, testID)
			assert.ErrorIs(t, err, controller.ErrLifecycleStart)
			store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
		})
	})

	t.Run("Stop", func(t *testing.T) {
		setup(t)

		stored := newTestMachine()

		store.EXPECT().Get(ctx, testID).Return(stored, nil).Once()
		lifecycle.EXPECT().Stop(ctx, stored).Return(stored, nil).Once()
		store.EXPECT().Set(ctx, stored).Return(nil).Once()

		actual, err := machine.Stop(ctx, testID)
		require.NoError(t, err)
		assert.Equal(t, stored, actual)
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			setup(t)

			stored := withIP(newTestMachine())

			store.EXPECT().Get(ctx, testID).Return(stored, nil).Once()
			lifecycle.EXPECT().Delete(ctx, stored).Return(stored, nil).Once()
			store.EXPECT().Delete(ctx, testID).Return(nil).Once()

			actual, err := machine.Delete(ctx, testID)
			require.NoError(t, err)
			assert.Equal(t, stored, actual)
		})

		t.Run("Not found", func(t *testing.T) {
			setup(t)

			store.EXPECT().Get(ctx, testID).Return(types.Machine{}, adapter.ErrMachineNotFound).Once()

			_, err := machine.Delete(ctx, testID)
			assert.ErrorIs(t, err, adapter.ErrMachineNotFound)
		})

		t.Run("Lifecycle failure keeps the record", func(t *testing.T) {
			setup(t)

			store.EXPECT().Get(ctx, testID).Return(newTestMachine(), nil).Once()
			lifecycle.EXPECT().Delete(ctx, newTestMachine()).Return(types.Machine{}, adapter.ErrOperationFailed).Once()

			_, err := machine.Delete(ctx, testID)
			assert.ErrorIs(t, err, adapter.ErrOperationFailed)
			store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		})
	})
}

func TestMachine_StopWaitsForDelete(t *testing.T) {
	ctx := context.Background()
	store := adapter.NewMemoryStore()
	lifecycle := mockcontroller.NewMockLifecycle(t)
	machine := controller.NewMachine(store, lifecycle)

	stored := newTestMachine()
	require.NoError(t, store.Set(ctx, stored))

	deleting := make(chan struct{})
	gate := make(chan struct{})

	lifecycle.EXPECT().Delete(mock.Anything, stored).
		RunAndReturn(func(context.Context, types.Machine) (types.Machine, error) {
			close(deleting)
			<-gate

			return stored, nil
		}).Once()

	deleteErr := make(chan error, 1)
	go func() {
		_, err := machine.Delete(ctx, testID)
		deleteErr <- err
	}()

	<-deleting

	var stopReturned atomic.Bool

	stopErr := make(chan error, 1)
	go func() {
		_, err := machine.Stop(ctx, testID)
		stopReturned.Store(true)
		stopErr <- err
	}()

	assert.Never(t, stopReturned.Load, 50*time.Millisecond, 5*time.Millisecond)
	close(gate)

	require.NoError(t, <-deleteErr)
	assert.ErrorIs(t, <-stopErr, adapter.ErrMachineNotFound)

	_, err := store.Get(ctx, testID)
	assert.ErrorIs(t, err, adapter.ErrMachineNotFound)
	lifecycle.AssertNotCalled(t, "Stop", mock.Anything, mock.Anything)
}
