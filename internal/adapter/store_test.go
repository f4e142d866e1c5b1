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
	"path/filepath"
	"testing"

	"github.com/alexandremahdhaoui/machina/internal/adapter"
	"github.com/alexandremahdhaoui/machina/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestMachineStore(t *testing.T) {
	for _, tc := range []struct {
		name string
		new  func(t *testing.T) adapter.MachineStore
	}{
		{
			name: "memory",
			new: func(t *testing.T) adapter.MachineStore {
				return adapter.NewMemoryStore()
			},
		},
		{
			name: "bolt",
			new: func(t *testing.T) adapter.MachineStore {
				store, err := adapter.NewBoltStore(filepath.Join(t.TempDir(), "state", "machina.db"))
				require.NoError(t, err)

				return store
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var (
				ctx   context.Context
				store adapter.MachineStore
			)

			setup := func(t *testing.T) {
				t.Helper()

				ctx = context.Background()
				store = tc.new(t)

				t.Cleanup(func() { _ = store.Close() })
			}

			newMachine := func(id string) types.Machine {
				return types.Machine{
					ID:               id,
					Name:             "vm-" + id,
					VCPU:             2,
					Memory:           1024,
					DiskSize:         10,
					BaseImage:        "debian:bookworm",
					NetworkInterface: ptr.To("en0"),
					ExtraArgs:        []string{"--rosetta", "rosetta"},
					ResolvedIP:       ptr.To("4.3.2.1"),
				}
			}

			t.Run("Set and Get", func(t *testing.T) {
				setup(t)

				expected := newMachine("i-000000000001")
				require.NoError(t, store.Set(ctx, expected))

				actual, err := store.Get(ctx, expected.ID)
				require.NoError(t, err)
				assert.Equal(t, expected, actual)
			})

			t.Run("Set replaces", func(t *testing.T) {
				setup(t)

				m := newMachine("i-000000000001")
				require.NoError(t, store.Set(ctx, m))

				m.ResolvedIP = nil
				require.NoError(t, store.Set(ctx, m))

				actual, err := store.Get(ctx, m.ID)
				require.NoError(t, err)
				assert.Nil(t, actual.ResolvedIP)
			})

			t.Run("Set without ID", func(t *testing.T) {
				setup(t)

				assert.Error(t, store.Set(ctx, types.Machine{Name: "no-id"}))
			})

			t.Run("Get not found", func(t *testing.T) {
				setup(t)

				_, err := store.Get(ctx, "i-ffffffffffff")
				assert.ErrorIs(t, err, adapter.ErrMachineNotFound)
			})

			t.Run("Stored records are isolated from callers", func(t *testing.T) {
				setup(t)

				m := newMachine("i-000000000001")
				require.NoError(t, store.Set(ctx, m))

				m.ExtraArgs[0] = "mutated"
				*m.NetworkInterface = "mutated"

				actual, err := store.Get(ctx, m.ID)
				require.NoError(t, err)
				assert.Equal(t, "--rosetta", actual.ExtraArgs[0])
				assert.Equal(t, "en0", *actual.NetworkInterface)
			})

			t.Run("Delete", func(t *testing.T) {
				setup(t)

				m := newMachine("i-000000000001")
				require.NoError(t, store.Set(ctx, m))
				require.NoError(t, store.Delete(ctx, m.ID))

				_, err := store.Get(ctx, m.ID)
				assert.ErrorIs(t, err, adapter.ErrMachineNotFound)

				assert.ErrorIs(t, store.Delete(ctx, m.ID), adapter.ErrMachineNotFound)
			})

			t.Run("List", func(t *testing.T) {
				setup(t)

				empty, err := store.List(ctx)
				require.NoError(t, err)
				assert.NotNil(t, empty)
				assert.Empty(t, empty)

				for _, id := range []string{"i-00000000000c", "i-00000000000a", "i-00000000000b"} {
					require.NoError(t, store.Set(ctx, newMachine(id)))
				}

				list, err := store.List(ctx)
				require.NoError(t, err)
				require.Len(t, list, 3)
				assert.Equal(t, "i-00000000000a", list[0].ID)
				assert.Equal(t, "i-00000000000b", list[1].ID)
				assert.Equal(t, "i-00000000000c", list[2].ID)
			})
		})
	}
}

func TestBoltStore_Persistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "machina.db")

	store, err := adapter.NewBoltStore(path)
	require.NoError(t, err)

	expected := types.Machine{ID: "i-000000000001", Name: "persisted", VCPU: 1, Memory: 512, DiskSize: 10}
	require.NoError(t, store.Set(ctx, expected))
	require.NoError(t, store.Close())

	reopened, err := adapter.NewBoltStore(path)
	require.NoError(t, err)

	defer func() { _ = reopened.Close() }()

	actual, err := reopened.Get(ctx, expected.ID)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}
