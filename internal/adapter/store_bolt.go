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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/alexandremahdhaoui/machina/internal/types"
)

const boltOpenTimeout = 5 * time.Second

var (
	ErrOpenStore = errors.New("opening machine store")

	machinesBucket = []byte("machines")
)

// NewBoltStore opens (creating if needed) a MachineStore persisted in the bolt database at path.
func NewBoltStore(path string) (MachineStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Join(err, ErrOpenStore)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, errors.Join(err, fmt.Errorf("path=%s", path), ErrOpenStore)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(machinesBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, errors.Join(err, ErrOpenStore)
	}

	return &boltStore{db: db}, nil
}

type boltStore struct {
	db *bolt.DB
}

func (s *boltStore) Get(_ context.Context, id string) (types.Machine, error) {
	var m types.Machine

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(machinesBucket).Get([]byte(id))
		if b == nil {
			return errors.Join(fmt.Errorf("id=%s", id), ErrMachineNotFound)
		}

		return json.Unmarshal(b, &m)
	})
	if err != nil {
		return types.Machine{}, errors.Join(err, errStoreGet)
	}

	return m, nil
}

func (s *boltStore) Set(_ context.Context, machine types.Machine) error {
	if machine.ID == "" {
		return errors.Join(errMachineIDEmpty, errStoreSet)
	}

	b, err := json.Marshal(machine)
	if err != nil {
		return errors.Join(err, errStoreSet)
	}

	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(machinesBucket).Put([]byte(machine.ID), b)
	}); err != nil {
		return errors.Join(err, errStoreSet)
	}

	return nil
}

func (s *boltStore) Delete(_ context.Context, id string) error {
	if err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(machinesBucket)
		if bucket.Get([]byte(id)) == nil {
			return errors.Join(fmt.Errorf("id=%s", id), ErrMachineNotFound)
		}

		return bucket.Delete([]byte(id))
	}); err != nil {
		return errors.Join(err, errStoreDelete)
	}

	return nil
}

// List returns machines in key order, which bolt guarantees to be byte-sorted.
func (s *boltStore) List(_ context.Context) ([]types.Machine, error) {
	out := make([]types.Machine, 0)

	if err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(machinesBucket).ForEach(func(k, v []byte) error {
			var m types.Machine
			if err := json.Unmarshal(v, &m); err != nil {
				return errors.Join(err, fmt.Errorf("id=%s", k))
			}

			out = append(out, m)

			return nil
		})
	}); err != nil {
		return nil, errors.Join(err, errStoreList)
	}

	return out, nil
}

func (s *boltStore) Close() error {
	return s.db.Close()
}
