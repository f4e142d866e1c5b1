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
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const (
	// TartConfigFileName is the name of the configuration document of a tart VM.
	TartConfigFileName = "config.json"

	tartMACAddressField = "macAddress"

	defaultLockTimeout = 30 * time.Second
	lockRetryDelay     = 100 * time.Millisecond
)

var (
	// ErrConfigPatch is returned when the configuration document of a machine cannot be patched.
	ErrConfigPatch = errors.New("patching machine configuration")

	errAcquireConfigLock = errors.New("acquiring configuration lock")
	errReadConfig        = errors.New("reading configuration document")
	errParseConfig       = errors.New("parsing configuration document")
	errWriteConfig       = errors.New("writing configuration document")
)

// NewTartConfigPatcher returns a ConfigPatcher editing <vmHome>/<id>/config.json.
func NewTartConfigPatcher(vmHome string) ConfigPatcher {
	return &tartConfigPatcher{
		vmHome:      vmHome,
		lockTimeout: defaultLockTimeout,
	}
}

type tartConfigPatcher struct {
	vmHome      string
	lockTimeout time.Duration
}

func (p *tartConfigPatcher) PatchMACAddress(ctx context.Context, id, mac string) error {
	path := filepath.Join(p.vmHome, id, TartConfigFileName)
	mac = strings.ToLower(mac)

	if err := p.patch(ctx, path, func(doc map[string]json.RawMessage) error {
		b, err := json.Marshal(mac)
		if err != nil {
			return err
		}

		doc[tartMACAddressField] = b

		return nil
	}); err != nil {
		return errors.Join(err, fmt.Errorf("id=%s", id), ErrConfigPatch)
	}

	slog.InfoContext(ctx, "patched machine mac address", "id", id, "macAddress", mac)

	return nil
}

// patch runs a locked read-modify-write of the JSON document at path. Fields the transform does not touch are
// preserved. The new document replaces the old one atomically.
func (p *tartConfigPatcher) patch(
	ctx context.Context,
	path string,
	transform func(map[string]json.RawMessage) error,
) error {
	fileLock := flock.New(strings.TrimSuffix(path, filepath.Ext(path)) + ".lock")

	lockCtx, cancel := context.WithTimeout(ctx, p.lockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil || !locked {
		return errors.Join(err, fmt.Errorf("path=%s", path), errAcquireConfigLock)
	}

	defer func() { _ = fileLock.Unlock() }()

	info, err := os.Stat(path)
	if err != nil {
		return errors.Join(err, errReadConfig)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(err, errReadConfig)
	}

	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(b, &doc); err != nil {
		return errors.Join(err, errParseConfig)
	}

	if err := transform(doc); err != nil {
		return errors.Join(err, errParseConfig)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return errors.Join(err, errWriteConfig)
	}

	if err := writeFileAtomic(path, out, info.Mode().Perm()); err != nil {
		return errors.Join(err, errWriteConfig)
	}

	return nil
}

// writeFileAtomic writes data to a temporary file next to path and renames it over path, so readers observe either
// the old or the new content.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	// no-op once renamed.
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
