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
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexandremahdhaoui/machina/internal/types"
	"github.com/alexandremahdhaoui/machina/pkg/cloudinit"
)

const (
	// SeedImageFileName is the name of the cloud-init seed image in a machine's directory.
	SeedImageFileName = "cloud-init.iso"

	// defaultInterfaceNamePattern matches the predictable names of virtio and Apple virtualization NICs.
	defaultInterfaceNamePattern = "en*"
)

var (
	ErrSeedImage       = errors.New("ensuring cloud-init seed image")
	ErrRemoveSeedImage = errors.New("removing cloud-init seed image")

	errRenderSeed = errors.New("rendering cloud-init seed")
	errWriteSeed  = errors.New("writing cloud-init seed image")
)

// --------------------------------------------------- INTERFACES --------------------------------------------------- //

// Provisioner guarantees a cloud-init seed image exists for a machine.
type Provisioner interface {
	// EnsureSeedImage returns the path of the machine's seed image, creating it if it does not exist yet. An existing
	// image is never regenerated.
	EnsureSeedImage(ctx context.Context, machine types.Machine) (string, error)
	// RemoveSeedImage removes the seed image of machine id. Removing an absent image is not an error.
	RemoveSeedImage(ctx context.Context, id string) error
}

// --------------------------------------------------- CONSTRUCTORS ------------------------------------------------- //

// NewSeedProvisioner returns a Provisioner writing seed images to <baseDir>/<id>/cloud-init.iso.
// defaultUsers are added to the generated user-data of machines which do not provide their own.
func NewSeedProvisioner(baseDir string, defaultUsers ...cloudinit.User) Provisioner {
	return &seedProvisioner{
		baseDir:      baseDir,
		defaultUsers: defaultUsers,
	}
}

// --------------------------------------------- CONCRETE IMPLEMENTATION -------------------------------------------- //

type seedProvisioner struct {
	baseDir      string
	defaultUsers []cloudinit.User
}

func (p *seedProvisioner) EnsureSeedImage(ctx context.Context, machine types.Machine) (string, error) {
	path := SeedImagePath(p.baseDir, machine.ID)

	if _, err := os.Stat(path); err == nil {
		slog.DebugContext(ctx, "reusing cloud-init seed image", "id", machine.ID, "path", path)
		return path, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", errors.Join(err, fmt.Errorf("path=%s", path), ErrSeedImage)
	}

	seed, err := p.render(machine)
	if err != nil {
		return "", errors.Join(err, errRenderSeed, ErrSeedImage)
	}

	buf := new(bytes.Buffer)
	if err := seed.WriteISO(buf); err != nil {
		return "", errors.Join(err, errWriteSeed, ErrSeedImage)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Join(err, errWriteSeed, ErrSeedImage)
	}

	if err := writeFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return "", errors.Join(err, fmt.Errorf("path=%s", path), errWriteSeed, ErrSeedImage)
	}

	slog.InfoContext(ctx, "created cloud-init seed image", "id", machine.ID, "path", path)

	return path, nil
}

func (p *seedProvisioner) RemoveSeedImage(ctx context.Context, id string) error {
	path := SeedImagePath(p.baseDir, id)

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Join(err, fmt.Errorf("path=%s", path), ErrRemoveSeedImage)
	}

	// the machine directory may hold files of the driver.
	if err := os.Remove(filepath.Dir(path)); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.DebugContext(ctx, "keeping machine directory", "id", id, "error", err.Error())
	}

	slog.InfoContext(ctx, "removed cloud-init seed image", "id", id, "path", path)

	return nil
}

func (p *seedProvisioner) render(machine types.Machine) (cloudinit.Seed, error) {
	metaData, err := cloudinit.MetaData{
		InstanceID:    machine.ID,
		LocalHostname: machine.Name,
	}.Render()
	if err != nil {
		return cloudinit.Seed{}, err
	}

	networkConfig, err := cloudinit.NewDHCPNetworkConfig(defaultInterfaceNamePattern).Render()
	if err != nil {
		return cloudinit.Seed{}, err
	}

	var userData string
	if machine.UserData != nil {
		userData = *machine.UserData
	} else {
		userData, err = cloudinit.UserData{
			Hostname: machine.Name,
			Users:    p.defaultUsers,
		}.Render()
		if err != nil {
			return cloudinit.Seed{}, err
		}
	}

	return cloudinit.Seed{
		MetaData:      metaData,
		UserData:      userData,
		NetworkConfig: networkConfig,
	}, nil
}

// SeedImagePath returns the deterministic path of the seed image of machine id.
func SeedImagePath(baseDir, id string) string {
	return filepath.Join(baseDir, id, SeedImageFileName)
}
