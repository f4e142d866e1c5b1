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

// Package cloudinit renders the documents of a cloud-init NoCloud seed and packs them into an ISO9660 image.
package cloudinit

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"
)

var (
	ErrRender          = errors.New("rendering cloud-init document")
	ErrReadPublicKey   = errors.New("reading ssh public key")
	ErrEmptyPublicKey  = errors.New("ssh public key file is empty")
	ErrUserNameMissing = errors.New("user name cannot be empty")
)

const cloudConfigHeader = "#cloud-config\n"

type User struct {
	Name              string   `json:"name"`
	Sudo              string   `json:"sudo,omitempty"`
	Shell             string   `json:"shell,omitempty"`
	HomeDir           string   `json:"homedir,omitempty"`
	SSHAuthorizedKeys []string `json:"ssh_authorized_keys,omitempty"`
}

// NewUser returns a passwordless sudoer whose authorized keys are read from publicKeyPathList.
func NewUser(name string, publicKeyPathList ...string) (User, error) {
	if name == "" {
		return User{}, ErrUserNameMissing
	}

	authorizedKeys := make([]string, 0, len(publicKeyPathList))
	for _, path := range publicKeyPathList {
		b, err := os.ReadFile(path)
		if err != nil {
			return User{}, errors.Join(err, fmt.Errorf("path=%s", path), ErrReadPublicKey)
		}

		key := strings.TrimSpace(string(b))
		if key == "" {
			return User{}, errors.Join(fmt.Errorf("path=%s", path), ErrEmptyPublicKey)
		}

		authorizedKeys = append(authorizedKeys, key)
	}

	return User{
		Name:              name,
		Sudo:              "ALL=(ALL) NOPASSWD:ALL",
		Shell:             "/bin/bash",
		SSHAuthorizedKeys: authorizedKeys,
	}, nil
}

type WriteFile struct {
	Path        string `json:"path"`
	Permissions string `json:"permissions,omitempty"`
	Content     string `json:"content"`
}

// UserData is the default cloud-config document used when a machine does not bring its own user-data.
type UserData struct {
	Hostname      string      `json:"hostname"`
	PackageUpdate bool        `json:"package_update,omitempty"`
	Packages      []string    `json:"packages,omitempty"`
	Users         []User      `json:"users,omitempty"`
	WriteFiles    []WriteFile `json:"write_files,omitempty"`
	RunCommands   []string    `json:"runcmd,omitempty"`
}

// Render returns the user-data as a "#cloud-config" document.
func (ud UserData) Render() (string, error) {
	b, err := yaml.Marshal(ud)
	if err != nil {
		return "", errors.Join(err, ErrRender)
	}

	return cloudConfigHeader + string(b), nil
}
