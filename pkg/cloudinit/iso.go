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

package cloudinit

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kdomanski/iso9660"
)

const (
	// VolumeLabel is the ISO volume identifier the NoCloud datasource looks for.
	VolumeLabel = "CIDATA"

	MetaDataFileName      = "meta-data"
	UserDataFileName      = "user-data"
	NetworkConfigFileName = "network-config"
)

var (
	ErrCreateISOWriter = errors.New("creating iso writer")
	ErrAddISOFile      = errors.New("adding file to iso")
	ErrWriteISO        = errors.New("writing iso image")
)

// Seed holds the rendered documents of a NoCloud seed.
type Seed struct {
	MetaData      string
	UserData      string
	NetworkConfig string
}

// WriteISO packs the seed into an ISO9660 image labelled VolumeLabel and writes it to w.
func (s Seed) WriteISO(w io.Writer) error {
	writer, err := iso9660.NewWriter()
	if err != nil {
		return errors.Join(err, ErrCreateISOWriter)
	}

	defer func() { _ = writer.Cleanup() }()

	for _, f := range []struct {
		name    string
		content string
	}{
		{name: MetaDataFileName, content: s.MetaData},
		{name: UserDataFileName, content: s.UserData},
		{name: NetworkConfigFileName, content: s.NetworkConfig},
	} {
		if err := writer.AddFile(strings.NewReader(f.content), f.name); err != nil {
			return errors.Join(err, fmt.Errorf("file=%s", f.name), ErrAddISOFile)
		}
	}

	if err := writer.WriteTo(w, VolumeLabel); err != nil {
		return errors.Join(err, ErrWriteISO)
	}

	return nil
}
