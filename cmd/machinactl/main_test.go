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

package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/alexandremahdhaoui/machina/internal/adapter"
	"github.com/alexandremahdhaoui/machina/internal/driver/server"
	"github.com/alexandremahdhaoui/machina/internal/types"
	"github.com/alexandremahdhaoui/machina/internal/util/mocks/mockcontroller"
	"github.com/alexandremahdhaoui/machina/internal/util/testutil"
	"github.com/alexandremahdhaoui/machina/internal/util/ssh"
	"github.com/alexandremahdhaoui/machina/pkg/client"
)

const testID = testutil.MachineID

func TestMachinactl(t *testing.T) {
	var (
		machine *mockcontroller.MockMachine
		srvURL  string
	)

	setup := func(t *testing.T) {
		t.Helper()

		machine = mockcontroller.NewMockMachine(t)

		srv := httptest.NewServer(server.New(machine))
		t.Cleanup(srv.Close)

		srvURL = srv.URL
	}

	run := func(t *testing.T, args ...string) (string, error) {
		t.Helper()

		out := &bytes.Buffer{}
		root := newRootCmd(out)
		root.SetArgs(append([]string{"--server", srvURL}, args...))

		err := root.Execute()

		return out.String(), err
	}

	t.Run("get json", func(t *testing.T) {
		setup(t)
		machine.EXPECT().Get(mock.Anything, testID).Return(testutil.NewMachine(), nil).Once()

		out, err := run(t, "get", testID, "-o", "json")
		require.NoError(t, err)

		var actual types.Machine
		require.NoError(t, json.Unmarshal([]byte(out), &actual))
		assert.Equal(t, testutil.NewMachine(), actual)
	})

	t.Run("get not found", func(t *testing.T) {
		setup(t)
		machine.EXPECT().Get(mock.Anything, testID).Return(types.Machine{}, adapter.ErrMachineNotFound).Once()

		_, err := run(t, "get", testID)
		assert.ErrorIs(t, err, client.ErrNotFound)
	})

	t.Run("list table", func(t *testing.T) {
		setup(t)

		other := testutil.NewMachine()
		other.ID = "i-ba9876543210"
		other.ResolvedIP = nil

		machine.EXPECT().List(mock.Anything).Return([]types.Machine{testutil.NewMachine(), other}, nil).Once()

		out, err := run(t, "list")
		require.NoError(t, err)

		lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
		require.Len(t, lines, 3)
		assert.Contains(t, string(lines[0]), "ID")
		assert.Contains(t, string(lines[1]), "4.3.2.1")
		assert.Contains(t, string(lines[2]), "<none>")
	})

	t.Run("list yaml", func(t *testing.T) {
		setup(t)
		machine.EXPECT().List(mock.Anything).Return([]types.Machine{testutil.NewMachine()}, nil).Once()

		out, err := run(t, "list", "-o", "yaml")
		require.NoError(t, err)

		var actual []types.Machine
		require.NoError(t, yaml.Unmarshal([]byte(out), &actual))
		assert.Equal(t, []types.Machine{testutil.NewMachine()}, actual)
	})

	t.Run("create from file and flags", func(t *testing.T) {
		setup(t)

		dir := t.TempDir()
		reqFile := filepath.Join(dir, "machine.yaml")
		userDataFile := filepath.Join(dir, "user-data")

		require.NoError(t, os.WriteFile(reqFile, []byte(
			"name: from-file\nvcpu: 1\nmemory: 512\nbase_image: debian:bookworm\n"), 0o600))
		require.NoError(t, os.WriteFile(userDataFile, []byte("#cloud-config\n"), 0o600))

		expected := types.MachineRequest{
			Name:             "from-file",
			VCPU:             4,
			Memory:           512,
			BaseImage:        "debian:bookworm",
			NetworkInterface: ptr.To("en0"),
			SkipIPResolution: true,
			ExtraArgs:        []string{"--no-graphics", "--rosetta=tag"},
			UserData:         ptr.To("#cloud-config\n"),
		}

		machine.EXPECT().Create(mock.Anything, expected).Return(testutil.NewMachine(), nil).Once()

		_, err := run(t, "create", "-f", reqFile,
			"--vcpu", "4",
			"--network-interface", "en0",
			"--skip-ip-resolution",
			"--extra-arg=--no-graphics",
			"--extra-arg=--rosetta=tag",
			"--user-data-file", userDataFile,
		)
		require.NoError(t, err)
	})

	t.Run("start stop delete", func(t *testing.T) {
		setup(t)
		machine.EXPECT().Start(mock.Anything, testID).Return(testutil.NewMachine(), nil).Once()
		machine.EXPECT().Stop(mock.Anything, testID).Return(testutil.NewMachine(), nil).Once()
		machine.EXPECT().Delete(mock.Anything, testID).Return(testutil.NewMachine(), nil).Once()

		for _, verb := range []string{"start", "stop", "delete"} {
			out, err := run(t, verb, testID)
			require.NoError(t, err, verb)
			assert.Contains(t, out, testID, verb)
		}
	})

	t.Run("invalid output", func(t *testing.T) {
		setup(t)

		_, err := run(t, "list", "-o", "xml")
		assert.ErrorIs(t, err, errInvalidFormat)
	})

	t.Run("ssh without resolved IP", func(t *testing.T) {
		setup(t)

		m := testutil.NewMachine()
		m.ResolvedIP = nil
		machine.EXPECT().Get(mock.Anything, testID).Return(m, nil).Once()

		_, err := run(t, "ssh", testID, "--", "uptime")
		assert.ErrorIs(t, err, errNoResolvedIP)
	})

	t.Run("ssh missing identity file", func(t *testing.T) {
		setup(t)
		machine.EXPECT().Get(mock.Anything, testID).Return(testutil.NewMachine(), nil).Once()

		_, err := run(t, "ssh", testID, "-i", filepath.Join(t.TempDir(), "absent"), "--", "uptime")
		assert.ErrorIs(t, err, ssh.ErrReadPrivateKey)
	})

	t.Run("ssh without command", func(t *testing.T) {
		setup(t)

		_, err := run(t, "ssh", testID)
		assert.Error(t, err)
	})

	t.Run("missing argument", func(t *testing.T) {
		setup(t)

		_, err := run(t, "get")
		assert.Error(t, err)
	})
}
