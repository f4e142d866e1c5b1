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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexandremahdhaoui/machina/internal/util/ssh"
	"github.com/alexandremahdhaoui/machina/pkg/execcontext"
)

var errNoResolvedIP = errors.New("machine has no resolved IP")

type sshOptions struct {
	user         string
	identityFile string
	port         int
	knownHosts   string
}

func newSSHCmd(opts *globalOptions) *cobra.Command {
	sshOpts := &sshOptions{}

	cmd := &cobra.Command{
		Use:   "ssh <id> -- <command>...",
		Short: "Run a command on a machine over SSH",
		Long: `Run a command on a machine through its resolved IP.

The host key is not verified unless --known-hosts is set.`,
		Args: cobra.MinimumNArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := opts.client()
			if err != nil {
				return err
			}

			machine, err := cl.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if machine.ResolvedIP == nil {
				return errors.Join(fmt.Errorf("id=%s", machine.ID), errNoResolvedIP)
			}

			sshClientOpts := []ssh.Option{ssh.WithPort(sshOpts.port)}
			if sshOpts.knownHosts != "" {
				sshClientOpts = append(sshClientOpts, ssh.WithKnownHosts(sshOpts.knownHosts))
			}

			sshClient, err := ssh.NewClientFromFile(*machine.ResolvedIP, sshOpts.user, sshOpts.identityFile,
				sshClientOpts...)
			if err != nil {
				return err
			}

			res, err := sshClient.Run(cmd.Context(), execcontext.New(nil, nil), args[1:]...)
			_, _ = cmd.OutOrStdout().Write(res.Stdout)
			_, _ = cmd.ErrOrStderr().Write(res.Stderr)

			return err
		},
	}

	home, _ := os.UserHomeDir()

	flags := cmd.Flags()
	flags.StringVar(&sshOpts.user, "user", "admin", "remote user")
	flags.StringVarP(&sshOpts.identityFile, "identity-file", "i", filepath.Join(home, ".ssh", "id_ed25519"),
		"private key used to authenticate")
	flags.IntVar(&sshOpts.port, "port", ssh.DefaultPort, "remote SSH port")
	flags.StringVar(&sshOpts.knownHosts, "known-hosts", "", "known_hosts file used to verify the host key")

	return cmd
}
