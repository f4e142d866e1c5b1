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
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/alexandremahdhaoui/machina/internal/types"
	"github.com/alexandremahdhaoui/machina/pkg/client"
)

var errReadRequest = errors.New("reading machine request file")

type byIDFunc func(cl client.Client, ctx context.Context, id string) (types.Machine, error)

// newByIDCmd builds the commands acting on a single machine.
func newByIDCmd(opts *globalOptions, use, short string, fn byIDFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := opts.client()
			if err != nil {
				return err
			}

			machine, err := fn(cl, cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printMachines(cmd.OutOrStdout(), Format(opts.output), false, machine)
		},
	}
}

func newGetCmd(opts *globalOptions) *cobra.Command {
	return newByIDCmd(opts, "get", "Show a machine", client.Client.Get)
}

func newDeleteCmd(opts *globalOptions) *cobra.Command {
	return newByIDCmd(opts, "delete", "Stop a machine and delete it", client.Client.Delete)
}

func newStartCmd(opts *globalOptions) *cobra.Command {
	return newByIDCmd(opts, "start", "Start a machine and resolve its IP address", client.Client.Start)
}

func newStopCmd(opts *globalOptions) *cobra.Command {
	return newByIDCmd(opts, "stop", "Stop a machine, forcefully once the shutdown window elapsed", client.Client.Stop)
}

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List machines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cl, err := opts.client()
			if err != nil {
				return err
			}

			machines, err := cl.List(cmd.Context())
			if err != nil {
				return err
			}

			return printMachines(cmd.OutOrStdout(), Format(opts.output), true, machines...)
		},
	}
}

func newCreateCmd(opts *globalOptions) *cobra.Command {
	var (
		req              types.MachineRequest
		file             string
		networkInterface string
		macAddress       string
		userDataFile     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create and start a machine",
		Long: `Create a machine from flags or from a YAML or JSON request file.

Flags explicitly set on the command line override the fields of the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			final := types.MachineRequest{}

			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return errors.Join(err, errReadRequest)
				}

				if err := yaml.UnmarshalStrict(b, &final); err != nil {
					return errors.Join(err, fmt.Errorf("path=%s", file), errReadRequest)
				}
			}

			flags := cmd.Flags()

			if flags.Changed("name") {
				final.Name = req.Name
			}

			if flags.Changed("vcpu") {
				final.VCPU = req.VCPU
			}

			if flags.Changed("memory") {
				final.Memory = req.Memory
			}

			if flags.Changed("disk-size") {
				final.DiskSize = req.DiskSize
			}

			if flags.Changed("base-image") {
				final.BaseImage = req.BaseImage
			}

			if flags.Changed("skip-ip-resolution") {
				final.SkipIPResolution = req.SkipIPResolution
			}

			if flags.Changed("extra-arg") {
				final.ExtraArgs = req.ExtraArgs
			}

			if flags.Changed("network-interface") {
				final.NetworkInterface = ptr.To(networkInterface)
			}

			if flags.Changed("mac-address") {
				final.MACAddress = ptr.To(macAddress)
			}

			if userDataFile != "" {
				b, err := os.ReadFile(userDataFile)
				if err != nil {
					return errors.Join(err, errReadRequest)
				}

				final.UserData = ptr.To(string(b))
			}

			cl, err := opts.client()
			if err != nil {
				return err
			}

			machine, err := cl.Create(cmd.Context(), final)
			if err != nil {
				return err
			}

			return printMachines(cmd.OutOrStdout(), Format(opts.output), false, machine)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&file, "filename", "f", "", "YAML or JSON machine request")
	flags.StringVar(&req.Name, "name", "", "hostname of the machine")
	flags.IntVar(&req.VCPU, "vcpu", 0, "number of virtual CPUs")
	flags.IntVar(&req.Memory, "memory", 0, "memory in MiB")
	flags.IntVar(&req.DiskSize, "disk-size", 0, "disk size in GB")
	flags.StringVar(&req.BaseImage, "base-image", "", "image the machine is cloned from")
	flags.StringVar(&networkInterface, "network-interface", "", "host interface to bridge the machine onto")
	flags.StringVar(&macAddress, "mac-address", "", "MAC address of the machine")
	flags.BoolVar(&req.SkipIPResolution, "skip-ip-resolution", false, "do not wait for an IP address")
	flags.StringArrayVar(&req.ExtraArgs, "extra-arg", nil, "argument passed verbatim to the driver, repeatable")
	flags.StringVar(&userDataFile, "user-data-file", "", "cloud-init user-data document")

	return cmd
}
