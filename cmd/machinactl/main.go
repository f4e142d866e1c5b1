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
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexandremahdhaoui/machina/pkg/client"
)

const (
	Name = "machinactl"

	ServerEnvKey   = "MACHINA_SERVER"
	UsernameEnvKey = "MACHINA_USERNAME"
	PasswordEnvKey = "MACHINA_PASSWORD"

	defaultServer = "http://127.0.0.1:8080"
)

var (
	Version        = "dev" //nolint:gochecknoglobals // set by ldflags
	CommitSHA      = "n/a" //nolint:gochecknoglobals // set by ldflags
	BuildTimestamp = "n/a" //nolint:gochecknoglobals // set by ldflags
)

var (
	errReadCA  = errors.New("reading CA file")
	errParseCA = errors.New("no certificate found in CA file")
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions are shared by every subcommand.
type globalOptions struct {
	server   string
	username string
	password string
	caFile   string
	output   string
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   Name,
		Short: "Manage machina virtual machines",
		Long: `machinactl talks to a machina-api server to create, start, stop and delete
virtual machines.

The server address and credentials default to the MACHINA_SERVER,
MACHINA_USERNAME and MACHINA_PASSWORD environment variables.`,
		Version:       fmt.Sprintf("%s (%s) %s", Version, CommitSHA, BuildTimestamp),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return validateFormat(opts.output)
		},
	}

	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.server, "server", envOr(ServerEnvKey, defaultServer), "machina-api server URL")
	flags.StringVar(&opts.username, "username", os.Getenv(UsernameEnvKey), "basic auth username")
	flags.StringVar(&opts.password, "password", os.Getenv(PasswordEnvKey), "basic auth password")
	flags.StringVar(&opts.caFile, "ca-file", "", "PEM bundle trusted to verify the server certificate")
	flags.StringVarP(&opts.output, "output", "o", string(FormatTable), "output format: table, json or yaml")

	root.AddCommand(
		newGetCmd(opts),
		newListCmd(opts),
		newCreateCmd(opts),
		newDeleteCmd(opts),
		newStartCmd(opts),
		newStopCmd(opts),
		newSSHCmd(opts),
	)

	return root
}

func (o *globalOptions) client() (client.Client, error) {
	var clientOpts []client.Option

	if o.username != "" {
		clientOpts = append(clientOpts, client.WithBasicAuth(o.username, o.password))
	}

	if o.caFile != "" {
		b, err := os.ReadFile(o.caFile)
		if err != nil {
			return nil, errors.Join(err, errReadCA)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(b) {
			return nil, errors.Join(fmt.Errorf("path=%s", o.caFile), errParseCA)
		}

		clientOpts = append(clientOpts, client.WithTLSConfig(&tls.Config{
			RootCAs:    pool,
			MinVersion: tls.VersionTLS12,
		}))
	}

	return client.New(o.server, clientOpts...)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
