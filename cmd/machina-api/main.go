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
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alexandremahdhaoui/machina/internal/adapter"
	"github.com/alexandremahdhaoui/machina/internal/adapter/vmm"
	"github.com/alexandremahdhaoui/machina/internal/controller"
	"github.com/alexandremahdhaoui/machina/internal/driver/server"
	"github.com/alexandremahdhaoui/machina/internal/util/gracefulshutdown"
	"github.com/alexandremahdhaoui/machina/internal/util/httputil"
	"github.com/alexandremahdhaoui/machina/internal/util/logging"
	"github.com/alexandremahdhaoui/machina/internal/util/tlsutil"
	"github.com/alexandremahdhaoui/machina/pkg/cloudinit"
	"github.com/alexandremahdhaoui/machina/pkg/execcontext"
)

const (
	Name             = "machina-api"
	ConfigPathEnvKey = "MACHINA_CONFIG_PATH"
)

var (
	Version        = "dev" //nolint:gochecknoglobals // set by ldflags
	CommitSHA      = "n/a" //nolint:gochecknoglobals // set by ldflags
	BuildTimestamp = "n/a" //nolint:gochecknoglobals // set by ldflags
)

var errUnknownKind = errors.New("unknown kind")

// ------------------------------------------------- Main ----------------------------------------------------------- //

func main() {
	_, _ = fmt.Fprintf(
		os.Stdout,
		"Starting %s version %s (%s) %s\n",
		Name,
		Version,
		CommitSHA,
		BuildTimestamp,
	)

	gs := gracefulshutdown.New(Name)
	ctx := gs.Context()

	// --------------------------------------------- Config --------------------------------------------------------- //

	config, err := loadConfig()
	if err != nil {
		slog.ErrorContext(ctx, "loading configuration", "error", err.Error())
		gs.Shutdown(1)

		return
	}

	level, _ := logging.ParseLevel(config.Logging.Level) // validated by loadConfig
	logger := logging.Setup(logging.Options{Development: config.Logging.Development, Level: level})

	// --------------------------------------------- App ------------------------------------------------------------ //

	a, err := newApp(ctx, config, logger, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	if err != nil {
		slog.ErrorContext(ctx, "initializing application", "error", err.Error())
		gs.Shutdown(1)

		return
	}

	gs.OnShutdown("resources", func(context.Context) error { return a.close() })

	// --------------------------------------------- Run Server ----------------------------------------------------- //

	httputil.Serve(map[string]*http.Server{
		"api":     a.api,
		"metrics": a.metrics,
		"probes":  a.probes,
	}, gs)

	slog.Info("✅ gracefully stopped", "binary", Name)
}

// ------------------------------------------------- App ------------------------------------------------------------ //

type app struct {
	api     *http.Server
	metrics *http.Server
	probes  *http.Server

	// closers are called in reverse order.
	closers []func() error
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}

	return errors.Join(errs...)
}

// newApp wires the adapters, controllers and servers described by config. On error every resource opened so far is
// released.
func newApp(
	ctx context.Context,
	config *Config,
	logger logr.Logger,
	reg prometheus.Registerer,
	gatherer prometheus.Gatherer,
) (_ *app, err error) {
	a := &app{}

	defer func() {
		if err != nil {
			_ = a.close()
		}
	}()

	// --------------------------------------------- Adapter -------------------------------------------------------- //

	runner := execcontext.NewRunner(
		execcontext.New(config.Driver.Tart.Envs, config.Driver.Tart.PrependCmd),
		logger.WithName("exec"),
	)

	var (
		driver  adapter.Driver
		patcher adapter.ConfigPatcher
	)

	switch config.Driver.Kind {
	case DriverKindTart:
		driver = adapter.NewTart(runner,
			adapter.WithTartBinary(config.Driver.Tart.Binary),
			adapter.WithPgrepBinary(config.Driver.Tart.PgrepBinary),
		)
		patcher = adapter.NewTartConfigPatcher(config.Driver.Tart.VMHome)
	case DriverKindLibvirt:
		v, err := vmm.New(vmm.Config{
			URI:           config.Driver.Libvirt.URI,
			BaseDir:       config.Driver.BaseDir,
			PidDir:        config.Driver.Libvirt.PidDir,
			QemuImgBinary: config.Driver.Libvirt.QemuImgBinary,
		}, runner)
		if err != nil {
			return nil, err
		}

		a.closers = append(a.closers, v.Close)
		driver, patcher = v, v
	default:
		return nil, errors.Join(fmt.Errorf("driver.kind=%q", config.Driver.Kind), errUnknownKind)
	}

	users := make([]cloudinit.User, 0, len(config.CloudInit.DefaultUsers))
	for _, u := range config.CloudInit.DefaultUsers {
		user, err := cloudinit.NewUser(u.Name, u.PublicKeyPaths...)
		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	provisioner := adapter.NewSeedProvisioner(config.Driver.BaseDir, users...)

	var store adapter.MachineStore

	switch config.Store.Kind {
	case StoreKindBolt:
		if store, err = adapter.NewBoltStore(config.Store.Path); err != nil {
			return nil, err
		}
	case StoreKindMemory:
		store = adapter.NewMemoryStore()
	default:
		return nil, errors.Join(fmt.Errorf("store.kind=%q", config.Store.Kind), errUnknownKind)
	}

	a.closers = append(a.closers, store.Close)

	// --------------------------------------------- Controller ----------------------------------------------------- //

	lifecycle := controller.NewLifecycle(
		driver,
		patcher,
		provisioner,
		config.Lifecycle.ToController(),
		controller.NewMetrics(reg),
	)

	machine := controller.NewMachine(store, lifecycle)

	// --------------------------------------------- API Server ----------------------------------------------------- //

	var handler http.Handler = server.New(machine)

	if auth := config.APIServer.BasicAuth; auth.Enabled() {
		handler = httputil.BasicAuth(handler, httputil.BcryptValidator(auth.Username, auth.PasswordHash))
	}

	tlsConfig, err := tlsutil.BuildTLSConfig(&config.APIServer.TLS)
	if err != nil {
		return nil, err
	}

	a.api = &http.Server{ //nolint:exhaustruct
		Addr:              fmt.Sprintf(":%d", config.APIServer.Port),
		Handler:           handler,
		TLSConfig:         tlsConfig,
		ReadHeaderTimeout: time.Second,
	}

	a.metrics = setupMetricsServer(config, gatherer)
	a.probes = setupProbesServer(config, store)

	slog.InfoContext(ctx, "initialized application",
		"driver", config.Driver.Kind,
		"store", config.Store.Kind,
		"tls", tlsConfig != nil,
		"basicAuth", config.APIServer.BasicAuth.Enabled(),
	)

	return a, nil
}
