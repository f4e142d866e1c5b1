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
	"time"

	"github.com/alexandremahdhaoui/machina/internal/controller"
	"github.com/alexandremahdhaoui/machina/internal/util/logging"
	"github.com/alexandremahdhaoui/machina/internal/util/tlsutil"
	"golang.org/x/crypto/bcrypt"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

const (
	DriverKindTart    = "tart"
	DriverKindLibvirt = "libvirt"

	StoreKindBolt   = "bolt"
	StoreKindMemory = "memory"

	defaultAPIPort     = 8080
	defaultMetricsPort = 9090
	defaultProbesPort  = 8081

	storeFileName = "machina.db"
)

var (
	ErrConfigPathUnset = errors.New("configuration path environment variable must be set")
	ErrReadConfig      = errors.New("reading configuration file")
	ErrParseConfig     = errors.New("parsing configuration")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// Config is used to configure the application.
type Config struct {
	// Driver selects and configures the virtualization backend.
	Driver DriverConfig `json:"driver"`
	// Store configures where machine records are persisted.
	Store StoreConfig `json:"store"`
	// Lifecycle holds the timings of machine transitions.
	Lifecycle LifecycleConfig `json:"lifecycle"`
	// CloudInit configures the seed images of machines without their own user-data.
	CloudInit CloudInitConfig `json:"cloudInit"`
	// Logging configures the process logger.
	Logging LoggingConfig `json:"logging"`

	// APIServer is the configuration for the API server.
	APIServer struct {
		// Port is the port for the API server.
		Port int `json:"port"`
		// TLS optionally serves the API over TLS.
		TLS tlsutil.Config `json:"tls"`
		// BasicAuth optionally protects the API.
		BasicAuth BasicAuthConfig `json:"basicAuth"`
	} `json:"apiServer"`

	// MetricsServer is the configuration for the metrics server.
	MetricsServer struct {
		// Path is the path for the metrics server.
		Path string `json:"path"`
		// Port is the port for the metrics server.
		Port int `json:"port"`
	} `json:"metricsServer"`

	// ProbesServer is the configuration for the probes server.
	ProbesServer struct {
		// LivenessPath is the path for the liveness probe.
		LivenessPath string `json:"livenessPath"`
		// ReadinessPath is the path for the readiness probe.
		ReadinessPath string `json:"readinessPath"`
		// Port is the port for the probes server.
		Port int `json:"port"`
	} `json:"probesServer"`
}

type DriverConfig struct {
	// Kind is either "tart" or "libvirt".
	Kind string `json:"kind"`
	// BaseDir holds the seed images, the libvirt disks and the default store file.
	BaseDir string `json:"baseDir"`

	Tart    TartConfig    `json:"tart"`
	Libvirt LibvirtConfig `json:"libvirt"`
}

type TartConfig struct {
	Binary      string `json:"binary"`
	PgrepBinary string `json:"pgrepBinary"`
	// VMHome is where tart keeps one directory per VM. Defaults to $TART_HOME/vms or ~/.tart/vms.
	VMHome string `json:"vmHome"`
	// PrependCmd is prepended to every command, e.g. ["sudo", "-u", "builder"].
	PrependCmd []string          `json:"prependCmd"`
	Envs       map[string]string `json:"envs"`
}

type LibvirtConfig struct {
	URI           string `json:"uri"`
	PidDir        string `json:"pidDir"`
	QemuImgBinary string `json:"qemuImgBinary"`
}

type StoreConfig struct {
	// Kind is either "bolt" or "memory".
	Kind string `json:"kind"`
	// Path of the bolt database. Defaults to <driver.baseDir>/machina.db.
	Path string `json:"path"`
}

type LifecycleConfig struct {
	StartupTimeout   metav1.Duration `json:"startupTimeout"`
	ShutdownTimeout  metav1.Duration `json:"shutdownTimeout"`
	PollInterval     metav1.Duration `json:"pollInterval"`
	IPWait           metav1.Duration `json:"ipWait"`
	ForceStopTimeout metav1.Duration `json:"forceStopTimeout"`
}

// ToController converts the configured timings.
func (c LifecycleConfig) ToController() controller.LifecycleConfig {
	return controller.LifecycleConfig{
		StartupTimeout:   c.StartupTimeout.Duration,
		ShutdownTimeout:  c.ShutdownTimeout.Duration,
		PollInterval:     c.PollInterval.Duration,
		IPWait:           c.IPWait.Duration,
		ForceStopTimeout: c.ForceStopTimeout.Duration,
	}
}

type CloudInitConfig struct {
	DefaultUsers []CloudInitUser `json:"defaultUsers"`
}

type CloudInitUser struct {
	Name string `json:"name"`
	// PublicKeyPaths are read once at startup.
	PublicKeyPaths []string `json:"publicKeyPaths"`
}

type LoggingConfig struct {
	Level       string `json:"level"`
	Development bool   `json:"development"`
}

type BasicAuthConfig struct {
	Username string `json:"username"`
	// PasswordHash is a bcrypt hash.
	PasswordHash string `json:"passwordHash"`
}

// Enabled reports whether basic auth is configured.
func (c BasicAuthConfig) Enabled() bool {
	return c.Username != "" || c.PasswordHash != ""
}

// ------------------------------------------------------ Load ------------------------------------------------------ //

// loadConfig reads the YAML configuration whose path is set in the MACHINA_CONFIG_PATH environment variable, then
// applies defaults and validates it.
func loadConfig() (*Config, error) {
	path := os.Getenv(ConfigPathEnvKey)
	if path == "" {
		return nil, errors.Join(fmt.Errorf("env=%s", ConfigPathEnvKey), ErrConfigPathUnset)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(err, ErrReadConfig)
	}

	config := new(Config)
	if err := yaml.UnmarshalStrict(b, config); err != nil {
		return nil, errors.Join(err, fmt.Errorf("path=%s", path), ErrParseConfig)
	}

	if err := config.SetDefaults(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SetDefaults fills every unset field.
func (c *Config) SetDefaults() error {
	needsHome := c.Driver.BaseDir == "" || (c.driverKind() == DriverKindTart && c.Driver.Tart.VMHome == "")

	var home string
	if needsHome {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return errors.Join(err, ErrInvalidConfig)
		}
	}

	if c.Driver.Kind == "" {
		c.Driver.Kind = DriverKindTart
	}

	if c.Driver.BaseDir == "" {
		c.Driver.BaseDir = filepath.Join(home, ".machina")
	}

	if c.Driver.Kind == DriverKindTart && c.Driver.Tart.VMHome == "" {
		tartHome := c.Driver.Tart.Envs["TART_HOME"]
		if tartHome == "" {
			tartHome = os.Getenv("TART_HOME")
		}

		if tartHome == "" {
			tartHome = filepath.Join(home, ".tart")
		}

		c.Driver.Tart.VMHome = filepath.Join(tartHome, "vms")
	}

	if c.Store.Kind == "" {
		c.Store.Kind = StoreKindBolt
	}

	if c.Store.Kind == StoreKindBolt && c.Store.Path == "" {
		c.Store.Path = filepath.Join(c.Driver.BaseDir, storeFileName)
	}

	defaultDuration(&c.Lifecycle.StartupTimeout, controller.DefaultStartupTimeout)
	defaultDuration(&c.Lifecycle.ShutdownTimeout, controller.DefaultShutdownTimeout)
	defaultDuration(&c.Lifecycle.PollInterval, controller.DefaultPollInterval)
	defaultDuration(&c.Lifecycle.IPWait, controller.DefaultIPWait)
	defaultDuration(&c.Lifecycle.ForceStopTimeout, controller.DefaultForceStopTimeout)

	defaultInt(&c.APIServer.Port, defaultAPIPort)
	defaultInt(&c.MetricsServer.Port, defaultMetricsPort)
	defaultInt(&c.ProbesServer.Port, defaultProbesPort)
	defaultString(&c.MetricsServer.Path, "/metrics")
	defaultString(&c.ProbesServer.LivenessPath, "/healthz")
	defaultString(&c.ProbesServer.ReadinessPath, "/readyz")

	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Driver.Kind {
	case DriverKindTart, DriverKindLibvirt:
	default:
		errs = append(errs, fmt.Errorf("driver.kind=%q must be %q or %q", c.Driver.Kind, DriverKindTart, DriverKindLibvirt))
	}

	switch c.Store.Kind {
	case StoreKindBolt, StoreKindMemory:
	default:
		errs = append(errs, fmt.Errorf("store.kind=%q must be %q or %q", c.Store.Kind, StoreKindBolt, StoreKindMemory))
	}

	for name, d := range map[string]time.Duration{
		"startupTimeout":   c.Lifecycle.StartupTimeout.Duration,
		"shutdownTimeout":  c.Lifecycle.ShutdownTimeout.Duration,
		"pollInterval":     c.Lifecycle.PollInterval.Duration,
		"ipWait":           c.Lifecycle.IPWait.Duration,
		"forceStopTimeout": c.Lifecycle.ForceStopTimeout.Duration,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("lifecycle.%s=%s must be positive", name, d))
		}
	}

	ports := map[int]string{}
	for name, port := range map[string]int{
		"apiServer.port":     c.APIServer.Port,
		"metricsServer.port": c.MetricsServer.Port,
		"probesServer.port":  c.ProbesServer.Port,
	} {
		if port <= 0 || port > 65535 {
			errs = append(errs, fmt.Errorf("%s=%d is out of range", name, port))
		} else if other, ok := ports[port]; ok {
			errs = append(errs, fmt.Errorf("%s and %s share port %d", name, other, port))
		}

		ports[port] = name
	}

	if auth := c.APIServer.BasicAuth; auth.Enabled() {
		if auth.Username == "" {
			errs = append(errs, errors.New("apiServer.basicAuth.username is required"))
		}

		if _, err := bcrypt.Cost([]byte(auth.PasswordHash)); err != nil {
			errs = append(errs, fmt.Errorf("apiServer.basicAuth.passwordHash is not a bcrypt hash: %w", err))
		}
	}

	for i, u := range c.CloudInit.DefaultUsers {
		if u.Name == "" {
			errs = append(errs, fmt.Errorf("cloudInit.defaultUsers[%d].name is required", i))
		}
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(append(errs, ErrInvalidConfig)...)
	}

	return nil
}

func (c *Config) driverKind() string {
	if c.Driver.Kind == "" {
		return DriverKindTart
	}

	return c.Driver.Kind
}

func defaultDuration(d *metav1.Duration, v time.Duration) {
	if d.Duration == 0 {
		d.Duration = v
	}
}

func defaultInt(i *int, v int) {
	if *i == 0 {
		*i = v
	}
}

func defaultString(s *string, v string) {
	if *s == "" {
		*s = v
	}
}
