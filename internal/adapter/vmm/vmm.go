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

// Package vmm implements the virtualization driver on top of libvirt.
package vmm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexandremahdhaoui/machina/internal/adapter"
	"github.com/alexandremahdhaoui/machina/pkg/execcontext"
	"k8s.io/apimachinery/pkg/util/wait"
	"libvirt.org/go/libvirt"
	"libvirt.org/go/libvirtxml"
)

const (
	DefaultURI    = "qemu:///system"
	DefaultPidDir = "/run/libvirt/qemu"

	diskFileName = "disk.qcow2"

	ipPollInterval = time.Second
)

var (
	ErrConnect = errors.New("connecting to libvirt")

	errDomainAlreadyExists = errors.New("domain already exists")
	errLookupDomain        = errors.New("looking up domain")
	errDomainXML           = errors.New("reading domain definition")
	errDefineDomain        = errors.New("defining domain")
	errCreateDisk          = errors.New("creating domain disk")
	errResizeDisk          = errors.New("resizing domain disk")
	errReadPidFile         = errors.New("reading qemu pid file")
)

// Config configures the libvirt driver.
type Config struct {
	// URI is the libvirt connection URI.
	URI string
	// BaseDir holds one directory per machine with its disk and seed image.
	BaseDir string
	// PidDir is where the qemu driver writes the pid file of each running domain.
	PidDir string
	// QemuImgBinary is the qemu-img binary used to create and resize disks.
	QemuImgBinary string
}

// VMM drives libvirt domains. It implements adapter.Driver and adapter.ConfigPatcher, the latter natively through
// the domain definition.
type VMM struct {
	conn   *libvirt.Connect
	runner execcontext.Runner
	cfg    Config
}

var (
	_ adapter.Driver        = (*VMM)(nil)
	_ adapter.ConfigPatcher = (*VMM)(nil)
)

// New connects to libvirt. qemu-img is executed through runner.
func New(cfg Config, runner execcontext.Runner) (*VMM, error) {
	if cfg.URI == "" {
		cfg.URI = DefaultURI
	}

	if cfg.PidDir == "" {
		cfg.PidDir = DefaultPidDir
	}

	if cfg.QemuImgBinary == "" {
		cfg.QemuImgBinary = "qemu-img"
	}

	conn, err := libvirt.NewConnect(cfg.URI)
	if err != nil {
		return nil, errors.Join(err, fmt.Errorf("uri=%s", cfg.URI), ErrConnect)
	}

	return &VMM{
		conn:   conn,
		runner: runner,
		cfg:    cfg,
	}, nil
}

// Close closes the libvirt connection.
func (v *VMM) Close() error {
	if v.conn == nil {
		return nil
	}

	_, err := v.conn.Close()

	return err
}

func (v *VMM) Exists(_ context.Context, id string) bool {
	dom, err := v.conn.LookupDomainByName(id)
	if err != nil {
		return false
	}

	_ = dom.Free()

	return true
}

func (v *VMM) IsRunning(ctx context.Context, id string) bool {
	dom, err := v.conn.LookupDomainByName(id)
	if err != nil {
		return false
	}
	defer func() { _ = dom.Free() }()

	state, _, err := dom.GetState()
	if err != nil {
		slog.DebugContext(ctx, "querying domain state", "id", id, "error", err.Error())
		return false
	}

	return state == libvirt.DOMAIN_RUNNING
}

func (v *VMM) Clone(ctx context.Context, baseImage, id string) error {
	if v.Exists(ctx, id) {
		return errors.Join(fmt.Errorf("id=%s", id), errDomainAlreadyExists, adapter.ErrOperationFailed)
	}

	diskPath := v.diskPath(id)
	if err := os.MkdirAll(filepath.Dir(diskPath), 0o755); err != nil {
		return errors.Join(err, errCreateDisk, adapter.ErrOperationFailed)
	}

	if _, err := v.runner.Run(ctx, v.cfg.QemuImgBinary,
		"create", "-f", "qcow2", "-F", "qcow2", "-b", baseImage, diskPath,
	); err != nil {
		return errors.Join(err, fmt.Errorf("baseImage=%s", baseImage), errCreateDisk, adapter.ErrOperationFailed)
	}

	b, err := newDomain(id, diskPath).Marshal()
	if err != nil {
		return errors.Join(err, errDefineDomain, adapter.ErrOperationFailed)
	}

	dom, err := v.conn.DomainDefineXML(b)
	if err != nil {
		return errors.Join(err, classify(err), errDefineDomain)
	}

	_ = dom.Free()

	return nil
}

func (v *VMM) Configure(ctx context.Context, id string, res adapter.Resources) error {
	if err := v.redefine(id, func(dom *libvirtxml.Domain) error {
		applyResources(dom, res)
		return nil
	}); err != nil {
		return err
	}

	if _, err := v.runner.Run(ctx, v.cfg.QemuImgBinary,
		"resize", v.diskPath(id), fmt.Sprintf("%dG", res.DiskSizeG),
	); err != nil {
		return errors.Join(err, fmt.Errorf("id=%s", id), errResizeDisk, adapter.ErrOperationFailed)
	}

	return nil
}

func (v *VMM) PatchMACAddress(ctx context.Context, id, mac string) error {
	if err := v.redefine(id, func(dom *libvirtxml.Domain) error {
		return applyMACAddress(dom, mac)
	}); err != nil {
		return errors.Join(err, adapter.ErrConfigPatch)
	}

	slog.InfoContext(ctx, "patched domain mac address", "id", id, "macAddress", strings.ToLower(mac))

	return nil
}

func (v *VMM) Launch(ctx context.Context, id string, opts adapter.LaunchOptions) (int, error) {
	if err := v.redefine(id, func(dom *libvirtxml.Domain) error {
		return applyLaunchOptions(dom, opts)
	}); err != nil {
		return 0, err
	}

	dom, err := v.lookup(id)
	if err != nil {
		return 0, err
	}
	defer func() { _ = dom.Free() }()

	if err := dom.Create(); err != nil {
		return 0, errors.Join(err, classify(err), fmt.Errorf("id=%s", id))
	}

	pid, found, err := v.FindProcessID(ctx, id)
	if err != nil || !found {
		slog.DebugContext(ctx, "qemu pid unknown after launch", "id", id, "error", err)
		return 0, nil
	}

	return pid, nil
}

func (v *VMM) ResolveIP(ctx context.Context, id, networkInterface string, budget time.Duration) (string, error) {
	dom, err := v.lookup(id)
	if err != nil {
		return "", err
	}
	defer func() { _ = dom.Free() }()

	source := libvirt.DOMAIN_INTERFACE_ADDRESSES_SRC_LEASE
	if networkInterface != "" {
		source = libvirt.DOMAIN_INTERFACE_ADDRESSES_SRC_ARP
	}

	var ip string

	// the budget emulates the internal wait of the tool-based drivers.
	_ = wait.PollUntilContextTimeout(context.WithoutCancel(ctx), ipPollInterval, budget, true,
		func(context.Context) (bool, error) {
			ifaces, err := dom.ListAllInterfaceAddresses(source)
			if err != nil {
				slog.DebugContext(ctx, "listing interface addresses", "id", id, "error", err.Error())
				return false, nil
			}

			for _, iface := range ifaces {
				for _, addr := range iface.Addrs {
					if addr.Type == libvirt.IP_ADDR_TYPE_IPV4 {
						ip = strings.Split(addr.Addr, "/")[0]
						return true, nil
					}
				}
			}

			return false, nil
		})

	if ip == "" {
		return "", errors.Join(fmt.Errorf("id=%s", id), adapter.ErrResolutionTimeout)
	}

	return ip, nil
}

func (v *VMM) Stop(ctx context.Context, id string, _ time.Duration) error {
	dom, err := v.lookup(id)
	if err != nil {
		return err
	}
	defer func() { _ = dom.Free() }()

	if state, _, err := dom.GetState(); err == nil && state != libvirt.DOMAIN_RUNNING {
		slog.DebugContext(ctx, "domain is not running", "id", id)
		return nil
	}

	if err := dom.Destroy(); err != nil {
		return errors.Join(err, classify(err), fmt.Errorf("id=%s", id))
	}

	return nil
}

func (v *VMM) Delete(ctx context.Context, id string) error {
	dom, err := v.lookup(id)
	if err != nil {
		return err
	}
	defer func() { _ = dom.Free() }()

	if state, _, err := dom.GetState(); err == nil && state == libvirt.DOMAIN_RUNNING {
		if err := dom.Destroy(); err != nil {
			return errors.Join(err, classify(err), fmt.Errorf("id=%s", id))
		}
	}

	if err := dom.UndefineFlags(libvirt.DOMAIN_UNDEFINE_NVRAM); err != nil {
		return errors.Join(err, classify(err), fmt.Errorf("id=%s", id))
	}

	dir := filepath.Join(v.cfg.BaseDir, id)
	if err := os.RemoveAll(dir); err != nil {
		slog.WarnContext(ctx, "removing machine directory", "id", id, "path", dir, "error", err.Error())
	}

	return nil
}

func (v *VMM) FindProcessID(_ context.Context, id string) (int, bool, error) {
	path := filepath.Join(v.cfg.PidDir, id+".pid")

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, errors.Join(err, errReadPidFile, adapter.ErrOperationFailed)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, false, errors.Join(err, fmt.Errorf("path=%s", path), errReadPidFile, adapter.ErrOperationFailed)
	}

	return pid, true, nil
}

// SignalGracefulStop requests an ACPI shutdown of the domain. The pid is not used.
func (v *VMM) SignalGracefulStop(_ context.Context, id string, _ int) error {
	dom, err := v.lookup(id)
	if err != nil {
		return err
	}
	defer func() { _ = dom.Free() }()

	if err := dom.Shutdown(); err != nil {
		return errors.Join(err, classify(err), fmt.Errorf("id=%s", id))
	}

	return nil
}

// ---------------------------------------------------- HELPERS ----------------------------------------------------- //

func (v *VMM) diskPath(id string) string {
	return filepath.Join(v.cfg.BaseDir, id, diskFileName)
}

// lookup returns the domain, which the caller must Free.
func (v *VMM) lookup(id string) (*libvirt.Domain, error) {
	dom, err := v.conn.LookupDomainByName(id)
	if err != nil {
		return nil, errors.Join(err, classify(err), fmt.Errorf("id=%s", id), errLookupDomain)
	}

	return dom, nil
}

// redefine applies transform to the persistent definition of the domain.
func (v *VMM) redefine(id string, transform func(*libvirtxml.Domain) error) error {
	dom, err := v.lookup(id)
	if err != nil {
		return err
	}
	defer func() { _ = dom.Free() }()

	desc, err := dom.GetXMLDesc(libvirt.DOMAIN_XML_INACTIVE)
	if err != nil {
		return errors.Join(err, classify(err), errDomainXML)
	}

	def := &libvirtxml.Domain{}
	if err := def.Unmarshal(desc); err != nil {
		return errors.Join(err, errDomainXML, adapter.ErrOperationFailed)
	}

	if err := transform(def); err != nil {
		return errors.Join(err, errDefineDomain, adapter.ErrOperationFailed)
	}

	b, err := def.Marshal()
	if err != nil {
		return errors.Join(err, errDefineDomain, adapter.ErrOperationFailed)
	}

	newDom, err := v.conn.DomainDefineXML(b)
	if err != nil {
		return errors.Join(err, classify(err), errDefineDomain)
	}

	_ = newDom.Free()

	return nil
}

// classify maps a libvirt error to adapter.ErrNotFound or adapter.ErrOperationFailed.
func classify(err error) error {
	var lverr libvirt.Error
	if errors.As(err, &lverr) && lverr.Code == libvirt.ERR_NO_DOMAIN {
		return adapter.ErrNotFound
	}

	return adapter.ErrOperationFailed
}
