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

package ssh

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/alexandremahdhaoui/machina/internal/util/poll"
	"github.com/alexandremahdhaoui/machina/pkg/execcontext"
)

const (
	DefaultPort        = 22
	DefaultDialTimeout = 10 * time.Second
)

var (
	ErrReadPrivateKey  = errors.New("reading private key")
	ErrParsePrivateKey = errors.New("parsing private key")
	ErrKnownHosts      = errors.New("loading known hosts")
	ErrConnect         = errors.New("connecting to ssh server")
	ErrSession         = errors.New("opening ssh session")
	ErrRemoteCommand   = errors.New("remote command failed")
	ErrServerTimeout   = errors.New("timed out waiting for ssh server")
)

// Option configures a Client.
type Option func(*Client) error

// WithPort overrides DefaultPort.
func WithPort(port int) Option {
	return func(c *Client) error {
		c.addr = net.JoinHostPort(c.host, strconv.Itoa(port))
		return nil
	}
}

// WithKnownHosts verifies host keys against an OpenSSH known_hosts file. Host keys are accepted unchecked otherwise,
// as machines are recreated with fresh keys.
func WithKnownHosts(path string) Option {
	return func(c *Client) error {
		cb, err := knownhosts.New(path)
		if err != nil {
			return errors.Join(err, fmt.Errorf("path=%s", path), ErrKnownHosts)
		}

		c.config.HostKeyCallback = cb

		return nil
	}
}

// Client runs commands over SSH with public key authentication.
type Client struct {
	host   string
	addr   string
	config *ssh.ClientConfig
}

var _ Runner = (*Client)(nil)

// NewClient returns a Client authenticating as user with the PEM encoded privateKey.
func NewClient(host, user string, privateKey []byte, opts ...Option) (*Client, error) {
	signer, err := ssh.ParsePrivateKey(privateKey)
	if err != nil {
		return nil, errors.Join(err, ErrParsePrivateKey)
	}

	c := &Client{
		host: host,
		addr: net.JoinHostPort(host, strconv.Itoa(DefaultPort)),
		config: &ssh.ClientConfig{
			User:            user,
			Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
			HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // overridden by WithKnownHosts
			Timeout:         DefaultDialTimeout,
		},
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// NewClientFromFile is NewClient reading the private key from privateKeyPath.
func NewClientFromFile(host, user, privateKeyPath string, opts ...Option) (*Client, error) {
	key, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, errors.Join(err, fmt.Errorf("path=%s", privateKeyPath), ErrReadPrivateKey)
	}

	return NewClient(host, user, key, opts...)
}

// Run executes cmd rendered by execcontext.FormatCmd. A non-zero exit status returns an error wrapping
// ErrRemoteCommand along with the populated Result.
func (c *Client) Run(ctx context.Context, execCtx execcontext.Context, cmd ...string) (execcontext.Result, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return execcontext.Result{}, err
	}
	defer runFuncAndLogErr(conn.Close)

	session, err := conn.NewSession()
	if err != nil {
		return execcontext.Result{}, errors.Join(err, ErrSession)
	}
	defer runFuncAndLogErr(session.Close)

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	line := execcontext.FormatCmd(execCtx, cmd...)
	slog.DebugContext(ctx, "running remote command", "addr", c.addr, "cmd", line)

	err = session.Run(line)
	res := execcontext.Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *ssh.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitStatus()
	} else if err != nil {
		res.ExitCode = -1
	}

	if err != nil {
		return res, errors.Join(err, fmt.Errorf("addr=%s exitCode=%d", c.addr, res.ExitCode), ErrRemoteCommand)
	}

	return res, nil
}

// AwaitServer polls until an SSH handshake succeeds, the timeout elapses or ctx is done.
func (c *Client) AwaitServer(ctx context.Context, interval, timeout time.Duration) error {
	ok, err := poll.Until(ctx, interval, timeout, func(ctx context.Context) bool {
		conn, err := c.dial(ctx)
		if err != nil {
			slog.DebugContext(ctx, "ssh server not available yet", "addr", c.addr, "error", err.Error())
			return false
		}

		runFuncAndLogErr(conn.Close)

		return true
	})
	if err != nil {
		return errors.Join(err, ErrServerTimeout)
	}

	if !ok {
		return errors.Join(fmt.Errorf("addr=%s timeout=%s", c.addr, timeout), ErrServerTimeout)
	}

	return nil
}

func (c *Client) dial(ctx context.Context) (*ssh.Client, error) {
	dialer := &net.Dialer{Timeout: c.config.Timeout}

	netConn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return nil, errors.Join(err, fmt.Errorf("addr=%s", c.addr), ErrConnect)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = netConn.SetDeadline(deadline)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(netConn, c.addr, c.config)
	if err != nil {
		_ = netConn.Close()
		return nil, errors.Join(err, fmt.Errorf("addr=%s", c.addr), ErrConnect)
	}

	// The handshake deadline must not bound the session.
	_ = netConn.SetDeadline(time.Time{})

	return ssh.NewClient(sshConn, chans, reqs), nil
}

func runFuncAndLogErr(f func() error) {
	if err := f(); err != nil {
		slog.Debug("closing ssh session or connection", "error", err.Error())
	}
}
