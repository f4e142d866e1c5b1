package execcontext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/go-logr/logr"
)

var (
	ErrCommandFailed = errors.New("command failed")
	ErrEmptyCommand  = errors.New("command cannot be empty")
	ErrStartCommand  = errors.New("starting command")
)

// Result holds the outcome of a command that ran to completion.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes external commands within an execution Context.
//
// Commands are never killed by context cancellation: the context only carries logging values.
type Runner interface {
	// Run executes cmd and waits for it to exit. A non-zero exit code is reported as an error wrapping
	// ErrCommandFailed, and the Result is still populated.
	Run(ctx context.Context, cmd ...string) (Result, error)
	// Start spawns cmd in its own process group without waiting for it, and returns its pid.
	// The process is reaped in the background.
	Start(ctx context.Context, cmd ...string) (int, error)
}

// NewRunner returns a Runner executing commands with execCtx. Command lines are traced at V(1) on logger.
func NewRunner(execCtx Context, logger logr.Logger) Runner {
	return &runner{
		execCtx: execCtx,
		logger:  logger,
	}
}

type runner struct {
	execCtx Context
	logger  logr.Logger
}

func (r *runner) Run(_ context.Context, cmd ...string) (Result, error) {
	if len(cmd) == 0 {
		return Result{ExitCode: -1}, ErrEmptyCommand
	}

	c := r.command(cmd...)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()

	res := Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: c.ProcessState.ExitCode(),
	}

	if err != nil {
		r.logger.V(1).Info("command failed", "cmd", FormatCmd(r.execCtx, cmd...), "exitCode", res.ExitCode,
			"stderr", string(bytes.TrimSpace(res.Stderr)))

		return res, errors.Join(
			fmt.Errorf("%s: exit code %d: %w", cmd[0], res.ExitCode, err),
			ErrCommandFailed,
		)
	}

	r.logger.V(1).Info("command succeeded", "cmd", FormatCmd(r.execCtx, cmd...))

	return res, nil
}

func (r *runner) Start(_ context.Context, cmd ...string) (int, error) {
	if len(cmd) == 0 {
		return 0, ErrEmptyCommand
	}

	c := r.command(cmd...)
	detach(c)

	// stdio is left nil and therefore attached to the null device.
	if err := c.Start(); err != nil {
		return 0, errors.Join(fmt.Errorf("%s: %w", cmd[0], err), ErrStartCommand)
	}

	pid := c.Process.Pid
	formatted := FormatCmd(r.execCtx, cmd...)
	r.logger.V(1).Info("command started", "cmd", formatted, "pid", pid)

	go func() {
		err := c.Wait()
		r.logger.V(1).Info("background command exited", "cmd", formatted, "pid", pid,
			"exitCode", c.ProcessState.ExitCode(), "error", err)
	}()

	return pid, nil
}

func (r *runner) command(cmd ...string) *exec.Cmd {
	c := exec.Command(cmd[0], cmd[1:]...) //nolint:gosec
	ApplyToCmd(r.execCtx, c)

	return c
}
