package execcontext

import (
	"fmt"
	"maps"
	"os"
	"os/exec"
	"strings"
)

// Context describes how external commands are executed: extra environment variables, and a command prepended to
// every invocation (e.g. "sudo" or "ssh user@host").
type Context interface {
	Envs() map[string]string
	PrependCmd() []string
}

func New(envs map[string]string, prependCmd []string) Context {
	return &execContext{
		prependCmd: prependCmd,
		envs:       envs,
	}
}

type execContext struct {
	envs       map[string]string
	prependCmd []string
}

// Envs implements Context.
func (c *execContext) Envs() map[string]string {
	out := make(map[string]string, len(c.envs))
	maps.Copy(out, c.envs)
	return out
}

// PrependCmd implements Context.
func (c *execContext) PrependCmd() []string {
	out := make([]string, len(c.prependCmd))
	copy(out, c.prependCmd)
	return out
}

// ApplyToCmd injects the environment and the prepended command of ctx into cmd.
// The process environment is inherited.
func ApplyToCmd(ctx Context, cmd *exec.Cmd) {
	envs := ctx.Envs()
	if len(envs) > 0 && cmd.Env == nil {
		cmd.Env = os.Environ()
	}

	for k, v := range envs {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	prependCmd := ctx.PrependCmd()
	if len(prependCmd) < 1 {
		return
	}

	tmpCmd := exec.Command(prependCmd[0], prependCmd[1:]...)
	cmd.Path = tmpCmd.Path
	cmd.Err = tmpCmd.Err
	cmd.Args = append(tmpCmd.Args, cmd.Args...)
}

// FormatCmd renders the command line as it would be typed in a shell. Used for logging.
func FormatCmd(ctx Context, cmd ...string) string {
	var sb strings.Builder

	for k, v := range ctx.Envs() {
		sb.WriteString(fmt.Sprintf("%s=%q ", k, v))
	}

	for _, s := range ctx.PrependCmd() {
		safelyAppendToCmd(&sb, s)
	}

	for _, s := range cmd {
		safelyAppendToCmd(&sb, s)
	}

	return strings.TrimSpace(sb.String())
}

var unquottable = map[string]struct{}{
	"&&": {},
	"||": {},
	";":  {},
	":":  {},
	"&":  {},
}

func safelyAppendToCmd(sb *strings.Builder, s string) {
	if _, ok := unquottable[s]; ok {
		sb.WriteString(s + " ")
		return
	}

	sb.WriteString(fmt.Sprintf("%q ", s))
}
