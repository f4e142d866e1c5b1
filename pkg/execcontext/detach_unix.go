//go:build unix

package execcontext

import (
	"os/exec"
	"syscall"
)

// detach puts the command in its own process group so signals sent to the server's group do not reach it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
