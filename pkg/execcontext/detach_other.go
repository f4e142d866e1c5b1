//go:build !unix

package execcontext

import "os/exec"

func detach(_ *exec.Cmd) {}
