//go:build unix

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

package adapter

import (
	"errors"

	"golang.org/x/sys/unix"
)

// sendGracefulStopSignal sends SIGUSR2, which tart handles as a request to shut the guest down cleanly.
func sendGracefulStopSignal(pid int) error {
	return unix.Kill(pid, unix.SIGUSR2)
}

func isNoSuchProcess(err error) bool {
	return errors.Is(err, unix.ESRCH)
}
