//go:build !windows

package server

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// tempDirVars are the environment variables that select the temp directory.
var tempDirVars = []string{"TMPDIR"}

// sysProcAttr puts the child in its own process group so terminal signals aimed
// at the editor do not reach the long-lived server. No Pdeathsig: the server is
// expected to outlive this process.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// killProcess kills the process group led by p, taking any helpers the
// discovery process started with it.
func killProcess(p *os.Process) error {
	if err := unix.Kill(-p.Pid, unix.SIGKILL); err != nil {
		if err == unix.ESRCH {
			return p.Kill()
		}
		return err
	}
	return nil
}
