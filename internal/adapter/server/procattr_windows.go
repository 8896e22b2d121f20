//go:build windows

package server

import (
	"os"
	"syscall"

	"golang.org/x/sys/windows"
)

// tempDirVars are the environment variables that select the temp directory.
// Biome reads TMP/TEMP on Windows; TMPDIR is kept for parity with other platforms.
var tempDirVars = []string{"TMPDIR", "TMP", "TEMP"}

// sysProcAttr starts the child in a new process group without a console window.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP,
	}
}

// killProcess terminates p. Windows has no process group kill for a
// CREATE_NEW_PROCESS_GROUP child short of a job object.
func killProcess(p *os.Process) error {
	return p.Kill()
}
