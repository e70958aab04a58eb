//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup kills pid and its child processes with taskkill /T.
// Non-positive pids are ignored.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; launcher.Kill() runs afterwards as a fallback.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
