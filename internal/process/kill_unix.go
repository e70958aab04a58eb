//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid.
// Non-positive pids are ignored: -0 would target our own group.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; launcher.Kill() runs afterwards as a fallback.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
