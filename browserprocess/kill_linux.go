package browserprocess

import (
	"os/exec"
	"syscall"
)

// killAfterParent makes the kernel kill the browser when this process
// dies.
func killAfterParent(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Pdeathsig: syscall.SIGKILL,
	}
}
