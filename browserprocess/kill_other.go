//go:build !linux

package browserprocess

import "os/exec"

func killAfterParent(_ *exec.Cmd) {}
