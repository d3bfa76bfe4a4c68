package browserprocess

import (
	"os"
	"sync"

	"github.com/grafana/xk6-abtest/common"
)

var (
	processRegister   = map[int]struct{}{} //nolint:gochecknoglobals
	processRegisterMu = sync.Mutex{}       //nolint:gochecknoglobals
)

func register(logger *common.Logger, pid int) {
	processRegisterMu.Lock()
	defer processRegisterMu.Unlock()

	logger.Debugf("Process:register", "registered browser process pid %d", pid)

	processRegister[pid] = struct{}{}
}

func unregister(pid int) {
	processRegisterMu.Lock()
	defer processRegisterMu.Unlock()

	delete(processRegister, pid)
}

// ForceProcessShutdown kills every browser launched by this process
// that is still running. It is meant for panics, where deferred
// terminations do not run in order.
func ForceProcessShutdown() {
	processRegisterMu.Lock()
	defer processRegisterMu.Unlock()

	for pid := range processRegister {
		p, err := os.FindProcess(pid)
		if err != nil {
			// optimistically continue and don't kill the process
			continue
		}
		// no need to check the error since we're already dying.
		_ = p.Kill()
		_ = p.Release()
		delete(processRegister, pid)
	}
}
