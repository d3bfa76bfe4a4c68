/*
 *
 * xk6-browser - a browser automation extension for k6
 * Copyright (C) 2021 Load Impact
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as
 * published by the Free Software Foundation, either version 3 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

// Package browserprocess launches a local browser for the CDP page
// binding and tracks its lifetime.
package browserprocess

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/grafana/xk6-abtest/common"
)

const (
	devToolsPrefix = "DevTools listening on "
	stderrGrace    = 100 * time.Millisecond

	// DefaultLaunchTimeout bounds the wait for the DevTools endpoint.
	DefaultLaunchTimeout = 30 * time.Second
)

var errProcessEnded = errors.New("browser process ended unexpectedly")

// LaunchOptions describes the browser to start.
type LaunchOptions struct {
	ExecutablePath string
	Args           []string
	Env            []string
	// Timeout bounds the wait for the DevTools endpoint. Zero means
	// DefaultLaunchTimeout.
	Timeout time.Duration
}

// Process is a running browser exposing the DevTools protocol.
type Process struct {
	cancel context.CancelFunc

	// The process of the browser.
	process *os.Process
	done    chan struct{}

	// Browser's WebSocket URL to speak CDP
	wsURL string

	// The directory where user data for the browser is stored.
	userDataDir string

	logger *common.Logger
}

// Launch starts the browser with a throwaway profile and waits until it
// listens for DevTools clients. The browser is killed when ctx is done.
func Launch(ctx context.Context, opts LaunchOptions, logger *common.Logger) (*Process, error) {
	if logger == nil {
		logger = common.NewLogger(common.NullLogger(), nil)
	}
	dataDir, err := os.MkdirTemp("", "abtest-browser-*")
	if err != nil {
		return nil, fmt.Errorf("creating user data directory: %w", err)
	}

	args := append(append([]string{}, opts.Args...),
		"--user-data-dir="+dataDir,
		"--remote-debugging-port=0",
	)
	pctx, cancel := context.WithCancel(ctx)
	cmd, err := execute(pctx, opts.ExecutablePath, args, opts.Env, dataDir, logger)
	if err != nil {
		cancel()
		_ = os.RemoveAll(dataDir)
		return nil, err
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultLaunchTimeout
	}
	tctx, tcancel := context.WithTimeout(pctx, timeout)
	defer tcancel()

	wsURL, err := parseDevToolsURL(tctx, cmd)
	if err != nil {
		cancel()
		<-cmd.done
		return nil, fmt.Errorf("getting DevTools URL: %w", err)
	}

	p := &Process{
		cancel:      cancel,
		process:     cmd.Process,
		done:        cmd.done,
		wsURL:       wsURL,
		userDataDir: dataDir,
		logger:      logger,
	}
	register(logger, p.Pid())
	logger.Debugf("Process:Launch", "browser pid:%d listening on %q", p.Pid(), wsURL)

	return p, nil
}

// Terminate kills the browser and waits for its profile to be removed.
func (p *Process) Terminate() {
	p.logger.Debugf("Process:Terminate", "pid:%d", p.Pid())
	p.cancel()
	<-p.done
	unregister(p.Pid())
}

// Done is closed once the browser has exited.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// WsURL returns the Websocket URL that the browser is listening on for CDP clients.
func (p *Process) WsURL() string {
	return p.wsURL
}

// Pid returns the browser process ID.
func (p *Process) Pid() int {
	return p.process.Pid
}

type command struct {
	*exec.Cmd
	done   chan struct{}
	stderr io.Reader
}

func execute(
	ctx context.Context, path string, args, env []string, dataDir string,
	logger *common.Logger,
) (command, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	killAfterParent(cmd)

	// Set up environment variable for process
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	// Wait must not close stderr before it was read to the end.
	stderr, stderrW := io.Pipe()
	cmd.Stderr = stderrW

	// We must start the cmd before calling cmd.Wait, as otherwise the two
	// can run into a data race.
	err := cmd.Start()
	if errors.Is(err, os.ErrNotExist) {
		return command{}, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return command{}, fmt.Errorf("%w", err)
	}

	done := make(chan struct{})
	go func() {
		defer func() {
			if err := os.RemoveAll(dataDir); err != nil {
				logger.Errorf("browser", "cleaning up the user data directory: %v", err)
			}
			close(done)
		}()

		err := cmd.Wait()
		_ = stderrW.Close()
		if err != nil && ctx.Err() == nil {
			logger.Errorf("browser",
				"process with PID %d unexpectedly ended: %v",
				cmd.Process.Pid, err)
		}
	}()

	return command{Cmd: cmd, done: done, stderr: stderr}, nil
}

// parseDevToolsURL reads the browser's stderr until it announces the
// DevTools endpoint. When the output ends first, the last error the
// browser printed is returned.
func parseDevToolsURL(ctx context.Context, cmd command) (string, error) {
	type result struct {
		wsURL string
		err   error
	}
	resc := make(chan result, 1)

	go func() {
		var lastErr string
		scanner := bufio.NewScanner(cmd.stderr)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(line, devToolsPrefix) {
				resc <- result{wsURL: strings.TrimSpace(strings.TrimPrefix(line, devToolsPrefix))}
				// drain, the browser blocks on a full pipe
				for scanner.Scan() {
				}
				return
			}
			if i := strings.Index(line, "] "); i >= 0 && strings.Contains(line[:i], ":ERROR:") {
				lastErr = strings.TrimSpace(line[i+2:])
			}
		}
		err := scanner.Err()
		switch {
		case lastErr != "":
			err = errors.New(lastErr)
		case err == nil:
			err = errProcessEnded
		}
		resc <- result{err: err}
	}()

	select {
	case res := <-resc:
		return res.wsURL, res.err
	case <-cmd.done:
		// the output may still be in flight
		select {
		case res := <-resc:
			return res.wsURL, res.err
		case <-time.After(stderrGrace):
			return "", errProcessEnded
		}
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
