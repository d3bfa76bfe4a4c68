// Package chromium finds a local Chrome or Chromium and builds its
// command line for the CDP page binding.
package chromium

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
)

// EnvExecutablePath overrides the browser lookup.
const EnvExecutablePath = "ABTEST_BROWSER_PATH"

// ErrNotFound is returned when no browser executable could be found.
var ErrNotFound = errors.New("no Chrome or Chromium executable found; set " + EnvExecutablePath)

// ExecutablePath returns the path of the browser to launch: the
// EnvExecutablePath variable when set, otherwise the first well-known
// executable found on the PATH or at its usual install location.
func ExecutablePath() (string, error) {
	if p := os.Getenv(EnvExecutablePath); p != "" {
		return p, nil
	}
	for _, name := range candidates() {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}

	return "", ErrNotFound
}

func candidates() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"google-chrome",
			"chromium",
		}
	case "windows":
		return []string{
			"chrome",
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
		}
	default:
		return []string{
			"google-chrome",
			"google-chrome-stable",
			"chromium",
			"chromium-browser",
			"chrome",
		}
	}
}

// Args returns the flags the SDK runs the browser with.
func Args(headless bool) []string {
	args := []string{
		"--no-first-run",
		"--no-default-browser-check",
		"--disable-background-networking",
		"--disable-background-timer-throttling",
		"--disable-backgrounding-occluded-windows",
		"--disable-renderer-backgrounding",
		"--disable-popup-blocking",
		"--metrics-recording-only",
		"--password-store=basic",
		"--use-mock-keychain",
	}
	if headless {
		args = append(args, "--headless=new", "--hide-scrollbars", "--mute-audio")
	}

	return append(args, "about:blank")
}
