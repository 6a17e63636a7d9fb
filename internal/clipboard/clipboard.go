// Package clipboard provides system clipboard access for block copy and cut.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Clipboard defines the interface for clipboard operations.
type Clipboard interface {
	Copy(text string) error
}

// System implements Clipboard using the platform clipboard tool.
type System struct{}

// Copy pipes text to pbcopy, wl-copy, or xclip depending on platform.
func (System) Copy(text string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	default:
		if _, err := exec.LookPath("wl-copy"); err == nil {
			cmd = exec.Command("wl-copy")
		} else {
			cmd = exec.Command("xclip", "-selection", "clipboard")
		}
	}

	pipe, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("opening clipboard pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting clipboard helper: %w", err)
	}

	if _, err := pipe.Write([]byte(text)); err != nil {
		return fmt.Errorf("writing to clipboard: %w", err)
	}

	if err := pipe.Close(); err != nil {
		return fmt.Errorf("closing clipboard pipe: %w", err)
	}

	return cmd.Wait()
}

// Null is a no-op clipboard for tests and headless runs.
type Null struct{}

// Copy is a no-op that always succeeds.
func (Null) Copy(string) error { return nil }
