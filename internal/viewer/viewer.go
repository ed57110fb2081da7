// Package viewer hands files to the host's default document viewer.
package viewer

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Viewer opens a file for the user.
type Viewer interface {
	Open(path string) error
}

// System opens files with the operating system's default application.
type System struct{}

// Open starts the default viewer for path and returns without waiting for it.
func (System) Open(path string) error {
	name, args := command(runtime.GOOS, path)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	// Reap the child so it does not linger as a zombie.
	go cmd.Wait()
	return nil
}

func command(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}
