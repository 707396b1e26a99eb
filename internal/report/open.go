package report

import (
	"os/exec"
	"runtime"
)

// Open hands path to the desktop's default application without waiting for it.
func Open(path string) error {
	_, err := start(openCommand(runtime.GOOS, path))
	return err
}

// start launches cmd and reaps it in the background. The returned channel
// yields the exit result once the child is gone.
func start(cmd *exec.Cmd) (<-chan error, error) {
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	return done, nil
}

func openCommand(goos, path string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return exec.Command("xdg-open", path)
	}
}
