package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	wikiout "wikigo/internal/modules/wiki/port/out"
)

type BrowserLauncher struct{}

func NewBrowserLauncher() wikiout.Launcher {
	return &BrowserLauncher{}
}

func (l *BrowserLauncher) Open(_ context.Context, target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("opening a browser is not supported on %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}
