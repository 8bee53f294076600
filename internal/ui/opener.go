package ui

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener hands a URL to something that can display it.
type Opener interface {
	Open(url string) error
}

// BrowserOpener opens URLs with the platform's default handler.
type BrowserOpener struct{}

// Open implements Opener.
func (BrowserOpener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	// Reap the launcher without blocking the caller.
	go func() { _ = cmd.Wait() }()
	return nil
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(url string) error

// Open implements Opener.
func (f OpenerFunc) Open(url string) error { return f(url) }
