package main

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// App window size.
const (
	windowWidth  = 1280
	windowHeight = 840
)

// BrowserCommands returns the commands tried, in order, to open url on goos.
// Chromium based browsers get an app window; the last entry opens url with
// the system handler.
func BrowserCommands(goos, url string) [][]string {
	flags := []string{
		"--app=" + url,
		fmt.Sprintf("--window-size=%d,%d", windowWidth, windowHeight),
		"--disable-extensions",
		"--new-window",
	}
	with := func(cmd ...string) []string { return append(cmd, flags...) }

	switch goos {
	case "windows":
		return [][]string{
			with("cmd", "/c", "start", "", "msedge"),
			with("cmd", "/c", "start", "", "chrome"),
			{"rundll32", "url.dll,FileProtocolHandler", url},
		}
	case "darwin":
		return [][]string{
			with("open", "-na", "Google Chrome", "--args"),
			with("open", "-na", "Microsoft Edge", "--args"),
			{"open", url},
		}
	default:
		return [][]string{
			with("google-chrome"),
			with("chromium-browser"),
			with("chromium"),
			with("microsoft-edge"),
			{"xdg-open", url},
		}
	}
}

// OpenApp opens url in a browser app window, falling back to the default
// browser. The browser process is not waited for.
func OpenApp(ctx context.Context, url string) error {
	var errs []error
	for _, args := range BrowserCommands(runtime.GOOS, url) {
		if _, err := exec.LookPath(args[0]); err != nil {
			errs = append(errs, err)
			continue
		}
		cmd := exec.CommandContext(ctx, args[0], args[1:]...)
		cmd.Cancel = func() error { return nil } // leave the browser running on shutdown
		if err := cmd.Start(); err != nil {
			errs = append(errs, err)
			continue
		}
		go func() { _ = cmd.Wait() }()
		return nil
	}
	return errors.Join(errs...)
}
