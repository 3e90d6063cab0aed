package gallery

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Opener hands a file to whatever displays it.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, path string) error

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, path string) error { return f(ctx, path) }

// ShellOpener launches the platform's default handler for a file:
// rundll32 on Windows, open on macOS, xdg-open elsewhere.
type ShellOpener struct {
	// GOOS overrides runtime.GOOS; empty means the host.
	GOOS string
}

// Command returns the program and arguments that open path.
func (s ShellOpener) Command(path string) (string, []string) {
	goos := s.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

// Open starts the handler and returns once it is running. ctx only gates the
// launch: the viewer is detached and outlives the caller, and it is reaped in
// the background.
func (s ShellOpener) Open(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, args := s.Command(path)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	go func() { _ = cmd.Wait() }()

	return nil
}
