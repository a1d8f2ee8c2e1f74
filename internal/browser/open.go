// Package browser opens URLs in the user's web browser.
package browser

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	seekerrors "github.com/tessro/trackseek/internal/errors"
)

// Opener opens URLs, either with the platform default or a configured command.
type Opener struct {
	command string
}

// New creates an opener. An empty command uses the platform default. A
// command may contain "{url}"; otherwise the URL is appended as the last
// argument.
func New(command string) *Opener {
	return &Opener{command: command}
}

// Open opens url.
func (o *Opener) Open(ctx context.Context, url string) error {
	name, args, err := o.commandLine(url)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	// Not bound to ctx: the browser outlives the command that launched it.
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", seekerrors.ErrOpenFailed, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func (o *Opener) commandLine(url string) (string, []string, error) {
	if o.command != "" {
		fields := strings.Fields(o.command)
		replaced := false
		for i, f := range fields {
			if strings.Contains(f, "{url}") {
				fields[i] = strings.ReplaceAll(f, "{url}", url)
				replaced = true
			}
		}
		if !replaced {
			fields = append(fields, url)
		}
		return fields[0], fields[1:], nil
	}

	switch runtime.GOOS {
	case "darwin":
		return "open", []string{url}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	default:
		return "", nil, fmt.Errorf("%w: unsupported platform %s", seekerrors.ErrOpenFailed, runtime.GOOS)
	}
}
