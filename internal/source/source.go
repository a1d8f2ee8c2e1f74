// Package source provides the now-playing display string.
package source

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/tessro/trackseek/internal/config"
	seekerrors "github.com/tessro/trackseek/internal/errors"
)

// Source returns the current display string, "<title> • <artists>".
// An empty string means nothing is playing.
type Source interface {
	Current(ctx context.Context) (string, error)
}

// Static always returns the same display string.
type Static string

// Current returns s.
func (s Static) Current(ctx context.Context) (string, error) {
	return string(s), nil
}

// Reader reads a single line from r the first time it is asked.
type Reader struct {
	r    io.Reader
	line *string
}

// NewReader creates a source reading from r, typically os.Stdin.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Current returns the first line of the reader.
func (s *Reader) Current(ctx context.Context) (string, error) {
	if s.line != nil {
		return *s.line, nil
	}
	line, err := firstLine(s.r)
	if err != nil {
		return "", fmt.Errorf("read track: %w", err)
	}
	s.line = &line
	return line, nil
}

// Command runs a shell command and uses the first line of its output.
type Command struct {
	command string
	timeout time.Duration
}

// NewCommand creates a source running command with sh -c.
func NewCommand(command string, timeout time.Duration) *Command {
	return &Command{command: command, timeout: timeout}
}

// Current runs the command. A command that exits non-zero with no output is
// treated as nothing playing, which is what playerctl does.
func (s *Command) Current(ctx context.Context) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "sh", "-c", s.command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = 100 * time.Millisecond

	err := cmd.Run()
	if ctx.Err() != nil {
		return "", fmt.Errorf("source command: %w", ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && stdout.Len() == 0 {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("source command: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return firstLine(&stdout)
}

// File reads the first line of a file on every call. A missing file means
// nothing is playing.
type File struct {
	path string
}

// NewFile creates a source reading path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Current reads the file.
func (s *File) Current(ctx context.Context) (string, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("source file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return firstLine(f)
}

// FromConfig returns the configured source, or ErrNoSource if none is set.
func FromConfig(cfg config.SourceConfig) (Source, error) {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	switch {
	case cfg.Command != "":
		return NewCommand(cfg.Command, timeout), nil
	case cfg.File != "":
		return NewFile(cfg.File), nil
	default:
		return nil, seekerrors.ErrNoSource
	}
}

// maxLineSize bounds the display string read from a source.
const maxLineSize = 1 << 20

func firstLine(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	if sc.Scan() {
		return strings.TrimRight(sc.Text(), "\r"), nil
	}
	if err := sc.Err(); errors.Is(err, bufio.ErrTooLong) {
		return "", fmt.Errorf("line too long (over %d bytes): %w", maxLineSize, err)
	} else if err != nil {
		return "", err
	}
	return "", nil
}
