package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

var (
	// stdin is where prompt answers are read from
	stdin io.Reader = os.Stdin

	// stdinIsTerminal reports whether prompts and the plan dialog can be shown
	stdinIsTerminal = func() bool {
		fd := os.Stdin.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
)

var errNoTerminal = errors.New("standard input is not a terminal")

// confirm asks a yes/no question on stderr. Only "y" and "yes" accept.
func confirm(question string) (bool, error) {
	_, _ = warningColor.Fprintf(stderr, "%s [y/N]? ", question)

	line, err := readLine(stdin)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readLine reads up to a newline one byte at a time so that nothing past the
// answer is consumed from r.
func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return sb.String(), nil
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			return sb.String(), err
		}
	}
}
