package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/joshhsoj1902/steam-library-exporter/internal/library"
)

const (
	commandExit = "exit"

	promptText = "\nEnter 'alphabetical' to sort by game name or 'time' to sort by hours played.\n" +
		"Enter 'exit' to quit.\n" +
		"Sort by (alphabetical/time/exit): "
	invalidText = "Invalid option. Please enter 'alphabetical', 'time', or 'exit'."
)

// RenderFunc renders the library in the given order.
type RenderFunc func(mode library.SortMode) error

// Loop reads one sort command per line and re-renders after each valid one.
// It stops on "exit", end of input, or a render error.
type Loop struct {
	In     io.Reader
	Out    io.Writer
	Render RenderFunc
}

func (l *Loop) Run() error {
	mode := library.SortAlphabetical
	scanner := bufio.NewScanner(l.In)

	for {
		if err := l.Render(mode); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}

		for {
			fmt.Fprint(l.Out, promptText)
			if !scanner.Scan() {
				fmt.Fprintln(l.Out)
				return scanner.Err()
			}

			next, done, ok := parseCommand(scanner.Text())
			if done {
				return nil
			}
			if !ok {
				fmt.Fprintln(l.Out, invalidText)
				continue
			}
			mode = next
			break
		}
	}
}

func parseCommand(line string) (mode library.SortMode, exit bool, ok bool) {
	cmd := strings.ToLower(strings.TrimSpace(line))
	if cmd == commandExit {
		return "", true, true
	}
	mode, err := library.ParseSortMode(cmd)
	if err != nil {
		return "", false, false
	}
	return mode, false, true
}
