// Package cli is the line-oriented command front end of the registry.
//
// Each input line is "<command> <args...>". The first word selects a
// handler registered on the Mux; the handler writes exactly one JSON
// response line. Blank lines and lines starting with '#' are ignored.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/aanand-mishra/academy-registry/internal/utils/response"
)

// HandlerFunc answers one command. args excludes the command name.
type HandlerFunc func(w io.Writer, args []string)

// Mux routes command names to handlers.
type Mux struct {
	handlers map[string]HandlerFunc
	logger   *slog.Logger
}

func NewMux(logger *slog.Logger) *Mux {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mux{handlers: make(map[string]HandlerFunc), logger: logger}
}

// HandleFunc registers handler for name. Registering a name twice panics,
// as with http.ServeMux.
func (m *Mux) HandleFunc(name string, handler HandlerFunc) {
	if _, exists := m.handlers[name]; exists {
		panic(fmt.Sprintf("cli: multiple registrations for %q", name))
	}
	m.handlers[name] = handler
}

// Commands lists the registered command names in sorted order.
func (m *Mux) Commands() []string {
	names := make([]string, 0, len(m.handlers))
	for name := range m.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs a single command line.
func (m *Mux) Dispatch(w io.Writer, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	handler, ok := m.handlers[fields[0]]
	if !ok {
		m.logger.Warn("unknown command", slog.String("command", fields[0]))
		response.WriteJSON(w, response.GeneralError(
			fmt.Errorf("unknown command %q: want one of %s", fields[0], strings.Join(m.Commands(), ", "))))
		return
	}

	handler(w, fields[1:])
}

// Serve dispatches every line of r until EOF.
func (m *Mux) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.Dispatch(w, line)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("Serve: read input: %w", err)
	}
	return nil
}
