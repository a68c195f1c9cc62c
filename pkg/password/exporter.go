package password

import (
	"fmt"
	"io"
	"os"
)

// Exporter receives the outcome of a generation.
type Exporter interface {
	// OnError receives a human readable message for a validation failure.
	OnError(message string)
	// OnOutput receives a generated password and its stats line.
	OnOutput(password, stats string)
	// OnCopy is called after the current password was copied.
	OnCopy(g *Generator)
}

// Hooks holds optional callbacks. A nil hook falls back to the default
// behaviour of the Exporter built by NewExporter.
type Hooks struct {
	Error  func(message string)
	Output func(password, stats string)
	Copy   func(g *Generator)
}

type hookExporter struct {
	hooks  Hooks
	stdout io.Writer
	stderr io.Writer
}

// NewExporter returns an Exporter that calls the given hooks. Without an
// Error hook messages are written to stderr; without an Output hook the
// password is written to stdout. Nil writers default to os.Stdout and
// os.Stderr.
func NewExporter(hooks Hooks, stdout, stderr io.Writer) Exporter {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &hookExporter{hooks: hooks, stdout: stdout, stderr: stderr}
}

func (e *hookExporter) OnError(message string) {
	if e.hooks.Error != nil {
		e.hooks.Error(message)
		return
	}
	fmt.Fprintln(e.stderr, message)
}

func (e *hookExporter) OnOutput(password, stats string) {
	if e.hooks.Output != nil {
		e.hooks.Output(password, stats)
		return
	}
	fmt.Fprintln(e.stdout, password)
}

func (e *hookExporter) OnCopy(g *Generator) {
	if e.hooks.Copy != nil {
		e.hooks.Copy(g)
	}
}
