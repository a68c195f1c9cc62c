package exptest

import (
	"sync"
	"testing"

	"github.com/edgeflare/passgen/pkg/password"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// Output is one OnOutput call.
type Output struct {
	Password string
	Stats    string
}

// Recorder is a password.Exporter that records every call.
type Recorder struct {
	mu      sync.Mutex
	Errors  []string
	Outputs []Output
	Copies  int
}

func (r *Recorder) OnError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, message)
}

func (r *Recorder) OnOutput(pw, stats string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Outputs = append(r.Outputs, Output{Password: pw, Stats: stats})
}

func (r *Recorder) OnCopy(_ *password.Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Copies++
}

// Calls returns the total number of error and output reports.
func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Errors) + len(r.Outputs)
}

// NewLogger returns a logger whose entries at or above level are observable.
func NewLogger(level zap.AtomicLevel) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

// NewGenerator creates a Generator that reports to a fresh Recorder and logs
// to an observer at debug level.
func NewGenerator(t testing.TB, cfg password.Config, opts ...password.GeneratorOptions) (*password.Generator, *Recorder, *observer.ObservedLogs) {
	t.Helper()
	logger, logs := NewLogger(zap.NewAtomicLevelAt(zap.DebugLevel))
	rec := &Recorder{}
	g, err := password.New(cfg, rec, append([]password.GeneratorOptions{password.WithLogger(logger)}, opts...)...)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}
	return g, rec, logs
}
