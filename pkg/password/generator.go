package password

import (
	"fmt"
	"strings"
	"sync"

	"github.com/edgeflare/passgen/pkg/metrics"
	"github.com/edgeflare/passgen/pkg/util/rand"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request describes one password to generate.
type Request struct {
	Groups  []string
	Method  LengthMethod
	Length  int
	Entropy float64
}

// Result is a generated password and its stats.
type Result struct {
	ID       string
	Password string
	Stats    Stats
}

// Clipboard is the collaborator Copy writes to.
type Clipboard interface {
	WriteAll(text string) error
}

// GeneratorOptions is a function type that configures a Generator.
type GeneratorOptions func(*Generator)

// WithLogger sets the logger. By default New creates a production logger,
// or a development logger when Config.DebugConsole is set.
func WithLogger(logger *zap.Logger) GeneratorOptions {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithSource overrides the random source probed by New.
func WithSource(src *rand.Source) GeneratorOptions {
	return func(g *Generator) {
		g.source = src
	}
}

// Generator produces passwords according to its Config and hands them to an
// Exporter. Generate and Run are safe for concurrent use.
type Generator struct {
	config   Config
	exporter Exporter
	source   *rand.Source
	logger   *zap.Logger

	mu      sync.RWMutex
	current string
	stats   string
}

// New creates a Generator. cfg is used as given; start from DefaultConfig to
// get defaults. A nil exporter writes to stdout and stderr.
//
// Unless WithSource is given, New probes crypto/rand once. When it is not
// available the generator runs in reduced security mode and logs a warning.
func New(cfg Config, exporter Exporter, opts ...GeneratorOptions) (*Generator, error) {
	for name := range cfg.CustomSets {
		if _, ok := LookupGroup(name); ok {
			return nil, fmt.Errorf("custom symbol group %q shadows a predefined group", name)
		}
	}
	if exporter == nil {
		exporter = NewExporter(Hooks{}, nil, nil)
	}

	g := &Generator{
		config:   cfg,
		exporter: exporter,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		var err error
		if cfg.DebugConsole {
			g.logger, err = zap.NewDevelopment()
		} else {
			g.logger, err = zap.NewProduction()
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	if g.source == nil {
		g.source = rand.Default()
	}
	if g.source.Secure() {
		metrics.SecureSourceAvailable.Set(1)
	} else {
		metrics.SecureSourceAvailable.Set(0)
		g.logger.Warn("secure random source unavailable, passwords rely on math/rand only")
	}

	return g, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.config
}

// Secure reports whether a cryptographically secure source is in use.
func (g *Generator) Secure() bool {
	return g.source.Secure()
}

// Generate builds the charset, resolves the length and draws the password.
// It returns every error; Run applies the reporting policy.
func (g *Generator) Generate(req Request) (*Result, error) {
	charset, err := BuildCharset(req.Groups, g.config.CustomSets)
	if err != nil {
		return nil, err
	}

	length, err := ResolveLength(charset.Size(), req.Method, req.Length, req.Entropy)
	if err != nil {
		return nil, err
	}

	pw, err := g.draw(charset, length)
	if err != nil {
		return nil, err
	}

	return &Result{
		ID:       uuid.New().String(),
		Password: pw,
		Stats:    NewStats(length, charset.Size()),
	}, nil
}

func (g *Generator) draw(charset Charset, length int) (string, error) {
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		idx, err := g.source.Index(charset.Size())
		if err != nil {
			return "", err
		}
		sb.WriteString(charset[idx])
	}
	return sb.String(), nil
}

// Run generates a password from the generator's Config.
//
// Validation failures are passed to Exporter.OnError and Run returns
// (nil, nil). On success the password becomes CurrentPassword and is passed
// to Exporter.OnOutput. Any other error is returned without calling the
// Exporter, and no password is produced.
func (g *Generator) Run() (*Result, error) {
	req := g.config.Request()
	res, err := g.Generate(req)
	if err != nil {
		metrics.GenerationErrors.WithLabelValues(errorType(err)).Inc()
		if !IsUserError(err) {
			g.logger.Error("password generation failed", zap.Error(err))
			return nil, err
		}
		msg := "Error: " + err.Error()
		if g.config.DebugConsole {
			g.logger.Debug("ERROR", zap.String("message", msg))
		}
		g.exporter.OnError(msg)
		return nil, nil
	}

	stats := res.Stats.String()
	g.mu.Lock()
	g.current = res.Password
	g.stats = stats
	g.mu.Unlock()

	metrics.GeneratedPasswords.WithLabelValues(string(req.Method)).Inc()
	metrics.EntropyBits.Observe(res.Stats.Entropy)

	if g.config.DebugConsole {
		g.logger.Debug("generated password",
			zap.String("id", res.ID),
			zap.Int("length", res.Stats.Length),
			zap.Int("charset_size", res.Stats.CharsetSize),
			zap.Float64("entropy", res.Stats.Entropy),
			zap.Bool("secure", g.source.Secure()),
		)
	}

	g.exporter.OnOutput(res.Password, stats)
	return res, nil
}

// CurrentPassword returns the password produced by the last successful Run.
func (g *Generator) CurrentPassword() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current
}

// Stats returns the stats line of the last successful Run.
func (g *Generator) Stats() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.stats
}

// Copy writes the current password to c and then notifies the Exporter.
func (g *Generator) Copy(c Clipboard) error {
	if err := c.WriteAll(g.CurrentPassword()); err != nil {
		return fmt.Errorf("failed to copy password: %w", err)
	}
	g.exporter.OnCopy(g)
	return nil
}
