package passgen

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/edgeflare/passgen/pkg/config"
	"github.com/edgeflare/passgen/pkg/metrics"
	"github.com/edgeflare/passgen/pkg/password"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errReported marks a failure that was already shown to the user.
var errReported = errors.New("password generation failed")

var rootCmd = &cobra.Command{
	Use:   "passgen",
	Short: "passgen generates random passwords",
	Long: `passgen draws passwords from named symbol groups. The length is either fixed
or the shortest that reaches a target entropy in bits.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGenerate,
}

func Main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	def := config.Default()
	f := rootCmd.Flags()
	f.StringSlice("charsets", def.Password.CharSets, "Symbol groups to draw from (see 'passgen groups')")
	f.IntP("length", "l", def.Password.Length, "Password length in symbols")
	f.StringP("length-method", "m", string(def.Password.LengthMethod), "How the length is chosen: length or entropy")
	f.Float64P("entropy", "e", def.Password.Entropy, "Target entropy in bits for --length-method=entropy")
	f.StringToString("custom-set", nil, "Extra symbol group as name=characters, usable in --charsets")
	f.StringToString("set", nil, "Raw option override as key=value, e.g. lengthMethod=entropy")
	f.IntP("count", "c", def.Count, "Number of passwords to generate")
	f.Bool("copy", false, "Copy the last password to the clipboard")
	f.Bool("debug", false, "Log debug traces of each generation")
	f.StringP("log-level", "L", def.LogLevel, "log at this level (debug, info, warn, error, none)")
	f.String("metrics-textfile", "", "Write prometheus metrics to this file after generating")
	f.BoolP("version", "v", false, "Print the version number")

	rootCmd.AddCommand(groupsCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if v, _ := cmd.Flags().GetBool("version"); v {
		fmt.Fprintln(cmd.OutOrStdout(), config.Version)
		return nil
	}

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	if set, _ := cmd.Flags().GetStringToString("set"); len(set) > 0 {
		overrides := make(map[string]any, len(set))
		for k, v := range set {
			overrides[k] = v
		}
		if cfg.Password, err = config.Merge(cfg.Password, overrides); err != nil {
			return err
		}
	}

	logger, err := newLogger(cfg.LogLevel, cfg.Password.DebugConsole)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	return generate(cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr(), systemClipboard{})
}

func generate(cfg *config.Config, logger *zap.Logger, stdout, stderr io.Writer, clip password.Clipboard) error {
	exporter := password.NewExporter(password.Hooks{
		Output: func(pw, stats string) {
			fmt.Fprintln(stdout, pw)
			fmt.Fprintln(stderr, stats)
		},
		Copy: func(_ *password.Generator) {
			fmt.Fprintln(stderr, "Password copied to clipboard")
		},
	}, stdout, stderr)

	g, err := password.New(cfg.Password, exporter, password.WithLogger(logger))
	if err != nil {
		return err
	}

	for i := 0; i < max(cfg.Count, 1); i++ {
		res, err := g.Run()
		if err != nil {
			return err
		}
		if res == nil {
			return errReported
		}
	}

	if cfg.Copy {
		if err := g.Copy(clip); err != nil {
			return err
		}
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(metrics.TextfileOpts{Path: cfg.MetricsTextfile}); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(level string, debug bool) (*zap.Logger, error) {
	if level == "none" && !debug {
		return zap.NewNop(), nil
	}
	if debug {
		level = "debug"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	zc.Encoding = "console"
	return zc.Build()
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard is not supported on this system")
	}
	return clipboard.WriteAll(text)
}
