package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nadzzz/voxsplit/internal/config"
	"github.com/nadzzz/voxsplit/internal/input"
	"github.com/nadzzz/voxsplit/internal/lang"
	"github.com/nadzzz/voxsplit/internal/normalize"
	"github.com/nadzzz/voxsplit/internal/notify"
	"github.com/nadzzz/voxsplit/internal/pipeline"
	"github.com/nadzzz/voxsplit/internal/speak"
	"github.com/nadzzz/voxsplit/internal/trace"
	"github.com/nadzzz/voxsplit/internal/tts"
	"github.com/nadzzz/voxsplit/internal/tts/piper"
)

// errReported marks errors already shown to the user by a notifier.
var errReported = errors.New("reported")

func rootCmd() *cobra.Command {
	var (
		configFile string
		envFile    string
		cfg        *config.Config
	)

	root := &cobra.Command{
		Use:           "voxsplit",
		Short:         "Split mixed-language text into per-language speech",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			var err error
			cfg, err = config.Load(config.Options{File: configFile, EnvFile: envFile, Flags: cmd.Flags()})
			if err != nil {
				return err
			}
			config.SetupLogging(cfg.Logging)
			return trace.Initialize(cmd.Context(), trace.Config{
				ServiceName:    cfg.Tracing.ServiceName,
				ServiceVersion: version,
				Exporter:       cfg.Tracing.Exporter,
				SamplingRate:   cfg.Tracing.SamplingRate,
			})
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return trace.Shutdown(context.WithoutCancel(cmd.Context()))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "path to config file (e.g. configs/voxsplit.yaml)")
	pf.StringVar(&envFile, "env-file", "", "dotenv file to load (default .env when present)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: text, json")
	pf.StringSlice("languages", nil, "supported language codes (e.g. en,uk,ru)")
	pf.String("default-language", "", "language used when detection fails")
	pf.Int("max-chunk-length", 0, "maximum chunk length in characters")
	pf.Int("workers", 0, "fragments processed in parallel (0 = GOMAXPROCS)")
	pf.String("trace", "", "trace exporter: none, stdout")

	conf := func() *config.Config { return cfg }
	root.AddCommand(
		segmentCmd(conf),
		speakCmd(conf),
		serveCmd(conf),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "voxsplit %s\n", version)
		},
	}
}

// newPipeline wires the detector, normalizer and pipeline from config.
func newPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	supported, def, err := cfg.Pipeline.Languages()
	if err != nil {
		return nil, err
	}
	detector := lang.NewDetector(lang.NewLinguaIdentifier(supported.Codes()...), supported, def)
	normalizer := normalize.New(
		normalize.WithExceptions(cfg.Pipeline.Exceptions...),
		normalize.WithExpansions(cfg.Pipeline.Expansions),
	)
	return pipeline.New(detector, normalizer, pipeline.Options{
		MaxChunkLength:   cfg.Pipeline.MaxChunkLength,
		ShortTokenLength: cfg.Pipeline.ShortTokenLength,
		Workers:          cfg.Pipeline.Workers,
	}), nil
}

// newSynthesizer returns nil when TTS is disabled.
func newSynthesizer(cfg *config.Config) (*piper.Synthesizer, error) {
	if !cfg.TTS.Enabled {
		return nil, nil
	}
	slog.Debug("using piper synthesizer", "endpoint", cfg.TTS.Piper.Endpoint)
	return piper.New(cfg.TTS.Piper)
}

// newSpeaker builds the full orchestration stack.
func newSpeaker(cfg *config.Config, notifier notify.Notifier) (*speak.Speaker, *piper.Synthesizer, error) {
	p, err := newPipeline(cfg)
	if err != nil {
		return nil, nil, err
	}
	synth, err := newSynthesizer(cfg)
	if err != nil {
		return nil, nil, err
	}
	var s tts.Synthesizer
	if synth != nil {
		s = synth
	}
	return speak.New(p, s, notifier), synth, nil
}

// newNotifier shows notifications on w; at debug level they are also logged
// so they line up with the per-chunk records.
func newNotifier(cfg *config.Config, w io.Writer) notify.Notifier {
	console := notify.NewConsole(w)
	if strings.EqualFold(cfg.Logging.Level, "debug") {
		return notify.Multi{console, notify.Log{}}
	}
	return console
}

// textFlags selects the input source shared by segment and speak.
type textFlags struct {
	file  string
	stdin bool
}

func (f *textFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "read text from a file")
	cmd.Flags().BoolVar(&f.stdin, "stdin", false, "read text from standard input")
}

// source picks the input: arguments, then --file, then --stdin, then the
// clipboard.
func (f *textFlags) source(args []string) input.Source {
	switch {
	case len(args) > 0:
		return input.Text(strings.Join(args, " "))
	case f.file != "":
		return input.File{Path: f.file}
	case f.stdin:
		return input.Reader{R: os.Stdin}
	default:
		return input.Clipboard{}
	}
}
