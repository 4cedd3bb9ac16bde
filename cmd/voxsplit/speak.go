package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nadzzz/voxsplit/internal/config"
	"github.com/nadzzz/voxsplit/internal/input"
	"github.com/nadzzz/voxsplit/internal/message"
	"github.com/nadzzz/voxsplit/internal/speak"
)

func speakCmd(conf func() *config.Config) *cobra.Command {
	var (
		text  textFlags
		voice string
	)

	cmd := &cobra.Command{
		Use:   "speak [text...]",
		Short: "Synthesize every chunk with its language's voice into WAV files",
		Long: "Reads text from the arguments, --file, --stdin or the clipboard, synthesizes each\n" +
			"chunk and writes numbered files such as 001-uk.wav into the output directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := conf()
			notifier := newNotifier(cfg, cmd.ErrOrStderr())

			src := text.source(args)
			raw, err := src.Read(cmd.Context())
			if err != nil {
				if errors.Is(err, input.ErrEmpty) {
					notifier.Notify("Nothing to speak", fmt.Sprintf("%s is empty", src.Name()), true)
					return errReported
				}
				return err
			}

			speaker, synth, err := newSpeaker(cfg, notifier)
			if err != nil {
				return err
			}
			if synth != nil {
				defer synth.Close()
			}

			req := message.NewRequest(src.Name(), raw)
			req.Voice = voice
			res, err := speaker.Handle(cmd.Context(), req)
			if err != nil {
				if errors.Is(err, speak.ErrSynthesisDisabled) {
					return err
				}
				return errReported
			}

			files, err := writeAudio(cfg.Output.Dir, res)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
	text.register(cmd)
	cmd.Flags().StringVarP(&voice, "voice", "v", "", "voice model for every chunk, overriding per-language voices")
	cmd.Flags().StringP("output", "o", "", "directory for the WAV files")
	cmd.Flags().String("piper", "", "Piper Wyoming endpoint (host:port)")
	return cmd
}

// writeAudio stores each synthesized chunk as NNN-<lang>.wav in playback
// order and returns the file paths.
func writeAudio(dir string, res *speak.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	var files []string
	for i, c := range res.Succeeded() {
		name := filepath.Join(dir, fmt.Sprintf("%03d-%s.wav", i+1, c.Lang))
		if err := os.WriteFile(name, c.Audio.Audio, 0o644); err != nil {
			return files, fmt.Errorf("writing %s: %w", name, err)
		}
		files = append(files, name)
	}
	slog.Info("audio written", "request_id", res.RequestID, "dir", dir, "files", len(files))
	return files, nil
}
