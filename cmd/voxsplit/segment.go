package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nadzzz/voxsplit/internal/config"
	"github.com/nadzzz/voxsplit/internal/message"
	"github.com/nadzzz/voxsplit/internal/speak"
)

func segmentCmd(conf func() *config.Config) *cobra.Command {
	var (
		text   textFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "segment [text...]",
		Short: "Print the language fragments and chunks of a text",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := conf()
			src := text.source(args)
			raw, err := src.Read(cmd.Context())
			if err != nil {
				return err
			}

			p, err := newPipeline(cfg)
			if err != nil {
				return err
			}
			res, err := speak.New(p, nil, nil).Prepare(cmd.Context(), message.NewRequest(src.Name(), raw))
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printPrepared(cmd.OutOrStdout(), res)
		},
	}
	text.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}

func printPrepared(w io.Writer, res *message.PrepareResult) error {
	if _, err := fmt.Fprintf(w, "dominant: %s\n\nfragments:\n", res.Dominant); err != nil {
		return err
	}
	for i, f := range res.Fragments {
		fmt.Fprintf(w, "  %3d [%s] %q\n", i, f.Lang, f.Text)
	}
	fmt.Fprintln(w, "\nchunks:")
	for _, c := range res.Chunks {
		fmt.Fprintf(w, "  %3d.%d [%s] %s\n", c.Fragment, c.Index, c.Lang, c.Text)
	}
	return nil
}
