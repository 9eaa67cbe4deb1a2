package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zostay/flexar"
	"github.com/zostay/flexar/internal/demo"
)

// errFailed is returned once every file was reported on, if any of them did
// not parse.
var errFailed = errors.New("some files did not parse")

func newParseCmd(opts *options) *cobra.Command {
	var outputFormat string
	var watch bool

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse files and print their trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat != "sexp" && outputFormat != "json" {
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			lang := opts.language()
			run := func() error {
				return parseFiles(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), lang, args, outputFormat)
			}

			err := run()
			if !watch {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return watchFiles(ctx, args, func() {
				if err := run(); err != nil && !errors.Is(err, errFailed) {
					log.Errorf("%s", err)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "sexp", "output format (sexp, json)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "parse again whenever one of the files is written")

	return cmd
}

// parseFiles parses every file concurrently, then reports on each in the
// order given. Trees go to stdout and diagnostics to stderr.
func parseFiles(
	ctx context.Context,
	stdout, stderr io.Writer,
	lang *flexar.Language[demo.Expr],
	filenames []string,
	outputFormat string,
) error {
	outs := make([]bytes.Buffer, len(filenames))
	diags := make([]error, len(filenames))

	g, ctx := errgroup.WithContext(ctx)
	for i, filename := range filenames {
		i, filename := i, filename
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			diags[i] = parse(&outs[i], lang, filename, string(data), outputFormat)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	failed := false
	for i := range filenames {
		if diags[i] != nil {
			failed = true
			fmt.Fprintln(stderr, diags[i])
			continue
		}
		if _, err := outs[i].WriteTo(stdout); err != nil {
			return err
		}
	}

	if failed {
		return errFailed
	}
	return nil
}

func parse(w io.Writer, lang *flexar.Language[demo.Expr], filename, text, outputFormat string) error {
	n, err := lang.Parse(filename, text)
	if err != nil {
		return err
	}

	log.Infof("%s: parsed %s", filename, n.Span)

	switch outputFormat {
	case "sexp":
		fmt.Fprintln(w, demo.Format(n))
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(demo.Tree(n)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", outputFormat)
	}

	return nil
}
