package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/flexar"
	"github.com/zostay/flexar/internal/demo"
)

func newScanCmd(opts *options) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "Print the tokens of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			return scan(cmd.OutOrStdout(), opts.language(), filename, string(data), outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")

	return cmd
}

type jsonToken struct {
	Tag   string `json:"tag"`
	Value any    `json:"value,omitempty"`
	Span  string `json:"span"`
}

func scan(w io.Writer, lang *flexar.Language[demo.Expr], filename, text, outputFormat string) error {
	toks, err := lang.Scan(filename, text)
	if err != nil {
		return err
	}

	switch outputFormat {
	case "text":
		for _, tok := range toks {
			fmt.Fprintf(w, "%s\t%s\n", tok.Span, tok)
		}
	case "json":
		out := make([]jsonToken, len(toks))
		for i, tok := range toks {
			out[i] = jsonToken{tok.Tag.String(), tok.Value, tok.Span.String()}
		}

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", outputFormat)
	}

	return nil
}
