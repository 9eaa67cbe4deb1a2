package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/zostay/flexar"
	"github.com/zostay/flexar/internal/demo"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var log = commonlog.GetLogger("flexar")

// options are the flags shared by every command.
type options struct {
	verbose int
	trace   bool
}

// language returns the demo language, tracing to the debug log when asked.
func (o *options) language() *flexar.Language[demo.Expr] {
	lang := demo.Language()
	if o.trace {
		lang = lang.WithTrace(func(v ...any) {
			log.Debugf("%s", fmt.Sprint(v...))
		})
	}
	return lang
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "flexar",
		Short:        "Scan and parse files of the flexar demo language",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbosity := opts.verbose
			if opts.trace && verbosity < 2 {
				verbosity = 2
			}
			commonlog.Configure(verbosity, nil)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "log more, repeat for even more")
	rootCmd.PersistentFlags().BoolVar(&opts.trace, "trace", false, "log every rule tried by the scanner and parser")

	rootCmd.AddCommand(newScanCmd(opts))
	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
