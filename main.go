// Command willow parses HTML documents and prints the resulting tree or
// its re-serialized markup, along with any parse errors recovered along
// the way.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/willowweb/willow/parser"
	"github.com/willowweb/willow/parser/dom"
)

type options struct {
	serialize  bool
	scripting  bool
	showErrors bool
	logLevel   string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "willow [file]",
		Short: "Parse an HTML document and print its tree",
		Long: `willow parses an HTML document from a file or standard input and
prints the resulting document tree. Malformed markup is recovered, not
rejected; pass --errors to see what was repaired.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.serialize, "serialize", false, "print re-serialized markup instead of the tree dump")
	cmd.Flags().BoolVar(&opts.scripting, "scripting", false, "parse with the scripting flag enabled")
	cmd.Flags().BoolVar(&opts.showErrors, "errors", false, "report recovered parse errors on stderr")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	level, err := logrus.ParseLevel(opts.logLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", opts.logLevel)
	}
	log.SetLevel(level)

	var in io.Reader = cmd.InOrStdin()
	name := "stdin"
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "opening input")
		}
		defer f.Close()
		in = f
		name = args[0]
	}

	popts := []parser.Option{
		parser.WithScripting(opts.scripting),
		parser.WithLogger(log),
	}
	if opts.showErrors {
		popts = append(popts, parser.WithErrorHandler(func(pe parser.ParseError) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", name, pe)
		}))
	}

	p := parser.NewParser(popts...)
	doc, err := p.Parse(in)
	if err != nil {
		return errors.Wrapf(err, "parsing %s", name)
	}

	out := cmd.OutOrStdout()
	if opts.serialize {
		fmt.Fprintln(out, dom.Serialize(doc))
		return nil
	}
	fmt.Fprint(out, doc.String())
	return nil
}
