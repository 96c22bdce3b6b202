// Command nutsctl is the ambient entry point exercising both the regex
// engine and the carrot codec together: classify stdin lines against a
// YAML pattern set, or round-trip rows through the carrot wire format.
package main

import (
	"fmt"
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
)

type cliOptions struct {
	Command string
	Config  string
	Verbose bool
	Silent  bool
}

func parseFlags() *cliOptions {
	opts := &cliOptions{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("Classify lines against a pattern set, or inspect carrot-encoded tables.")

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Command, "command", "c", "", "subcommand to run: classify, encode, decode"),
		flagSet.StringVarP(&opts.Config, "config", "f", "", "YAML pattern config file (required for classify)"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s", err)
	}
	return opts
}

func main() {
	opts := parseFlags()

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	var err error
	switch opts.Command {
	case "classify":
		err = cmdClassify(opts)
	case "encode":
		err = runEncode(os.Stdin, os.Stdout)
	case "decode":
		err = runDecode(os.Stdin, os.Stdout)
	default:
		fmt.Fprintln(os.Stderr, "usage: nutsctl -c classify -f config.yaml | -c encode | -c decode")
		os.Exit(2)
	}

	if err != nil {
		gologger.Fatal().Msgf("%s", err)
	}
}

func cmdClassify(opts *cliOptions) error {
	if opts.Config == "" {
		return fmt.Errorf("classify requires -f config.yaml")
	}
	cfg, err := LoadConfig(opts.Config)
	if err != nil {
		return err
	}
	ps, err := buildPatternSet(cfg)
	if err != nil {
		return fmt.Errorf("building pattern set: %w", err)
	}
	gologger.Info().Msgf("loaded %d patterns from %s", len(cfg.Patterns), opts.Config)
	return runClassify(ps, os.Stdin, os.Stdout)
}
