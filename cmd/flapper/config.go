package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapper/internal/config"
)

var flagFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or validate game configuration",
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the effective configuration",
	Long: `Print the configuration the game would run with, after the search
order (--config, ~/.flapper/configs, ./configs, built-in defaults).

Examples:
  flapper config print > ~/.flapper/configs/flappy.yaml
  flapper config print --format toml`,
	Args: cobra.NoArgs,
	Run:  runConfigPrint,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a configuration file",
	Long: `Load a configuration and report every invalid field.

Without a path the normal search order is used.

Examples:
  flapper config validate ./my-flappy.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfigValidate,
}

func init() {
	configPrintCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml or toml")
	configCmd.AddCommand(configPrintCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigPrint(_ *cobra.Command, _ []string) {
	cfg, _, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	var format config.Format
	switch flagFormat {
	case "yaml", "yml":
		format = config.FormatYAML
	case "toml":
		format = config.FormatTOML
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (use yaml or toml)\n", flagFormat)
		os.Exit(1)
	}

	out, err := config.Encode(cfg, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := os.Stdout.Write(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runConfigValidate(_ *cobra.Command, args []string) {
	path := flagConfig
	if len(args) == 1 {
		path = args[0]
	}

	cfg, source, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	problems := config.Problems(config.Validate(cfg))
	if len(problems) == 0 {
		fmt.Printf("%s: ok\n", source)
		return
	}
	fmt.Printf("%s: %d problem(s)\n", source, len(problems))
	for _, p := range problems {
		fmt.Printf("  %s\n", p)
	}
	os.Exit(1)
}
