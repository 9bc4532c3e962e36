// Package main provides the CLI entrypoint for the built.at subdomain listing.
// It wires subcommands (serve, browse), loads configuration, and initializes logging.
package main

import (
	"builtat/internal/config"
	"builtat/pkg/logger"
	"context"
	"flag"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "builtat",
		Short: "Lists the live subdomains of the parent domain",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("c", "config.yml", "The config file path")
	_ = fs.Parse(configArgs(os.Args[1:]))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		browseCommand(cfg),
	)

	err = rootCmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}

// configArgs picks the -c/--config flag out of args so it can be read
// before cobra parses the command line.
func configArgs(args []string) []string {
	for i, a := range args {
		switch a {
		case "-c", "--config", "-config":
			if i+1 < len(args) {
				return []string{"-c", args[i+1]}
			}
		}
		for _, prefix := range []string{"-c=", "--config=", "-config="} {
			if v, ok := strings.CutPrefix(a, prefix); ok && v != "" {
				return []string{"-c", v}
			}
		}
	}

	return nil
}
