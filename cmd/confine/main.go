// Package main runs confine: the list, read, write and execute operations
// confined to one working directory, served as JSON lines over stdio.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Cyclone1070/confine/internal/config"
	"github.com/Cyclone1070/confine/internal/logging"
	"github.com/Cyclone1070/confine/internal/tool/service/path"
	"github.com/Cyclone1070/confine/internal/toolset"
	"github.com/Cyclone1070/confine/internal/transport/stdio"
)

// options holds the parsed command line.
type options struct {
	root       string
	configPath string
	verbose    bool
	help       bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, *pflag.FlagSet, error) {
	var opts options

	flagSet := pflag.NewFlagSet("confine", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.root, "root", "", "working directory every operation is confined to (default: workspace.root from config, else the current directory)")
	flagSet.StringVar(&opts.configPath, "config", "", "config file (default: ~/.config/confine/config.json)")
	flagSet.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")
	flagSet.BoolVarP(&opts.help, "help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		return nil, flagSet, err
	}
	if flagSet.NArg() > 0 {
		return nil, flagSet, fmt.Errorf("unexpected arguments: %v", flagSet.Args())
	}
	return &opts, flagSet, nil
}

func loadConfig(opts *options) (*config.Config, error) {
	loader := config.NewLoader()
	if opts.configPath != "" {
		return loader.LoadFrom(opts.configPath)
	}
	return loader.Load()
}

// resolveRoot picks the working root: flag, then config, then the current directory.
func resolveRoot(opts *options, cfg *config.Config) (string, error) {
	root := opts.root
	if root == "" {
		root = cfg.Workspace.Root
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}
	return path.CanonicaliseRoot(root)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, flagSet, err := parseFlags(args, stderr)
	if err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if opts.help {
		fmt.Fprintf(stderr, "Usage: confine [flags]\n\n%s", flagSet.FlagUsages())
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	}
	if opts.verbose {
		logCfg.Level = "debug"
	}
	logger := logging.NewOrNop(logCfg)
	defer func() { _ = logger.Sync() }()

	root, err := resolveRoot(opts, cfg)
	if err != nil {
		return err
	}
	logger.Info("working root ready",
		zap.String("root", root),
		zap.String("interpreter", cfg.Tools.ScriptInterpreter),
		zap.Int("timeout_seconds", cfg.Tools.ScriptTimeoutSeconds),
	)

	tools := toolset.New(cfg, root, logger.Named("toolset"))
	server := stdio.NewServer(stdin, stdout, tools, logger.Named("stdio"))

	if err := server.Serve(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
