package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/maksimkurb/cgproxy/src/internal/commands"
	"github.com/maksimkurb/cgproxy/src/internal/config"
	"github.com/maksimkurb/cgproxy/src/internal/errors"
	"github.com/maksimkurb/cgproxy/src/internal/log"
	"github.com/maksimkurb/cgproxy/src/internal/utils"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", config.DefaultConfigPath, "Path to configuration file")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cgproxy - cgroup-based transparent proxy configuration\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  show [-hash]                Print the configuration and its fingerprint\n")
		fmt.Fprintf(os.Stderr, "  validate [file]             Validate a configuration document\n")
		fmt.Fprintf(os.Stderr, "  set [-dry-run] <json>       Apply a partial JSON document and save it\n")
		fmt.Fprintf(os.Stderr, "  env [-format tmpl]          Print the exported environment\n")
		fmt.Fprintf(os.Stderr, "  run -- <worker> [args]      Start a worker with the exported environment\n")
		fmt.Fprintf(os.Stderr, "  serve [-socket path]        Run the control API on a unix socket\n")
		fmt.Fprintf(os.Stderr, "\nExit status: 0 ok, 1 file error, 2 invalid input, 3 other; run exits with the worker's status\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}
	log.SetColors(term.IsTerminal(int(os.Stderr.Fd())))

	// The config path is stored by serve and must survive a later chdir
	configPath, err := utils.ResolvePath(ctx.ConfigPath)
	if err != nil {
		log.Errorf("Failed to resolve configuration path %s: %v", ctx.ConfigPath, err)
		os.Exit(errors.ExitFile)
	}
	ctx.ConfigPath = configPath

	cmds := []commands.Runner{
		commands.CreateShowCommand(),
		commands.CreateValidateCommand(),
		commands.CreateSetCommand(),
		commands.CreateEnvCommand(),
		commands.CreateRunCommand(),
		commands.CreateServeCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(errors.ExitParam)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Errorf("Failed to initialize command: %v", err)
				os.Exit(errors.ExitCode(err))
			}

			if err := cmd.Run(); err != nil {
				if code := commands.WorkerExitCode(err); code >= 0 {
					os.Exit(code)
				}
				log.Errorf("Failed to run command: %v", err)
				os.Exit(errors.ExitCode(err))
			}

			os.Exit(errors.ExitOK)
		}
	}

	log.Errorf("Unknown subcommand: %s", subcommand)
	os.Exit(errors.ExitParam)
}
