package commands

import (
	stderrors "errors"
	"flag"
	"os"
	"os/exec"

	"github.com/maksimkurb/cgproxy/src/internal/config"
	"github.com/maksimkurb/cgproxy/src/internal/log"
)

func CreateRunCommand() *RunCommand {
	return &RunCommand{
		fs: flag.NewFlagSet("run", flag.ContinueOnError),
	}
}

// RunCommand exports the configuration into the environment and starts a
// worker that inherits it. The worker's exit status is returned as an
// *exec.ExitError.
type RunCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	cfg    *config.Config
	worker []string
}

func (r *RunCommand) Name() string {
	return r.fs.Name()
}

func (r *RunCommand) Init(args []string, ctx *AppContext) error {
	r.ctx = ctx

	// stdout carries the command output
	log.SetForceStdErr(true)

	if err := r.fs.Parse(args); err != nil {
		return usageError("invalid arguments", err)
	}
	if r.fs.NArg() == 0 {
		return usageError("run expects a worker command after --", nil)
	}
	r.worker = r.fs.Args()

	cfg, err := loadConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	r.cfg = cfg

	return nil
}

func (r *RunCommand) Run() error {
	if err := r.cfg.ToEnv().Apply(); err != nil {
		return err
	}

	cmd := exec.Command(r.worker[0], r.worker[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.ctx.stdout()
	cmd.Stderr = os.Stderr

	log.Debugf("Starting worker %v", r.worker)
	return cmd.Run()
}

// WorkerExitCode returns the exit status of a worker that ran and failed,
// or -1 if err does not come from the worker process.
func WorkerExitCode(err error) int {
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
