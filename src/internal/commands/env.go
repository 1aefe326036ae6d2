package commands

import (
	"flag"
	"fmt"

	"github.com/maksimkurb/cgproxy/src/internal/config"
	"github.com/maksimkurb/cgproxy/src/internal/log"
)

func CreateEnvCommand() *EnvCommand {
	ec := &EnvCommand{
		fs: flag.NewFlagSet("env", flag.ContinueOnError),
	}

	ec.fs.StringVar(&ec.Format, "format", config.DefaultEnvTemplate,
		fmt.Sprintf("Line template, {{%s}} and {{%s}} are substituted", config.ENV_TMPL_NAME, config.ENV_TMPL_VALUE))

	return ec
}

// EnvCommand prints the variables a worker would receive.
type EnvCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	Format string
}

func (e *EnvCommand) Name() string {
	return e.fs.Name()
}

func (e *EnvCommand) Init(args []string, ctx *AppContext) error {
	e.ctx = ctx

	// stdout carries the command output
	log.SetForceStdErr(true)

	if err := e.fs.Parse(args); err != nil {
		return usageError("invalid arguments", err)
	}

	cfg, err := loadConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	e.cfg = cfg

	return nil
}

func (e *EnvCommand) Run() error {
	rendered, err := e.cfg.ToEnv().Render(e.Format)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(e.ctx.stdout(), rendered)
	return err
}
