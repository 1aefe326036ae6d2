package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/maksimkurb/cgproxy/src/internal/config"
	"github.com/maksimkurb/cgproxy/src/internal/errors"
	"github.com/maksimkurb/cgproxy/src/internal/log"
)

func CreateValidateCommand() *ValidateCommand {
	return &ValidateCommand{
		fs: flag.NewFlagSet("validate", flag.ContinueOnError),
	}
}

// ValidateCommand checks a document without applying it.
type ValidateCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	path string
}

func (v *ValidateCommand) Name() string {
	return v.fs.Name()
}

func (v *ValidateCommand) Init(args []string, ctx *AppContext) error {
	v.ctx = ctx

	if err := v.fs.Parse(args); err != nil {
		return usageError("invalid arguments", err)
	}

	switch v.fs.NArg() {
	case 0:
		v.path = ctx.ConfigPath
	case 1:
		v.path = v.fs.Arg(0)
	default:
		return usageError("validate accepts at most one file", nil)
	}

	return nil
}

func (v *ValidateCommand) Run() error {
	data, err := os.ReadFile(v.path)
	if err != nil {
		return errors.NewFileError(fmt.Sprintf("failed to read %s", v.path), err)
	}

	if err := config.ValidateJSON(data); err != nil {
		log.Errorf("%s is invalid", v.path)
		return errors.NewParamError(fmt.Sprintf("%s is invalid", v.path), err)
	}

	_, err = fmt.Fprintf(v.ctx.stdout(), "%s: OK\n", v.path)
	return err
}
