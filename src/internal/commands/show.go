package commands

import (
	"flag"
	"fmt"

	"github.com/maksimkurb/cgproxy/src/internal/config"
	"github.com/maksimkurb/cgproxy/src/internal/log"
)

func CreateShowCommand() *ShowCommand {
	sc := &ShowCommand{
		fs: flag.NewFlagSet("show", flag.ContinueOnError),
	}

	sc.fs.BoolVar(&sc.HashOnly, "hash", false, "Print only the configuration fingerprint")

	return sc
}

type ShowCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	HashOnly bool
}

func (s *ShowCommand) Name() string {
	return s.fs.Name()
}

func (s *ShowCommand) Init(args []string, ctx *AppContext) error {
	s.ctx = ctx

	// stdout carries the command output
	log.SetForceStdErr(true)

	if err := s.fs.Parse(args); err != nil {
		return usageError("invalid arguments", err)
	}

	cfg, err := loadConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	s.cfg = cfg

	return nil
}

func (s *ShowCommand) Run() error {
	hash, err := s.cfg.Hash()
	if err != nil {
		return err
	}

	out := s.ctx.stdout()
	if s.HashOnly {
		_, err := fmt.Fprintln(out, hash)
		return err
	}

	buf, err := s.cfg.SerializeConfig()
	if err != nil {
		return err
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "# fingerprint: %s\n", hash)
	return err
}
