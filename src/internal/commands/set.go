package commands

import (
	"flag"
	"fmt"

	"github.com/maksimkurb/cgproxy/src/internal/config"
	"github.com/maksimkurb/cgproxy/src/internal/log"
	"github.com/maksimkurb/cgproxy/src/internal/utils"
)

func CreateSetCommand() *SetCommand {
	sc := &SetCommand{
		fs: flag.NewFlagSet("set", flag.ContinueOnError),
	}

	sc.fs.BoolVar(&sc.DryRun, "dry-run", false, "Print the resulting configuration without saving it")

	return sc
}

// SetCommand applies a partial JSON document to the configuration file.
type SetCommand struct {
	fs    *flag.FlagSet
	ctx   *AppContext
	cfg   *config.Config
	patch []byte

	DryRun bool
}

func (s *SetCommand) Name() string {
	return s.fs.Name()
}

func (s *SetCommand) Init(args []string, ctx *AppContext) error {
	s.ctx = ctx

	if err := s.fs.Parse(args); err != nil {
		return usageError("invalid arguments", err)
	}
	if s.fs.NArg() != 1 {
		return usageError("set expects exactly one JSON document", nil)
	}
	s.patch = []byte(s.fs.Arg(0))

	cfg, err := loadConfigOrDefaults(ctx.ConfigPath)
	if err != nil {
		return err
	}
	s.cfg = cfg

	return nil
}

func (s *SetCommand) Run() error {
	report, err := s.cfg.LoadFromJSON(s.patch)
	if err != nil {
		return err
	}

	out := s.ctx.stdout()
	for _, skipped := range report.Skipped() {
		fmt.Fprintf(out, "skipped %s: %s\n", skipped.Field, skipped.Reason)
	}

	if s.DryRun {
		buf, err := s.cfg.SerializeConfig()
		if err != nil {
			return err
		}
		_, err = out.Write(buf.Bytes())
		return err
	}

	if err := utils.EnsureParentDir(s.ctx.ConfigPath, 0755); err != nil {
		log.Warnf("Failed to create directory for %s: %v", s.ctx.ConfigPath, err)
	}
	if err := s.cfg.SaveToFile(s.ctx.ConfigPath); err != nil {
		return err
	}

	log.Infof("Updated %v in %s", report.Applied(), s.ctx.ConfigPath)
	return nil
}
