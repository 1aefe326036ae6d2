package commands

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maksimkurb/cgproxy/src/internal/api"
	"github.com/maksimkurb/cgproxy/src/internal/log"
)

const shutdownTimeout = 10 * time.Second

// ServeCommand runs the control API on a unix socket until SIGINT or SIGTERM.
type ServeCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext

	handler *api.Handler
	server  *api.Server

	SocketPath  string
	MaxRestarts int
}

func CreateServeCommand() *ServeCommand {
	sc := &ServeCommand{
		fs: flag.NewFlagSet("serve", flag.ContinueOnError),
	}

	sc.fs.StringVar(&sc.SocketPath, "socket", api.DefaultSocketPath, "Path of the control socket")
	sc.fs.IntVar(&sc.MaxRestarts, "max-restarts", 5, "Give up after this many server crashes (0 = never)")

	return sc
}

func (c *ServeCommand) Name() string {
	return c.fs.Name()
}

func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return usageError("invalid arguments", err)
	}

	cfg, err := loadConfigOrDefaults(ctx.ConfigPath)
	if err != nil {
		return err
	}

	c.handler = api.NewHandler(cfg, ctx.ConfigPath)
	c.server = api.NewServer(c.SocketPath, api.NewRouter(c.handler))

	return nil
}

func (c *ServeCommand) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.serve(ctx)
}

// serve runs the server under a RestartableRunner until ctx is cancelled
// or the runner gives up. Each restart listens on a fresh socket.
func (c *ServeCommand) serve(ctx context.Context) error {
	log.Infof("Configuration loaded from: %s", c.ctx.ConfigPath)

	if err := c.server.Listen(); err != nil {
		return err
	}

	runner := NewRestartableRunner(RunnerConfig{
		Name:        "control-api",
		MaxRestarts: c.MaxRestarts,
	}, c.runServer)

	if err := runner.Run(ctx); err != nil {
		return err
	}

	log.Infof("Control API stopped gracefully")
	return nil
}

func (c *ServeCommand) runServer(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- c.server.Serve()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := c.server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Error during server shutdown: %v", err)
		}
		return <-serveErr
	}
}
