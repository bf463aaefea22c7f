package cli

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/iwvelando/deposit-calculator/internal/config"
	"github.com/iwvelando/deposit-calculator/internal/server"
	"github.com/iwvelando/deposit-calculator/pkg/constants"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type serveCmd struct {
	app        *App
	configPath string
	address    string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the web calculator" }
func (*serveCmd) Usage() string {
	return `serve [-server-config <file>] [-address <host:port>]:
  Serves the web UI and the JSON API until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "server-config", constants.DefaultServerConfigFile, "path to the server configuration file")
	f.StringVar(&c.address, "address", "", "listen address override")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger := c.app.logger()
	var records config.RecordsConfig
	if c.app.Config != nil {
		records = c.app.Config.Records
	}
	cfg, err := server.LoadConfig(c.configPath, records)
	if err != nil {
		return c.app.fail("cli.serve", err)
	}
	if c.address != "" {
		cfg.Address = c.address
	}

	handler := server.NewHandler(logger, c.app.Store, cfg.Settings(c.app.Version))
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("op", "cli.serve"),
			zap.String("address", cfg.Address),
		)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return c.app.fail("cli.serve", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return c.app.fail("cli.serve", err)
		}
		logger.Info("server stopped",
			zap.String("op", "cli.serve"),
		)
	}
	return subcommands.ExitSuccess
}
