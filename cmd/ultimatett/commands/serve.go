package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/server"
)

var addrFlag string

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the timetable JSON API over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&addrFlag, "addr", "", "listen address (env HTTP_ADDR)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.log.Sync() //nolint:errcheck

	if addrFlag != "" {
		e.cfg.HTTPAddr = addrFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := e.service(ctx)
	if err != nil {
		return err
	}
	e.log.Info("timetable ready",
		zap.String("source", e.cfg.Source),
		zap.Int("sessions", svc.Store().Len()),
		zap.String("tz", e.cfg.TimeZone))

	srv := server.New(svc, server.Config{
		CORSOrigins:  e.cfg.CORSOrigins,
		RateLimitMax: e.cfg.RateLimitMax,
	}, e.log)
	return srv.Run(ctx, e.cfg.HTTPAddr)
}
