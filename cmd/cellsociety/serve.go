package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"cellsociety/internal/runner"
	"cellsociety/internal/stream"

	"github.com/spf13/cobra"
)

var (
	serveFlags   overrides
	flagAddr     string
	flagServeTPS int
)

var serveCmd = &cobra.Command{
	Use:   "serve <scenario>",
	Short: "Stream a running scenario to websocket viewers",
	Long: `Run a scenario continuously and broadcast every generation as JSON over
a websocket at /ws. Viewers may send {"type":"click","row":R,"col":C}
to cycle a cell; clicks are applied between steps.

Also served:
  /frame    - the latest frame as JSON
  /healthz  - health check

Examples:
  cellsociety serve fire --addr :8080
  cellsociety serve wator --tps 5`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	serveFlags.bind(serveCmd)
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8080", "HTTP listen address")
	serveCmd.Flags().IntVar(&flagServeTPS, "tps", 10, "Steps per second")
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := serveFlags.load(cmd, args[0])
	if err != nil {
		return err
	}
	m, err := s.New()
	if err != nil {
		return err
	}
	if flagServeTPS <= 0 {
		flagServeTPS = 10
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	hub := stream.NewHub(logger.With("component", "stream"))
	hub.Publish(m)

	srv := &http.Server{Addr: flagAddr, Handler: hub.Handler()}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("serving", "addr", flagAddr, "scenario", s.Name, "tps", flagServeTPS)
		serveErr <- srv.ListenAndServe()
	}()

	runDone := make(chan error, 1)
	go func() {
		_, err := runner.Run(ctx, m, runner.Options{
			TPS:     flagServeTPS,
			Inbox:   hub.Inbox(),
			Observe: hub.Publish,
			Logger:  logger,
		})
		runDone <- err
	}()

	select {
	case err = <-serveErr:
		stop()
		<-runDone
	case <-ctx.Done():
		err = <-runDone
	}

	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		logger.Warn("shutdown", "err", serr)
	}
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}
