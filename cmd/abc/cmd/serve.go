package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/f3rmion/abc/internal/server"
)

const (
	sessionTTL      = 30 * time.Minute
	pruneInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the recognizer over HTTP",
	Long: `Serve the recognizer and tracing sessions over HTTP for a browser
drawing surface.

Endpoints:
  GET  /healthz
  GET  /api/letters
  POST /api/recognize                {"letter":"A","points":[{"x":0,"y":0},...]}
  POST /api/sessions
  GET  /api/sessions/{id}
  POST /api/sessions/{id}/strokes    {"points":[...]}
  POST /api/sessions/{id}/next|prev|tracing|clear|announce|select
  GET  /api/samples?letter=A         (with a sample database)
  POST /api/samples
  GET  /api/samples/counts

Idle sessions are dropped after 30 minutes.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Bool("no-samples", false, "do not open the sample database")
	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	log.SetOutput(os.Stderr)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var opts []server.Option
	if noSamples, _ := cmd.Flags().GetBool("no-samples"); !noSamples {
		store, err := openStore(cmd.Context())
		if err != nil {
			return fmt.Errorf("opening samples: %w", err)
		}
		defer store.Close()
		opts = append(opts, server.WithSamples(store))
	}

	srv := server.New(cfg, opts...)
	httpServer := &http.Server{
		Addr:              viper.GetString("addr"),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(pruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if n := srv.Sessions().Prune(sessionTTL); n > 0 && viper.GetBool("verbose") {
					log.Printf("pruned %d idle sessions", n)
				}
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})

	return g.Wait()
}
