package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/turing"
	httpAdapter "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// ServeOptions configures Serve.
type ServeOptions struct {
	Addr      string
	RedisAddr string
	StepLimit int
	Debug     bool
	LogLevel  string
}

// Serve runs the HTTP API until ctx is cancelled.
func Serve(ctx context.Context, w io.Writer, opts ServeOptions) error {
	logger, err := createLogger(opts.Debug, opts.LogLevel)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	simOpts := []turing.Option{turing.WithLogger(logger), turing.WithMetrics(metrics)}
	store, closeStore := openStore(opts.RedisAddr)
	defer closeStore()
	if store != nil {
		simOpts = append(simOpts, turing.WithStore(store))
	}

	handlerOpts := []httpAdapter.Option{
		httpAdapter.WithGatherer(reg),
		httpAdapter.WithLogger(logger),
	}
	if opts.StepLimit > 0 {
		handlerOpts = append(handlerOpts, httpAdapter.WithStepLimit(opts.StepLimit))
	}

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           httpAdapter.NewHandler(turing.New(simOpts...), handlerOpts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	fmt.Fprintf(w, "Starting Turing Server on %s\n", srv.Addr)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		fmt.Fprintln(w, "\nStart shutdown...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		fmt.Fprintln(w, "Turing Server stopped gracefully")
		return nil
	}
}
