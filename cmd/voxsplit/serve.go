package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"github.com/nadzzz/voxsplit/internal/config"
	"github.com/nadzzz/voxsplit/internal/health"
	"github.com/nadzzz/voxsplit/internal/notify"
	"github.com/nadzzz/voxsplit/internal/transport"
	grpctransport "github.com/nadzzz/voxsplit/internal/transport/grpc"
	httptransport "github.com/nadzzz/voxsplit/internal/transport/http"
)

func serveCmd(conf func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and gRPC transports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd, conf())
		},
	}
	cmd.Flags().Int("http-port", 0, "HTTP transport port")
	cmd.Flags().Int("grpc-port", 0, "gRPC transport port")
	cmd.Flags().Int("health-port", 0, "health server port")
	cmd.Flags().String("piper", "", "Piper Wyoming endpoint (host:port)")
	return cmd
}

func serve(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()
	slog.Info("voxsplit starting", "version", version)

	speaker, synth, err := newSpeaker(cfg, notify.Log{})
	if err != nil {
		return err
	}
	if synth != nil {
		defer synth.Close()
	}

	var transports []transport.Transport
	if cfg.Server.GRPC.Enabled {
		transports = append(transports, grpctransport.New(cfg.Server.GRPC.Port))
	}
	if cfg.Server.HTTP.Enabled {
		transports = append(transports, httptransport.New(cfg.Server.HTTP.Port))
	}
	if len(transports) == 0 {
		return errors.New("no transports enabled; enable at least one in config")
	}

	healthServer := health.New(cfg.Server.HealthPort)
	if synth != nil {
		for _, ep := range synth.Endpoints() {
			healthServer.AddCheck("piper "+ep, health.TCPCheck(ep))
		}
	}
	go func() {
		if err := healthServer.ListenAndServe(ctx); err != nil {
			slog.Error("health server failed", "error", err)
		}
	}()

	err = runTransports(ctx, transports, speaker, func(ready bool) {
		healthServer.SetReady(ready)
		if ready {
			slog.Info("voxsplit ready",
				"transports", len(transports),
				"health_port", cfg.Server.HealthPort,
				"tts", synth != nil)
		}
	})
	slog.Info("voxsplit stopped")
	return err
}

// runTransports listens on every transport until ctx is cancelled or all of
// them have stopped on their own, then closes them. setReady is called with
// true once listeners are started and with false when draining begins.
func runTransports(ctx context.Context, transports []transport.Transport, h transport.Handler, setReady func(bool)) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, t := range transports {
		wg.Add(1)
		go func(t transport.Transport) {
			defer wg.Done()
			slog.Info("starting transport", "name", t.Name())
			if err := t.Listen(ctx, h); err != nil {
				slog.Error("transport failed", "name", t.Name(), "error", err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", t.Name(), err))
				mu.Unlock()
			}
		}(t)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	setReady(true)

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining...")
	case <-done:
		slog.Warn("all transports stopped")
	}
	setReady(false)

	for _, t := range transports {
		if err := t.Close(); err != nil {
			slog.Error("transport close error", "name", t.Name(), "error", err)
		}
	}

	<-done
	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}
