// Command server is the dcodex sandbox runner entrypoint: it wires
// config, logging, the admission gate, the rate limiter, a metrics/health
// HTTP listener, and the gRPC server, then waits for a shutdown signal.
package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"

	"github.com/dcodex/sandboxrunner/internal/admission"
	"github.com/dcodex/sandboxrunner/internal/config"
	"github.com/dcodex/sandboxrunner/internal/grpcserver"
	"github.com/dcodex/sandboxrunner/internal/languages"
	"github.com/dcodex/sandboxrunner/internal/logging"
	"github.com/dcodex/sandboxrunner/internal/pb"
	"github.com/dcodex/sandboxrunner/internal/process"
	"github.com/dcodex/sandboxrunner/internal/ratelimit"
	"github.com/dcodex/sandboxrunner/internal/sandbox"
)

func main() {
	configPath := flag.String("config", "configs/server.yaml", "path to server config")
	flag.Parse()

	logger := logging.New()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	registry := languages.NewRegistry()
	runner := process.NewRunner(cfg.Sandbox.HelperPath)
	orchestrator := sandbox.NewOrchestrator(registry, runner)
	gate := admission.NewGate(cfg.Admission.MaxConcurrent)
	limiter := ratelimit.New(cfg.RateLimit.GlobalRPS, cfg.RateLimit.PerPeerRPS, cfg.RateLimit.PerPeerBurst)

	grpcServer := grpc.NewServer(grpc.StreamInterceptor(grpcserver.RateLimitInterceptor(limiter)))
	pb.RegisterSandboxServer(grpcServer, grpcserver.New(orchestrator, gate, logger))

	lis, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.Server.Addr).Msg("failed to bind grpc listener")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	metricsServer := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("starting grpc server")
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal().Err(err).Msg("grpc server crashed")
		}
	}()

	go func() {
		logger.Info().Str("addr", cfg.Metrics.Addr).Msg("starting metrics server")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("metrics server crashed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	grpcServer.GracefulStop()
	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("metrics server shutdown failed")
	}
}
