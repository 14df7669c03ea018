package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/alter-ego/internal/bootstrap"
	grpcv1 "github.com/KirkDiggler/alter-ego/internal/handlers/grpc/v1"
	httpv1 "github.com/KirkDiggler/alter-ego/internal/handlers/http/v1"
	"github.com/KirkDiggler/alter-ego/internal/pkg/observability"
	alteregov1 "github.com/KirkDiggler/alter-ego/proto/alterego/v1"
)

const shutdownTimeout = 30 * time.Second

var (
	grpcPort int
	httpPort int
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC and HTTP servers",
	Long:  `Serve generate-persona, generate-stamp and generate-guide over gRPC and HTTP/JSON, with /metrics and /healthz.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides ALTER_EGO_GRPC_PORT)")
	serverCmd.Flags().IntVar(&httpPort, "http-port", -1, "HTTP server port, 0 disables (overrides ALTER_EGO_HTTP_PORT)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if grpcPort > 0 {
		cfg.Server.GRPCPort = grpcPort
	}
	if httpPort >= 0 {
		cfg.Server.HTTPPort = httpPort
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName:  "alter-ego",
		Exporter:     cfg.Tracing.Exporter,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
	})
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(flushCtx)
	}()

	metrics := observability.NewMetrics()

	limiter, err := bootstrap.NewLimiter(ctx, cfg.Limits)
	if err != nil {
		return err
	}
	defer limiter.Close(context.Background())

	service, err := bootstrap.NewGenerationService(ctx, &bootstrap.GenerationConfig{
		Config:  cfg,
		Limiter: limiter,
		Metrics: metrics,
	})
	if err != nil {
		return fmt.Errorf("failed to create generation service: %w", err)
	}

	grpcHandler, err := grpcv1.NewHandler(&grpcv1.HandlerConfig{Service: service})
	if err != nil {
		return fmt.Errorf("failed to create grpc handler: %w", err)
	}
	httpHandler, err := httpv1.NewHandler(&httpv1.HandlerConfig{
		Service:      service,
		AllowOrigins: cfg.Server.AllowOrigins,
	})
	if err != nil {
		return fmt.Errorf("failed to create http handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)
	alteregov1.RegisterContentServiceServer(srv, grpcHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(alteregov1.ContentService_ServiceDesc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.InfoContext(ctx, "gRPC server starting", "port", cfg.Server.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			return fmt.Errorf("failed to serve grpc: %w", err)
		}
		return nil
	})

	var httpSrv *http.Server
	if cfg.Server.HTTPPort > 0 {
		gin.SetMode(gin.ReleaseMode)
		router := httpHandler.Router()
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
		router.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

		httpSrv = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			slog.InfoContext(ctx, "HTTP server starting", "port", cfg.Server.HTTPPort)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("failed to serve http: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down servers")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if httpSrv != nil {
			_ = httpSrv.Shutdown(shutdownCtx)
		}

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("servers stopped gracefully")
		}
		return nil
	})

	return g.Wait()
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
