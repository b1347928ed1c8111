package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"liyu1981.xyz/iot-dashboard/pkg/buildconfig"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	iotGrpc "liyu1981.xyz/iot-dashboard/pkg/grpc"
	iotHttp "liyu1981.xyz/iot-dashboard/pkg/http"
	"liyu1981.xyz/iot-dashboard/pkg/iot"
	"liyu1981.xyz/iot-dashboard/pkg/mqtt"
)

const (
	defaultHTTPHostPort = ":1080"
	defaultWebConfig    = "web.yaml"
	shutdownTimeout     = 10 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the ingest API, and the gRPC server and MQTT bridge when configured",
		Long: `serve listens for device readings over HTTP on IOT_HTTP_HOST_PORT (default :1080)
and serves the built front-end when web.yaml points at an existing build.

IOT_GRPC_HOST_PORT enables the gRPC ingest service and IOT_MQTT_BROKER the MQTT
bridge. IOT_DEFAULT_RATE and IOT_DEFAULT_BURST set the per-device rate limit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

// staticDir returns the front-end build output, or "" when there is none.
func staticDir(logger *zap.Logger) string {
	path := common.GetEnvOrDefault(common.EnvKeyIOTWebConfig, defaultWebConfig)
	cfg, err := buildconfig.Load(path)
	if err != nil {
		logger.Warn("Front-end build config not loaded, static serving disabled", zap.Error(err))
		return ""
	}
	resolved, err := cfg.Resolve(".")
	if err != nil {
		logger.Warn("Front-end build config not resolved, static serving disabled", zap.Error(err))
		return ""
	}
	if _, err := os.Stat(resolved.IndexFile()); err != nil {
		logger.Info("No front-end build found", zap.String("out_dir", resolved.Build.OutDir))
		return ""
	}
	return resolved.Build.OutDir
}

func serve(ctx context.Context) error {
	logger := common.GetLoggerWith(common.LoggerNameCLI)

	d, err := openDatabase()
	if err != nil {
		return err
	}
	iotCore := iot.New(d)
	limiter := iot.NewRateLimiterStoreFromEnv()
	defaultRate, defaultBurst := limiter.Defaults()

	errCh := make(chan error, 2)

	if grpcHostPort := common.GetEnvOrDefault(common.EnvKeyIOTGrpcHostPort, ""); grpcHostPort != "" {
		listener, err := net.Listen("tcp", grpcHostPort)
		if err != nil {
			return fmt.Errorf("listen gRPC on %s: %w", grpcHostPort, err)
		}

		iotGrpcServer := &iotGrpc.IOTServer{Iot: iotCore, RateLimiterStore: limiter}
		interceptor := iotGrpcServer.CreateRateLimitInterceptor([]string{iotGrpc.MethodPostReading})
		s := grpc.NewServer(grpc.UnaryInterceptor(interceptor))
		iotGrpc.RegisterIngestServiceServer(s, iotGrpcServer)
		defer s.GracefulStop()

		logger.Info("Starting gRPC server",
			zap.String("host_port", grpcHostPort),
			zap.Float64("default_rate", float64(defaultRate)),
			zap.Int("default_burst", defaultBurst))
		go func() {
			if err := s.Serve(listener); err != nil {
				errCh <- fmt.Errorf("grpc server failed to serve: %w", err)
			}
		}()
	}

	if broker := common.GetEnvOrDefault(common.EnvKeyIOTMQTTBroker, ""); broker != "" {
		clientID := common.GetEnvOrDefault(common.EnvKeyIOTMQTTClientID, mqtt.DefaultClientID)
		bridge := mqtt.NewBridge(broker, clientID, iotCore, limiter)
		if err := bridge.Start(); err != nil {
			return err
		}
		defer bridge.Stop()
		logger.Info("MQTT bridge started", zap.String("broker", broker), zap.String("client_id", clientID))
	}

	if common.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	rs := &iotHttp.RestfulServer{
		Server:           gin.Default(),
		Iot:              iotCore,
		RateLimiterStore: limiter,
		StaticDir:        staticDir(logger),
	}
	rs.Setup()

	httpHostPort := common.GetEnvOrDefault(common.EnvKeyIOTHttpHostPort, defaultHTTPHostPort)
	httpServer := &http.Server{Addr: httpHostPort, Handler: rs.Server}

	logger.Info("Starting HTTP server",
		zap.String("host_port", httpHostPort),
		zap.String("static_dir", rs.StaticDir),
		zap.Float64("default_rate", float64(defaultRate)),
		zap.Int("default_burst", defaultBurst))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server failed to serve: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
