package screening_service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "kyc-screening/docs" // Swagger docs
	"kyc-screening/internal/api/rest"
	"kyc-screening/internal/bootstrap"
	"kyc-screening/internal/config"
	"kyc-screening/internal/grpc"
	"kyc-screening/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

// StartScreeningService запускает HTTP и gRPC серверы, Kafka consumer и обновление
// санкционных списков; завершается по SIGINT или SIGTERM
func StartScreeningService() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, false)
	gin.SetMode(gin.ReleaseMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация зависимостей
	deps, err := InitializeDependencies(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize dependencies")
	}
	defer deps.Close()

	// Запуск Kafka consumer в отдельной горутине
	if deps.KafkaConsumer != nil {
		go func() {
			log.Info().Msg("Starting Kafka consumer...")
			if err := deps.KafkaConsumer.Start(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("Kafka consumer stopped")
			}
		}()
	}

	// Периодическое обновление санкционных списков
	if src := bootstrap.SanctionsSource(cfg); src != nil {
		interval := time.Duration(cfg.Sanctions.RefreshMinutes) * time.Minute
		go func() {
			log.Info().Str("source", src.Name()).Dur("interval", interval).Msg("Starting sanctions refresh")
			if err := deps.Loader.Run(ctx, src, interval); err != nil {
				log.Error().Err(err).Msg("Sanctions refresh stopped")
			}
		}()
	}

	// Настройка REST API
	handlers := rest.NewHandlers(deps.ScreeningService, deps.SanctionsService, deps.ReportService)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: rest.SetupRouter(handlers, deps.Registry),
	}

	go func() {
		log.Info().Int("port", cfg.Server.HTTPPort).Msg("Screening Service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Запуск gRPC сервера в отдельной горутине
	grpcServer := grpc.NewGRPCServer(grpc.NewScreeningGRPCServer(deps.ScreeningService, deps.SanctionsService))
	go func() {
		if err := grpc.StartGRPCServer(cfg, grpcServer); err != nil {
			log.Fatal().Err(err).Msg("Failed to start gRPC server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down services...")
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	select {
	case <-stopped:
	case <-ctxShutdown.Done():
		grpcServer.Stop()
	}

	log.Info().Msg("Services exited")
}
