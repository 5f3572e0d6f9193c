package main

import (
	"context"
	"errors"
	"log/slog"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	httpadapter "github.com/couchcryptid/unit-converter-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/unit-converter-service/internal/adapter/kafka"
	"github.com/couchcryptid/unit-converter-service/internal/config"
	"github.com/couchcryptid/unit-converter-service/internal/observability"
	"github.com/couchcryptid/unit-converter-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The stream pipeline is feature-flagged via KAFKA_ENABLED; without it
	// the service only answers HTTP requests and is ready immediately.
	var ready sharedobs.ReadinessChecker = httpadapter.AlwaysReady{}
	var closers []namedCloser
	// Closed once the pipeline has returned, so its in-flight batch is
	// finished before the reader and writer are closed.
	pipelineDone := make(chan struct{})
	if cfg.KafkaEnabled {
		reader := kafkaadapter.NewReader(cfg, logger)
		writer := kafkaadapter.NewWriter(cfg, logger)
		closers = append(closers, namedCloser{"kafka reader", reader}, namedCloser{"kafka writer", writer})
		transformer := pipeline.NewTransformer(logger, metrics)

		p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)
		ready = p

		go func() {
			defer close(pipelineDone)
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
		logger.Info("kafka pipeline enabled",
			"source_topic", cfg.KafkaSourceTopic,
			"sink_topic", cfg.KafkaSinkTopic,
			"group_id", cfg.KafkaGroupID,
		)
	} else {
		close(pipelineDone)
		logger.Info("kafka pipeline disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, ready, metrics, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	closeAfterPipeline(shutdownCtx, pipelineDone, logger, closers...)

	logger.Info("shutdown complete")
}

type namedCloser struct {
	name string
	io.Closer
}

// closeAfterPipeline waits for the pipeline to return, or for ctx to expire,
// before closing the Kafka clients it reads from and writes to.
func closeAfterPipeline(ctx context.Context, pipelineDone <-chan struct{}, logger *slog.Logger, closers ...namedCloser) {
	select {
	case <-pipelineDone:
	case <-ctx.Done():
		logger.Warn("pipeline did not stop before shutdown timeout")
	}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Error(c.name+" close error", "error", err)
		}
	}
}
