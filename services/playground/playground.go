// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package playground provides the creative-text playground service.
//
// This package contains the main service type that coordinates HTTP
// routing, the LLM client, the DNA fingerprint endpoints, voice
// synthesis with its audio cache, SQLite persistence, and the
// observability infrastructure.
//
// # Usage
//
//	cfg := playground.Config{Port: 12300}
//	svc, err := playground.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(svc.Run())
package playground

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/AleutianAI/TripLocal/services/llm"
	"github.com/AleutianAI/TripLocal/services/playground/datatypes"
	"github.com/AleutianAI/TripLocal/services/playground/handlers"
	"github.com/AleutianAI/TripLocal/services/playground/observability"
	"github.com/AleutianAI/TripLocal/services/playground/routes"
	"github.com/AleutianAI/TripLocal/services/playground/storage/sqlite"
	"github.com/AleutianAI/TripLocal/services/voice"
	"github.com/AleutianAI/TripLocal/services/voice/cache"
)

// Service defines the playground service lifecycle.
//
// Run() blocks and should only be called once per instance. Router()
// exposes the configured Gin engine for integration tests.
type Service interface {
	// Run starts the HTTP server and blocks until shutdown or error.
	Run() error

	// Router returns the underlying Gin engine for testing.
	Router() *gin.Engine
}

// Config holds playground configuration options. All fields have
// defaults applied by New().
type Config struct {
	// Port is the HTTP server port. Default: 12300
	Port int

	// LLMBackend specifies the model runtime.
	// Valid values: "ollama", "openai". Default: "ollama"
	LLMBackend string

	// DBPath is the SQLite database file. Default: "./playground.db"
	DBPath string

	// OTelEndpoint is the OpenTelemetry collector endpoint.
	// If empty, tracing is disabled.
	OTelEndpoint string

	// VoiceEnabled turns on speech synthesis endpoints.
	// Default: true
	VoiceEnabled bool

	// AudioCachePath is the badger directory for synthesized audio.
	// Default: "./audio-cache"
	AudioCachePath string

	// GinMode sets the Gin framework mode.
	// Valid values: "debug", "release", "test"
	GinMode string
}

type service struct {
	config        Config
	router        *gin.Engine
	llmClient     llm.Client
	store         *sqlite.Store
	synth         *voice.Synthesizer
	audioCache    *cache.Cache
	tracerCleanup func(context.Context)
}

// New creates a playground Service with the given configuration.
//
// Initialization order: defaults, tracing, metrics, storage, audio
// cache, LLM client, router. A failure after the store opens closes
// whatever was already initialized.
func New(cfg Config) (Service, error) {
	s := &service{config: applyConfigDefaults(cfg)}

	if s.config.GinMode != "" {
		gin.SetMode(s.config.GinMode)
	}

	if s.config.OTelEndpoint != "" {
		cleanup, err := s.initTracer()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracer: %w", err)
		}
		s.tracerCleanup = cleanup
	}

	observability.InitMetrics()

	store, err := sqlite.Open(s.config.DBPath)
	if err != nil {
		s.cleanup()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	s.store = store

	if s.config.VoiceEnabled {
		s.synth = voice.NewSynthesizer()
		audioCache, err := cache.Open(cache.Config{
			Path: s.config.AudioCachePath,
			TTL:  24 * time.Hour,
		})
		if err != nil {
			// Synthesis still works without the cache, every request
			// just pays the round trip.
			slog.Warn("Audio cache unavailable", "path", s.config.AudioCachePath, "error", err)
		} else {
			s.audioCache = audioCache
		}
	}

	if err := s.initLLMClient(); err != nil {
		s.cleanup()
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	s.initRouter()

	return s, nil
}

func (s *service) Run() error {
	defer s.cleanup()

	addr := fmt.Sprintf(":%d", s.config.Port)
	slog.Info("Starting playground server", "port", s.config.Port, "backend", s.config.LLMBackend)

	return s.router.Run(addr)
}

func (s *service) Router() *gin.Engine {
	return s.router
}

func applyConfigDefaults(cfg Config) Config {
	if cfg.Port == 0 {
		cfg.Port = 12300
	}
	if cfg.LLMBackend == "" {
		cfg.LLMBackend = "ollama"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./playground.db"
	}
	if cfg.AudioCachePath == "" {
		cfg.AudioCachePath = "./audio-cache"
	}
	return cfg
}

// initTracer sets up the OTLP trace exporter. The gRPC connection is
// insecure, appropriate for internal networks.
func (s *service) initTracer() (func(context.Context), error) {
	ctx := context.Background()

	conn, err := grpc.NewClient(s.config.OTelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("playground-service")))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))

	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	cleanup := func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}

	return cleanup, nil
}

func (s *service) initLLMClient() error {
	var err error

	switch s.config.LLMBackend {
	case "openai":
		s.llmClient, err = llm.NewOpenAIClient()
		slog.Info("Using OpenAI-compatible LLM backend")
	case "ollama":
		s.llmClient, err = llm.NewOllamaClient()
		slog.Info("Using Ollama LLM backend")
	default:
		slog.Warn("Unknown LLM backend, defaulting to ollama", "backend", s.config.LLMBackend)
		s.llmClient, err = llm.NewOllamaClient()
	}

	return err
}

func (s *service) initRouter() {
	s.router = gin.Default()
	s.router.Use(otelgin.Middleware("playground-service"))

	datatypes.RegisterValidators()

	var synth handlers.Synthesizer
	if s.synth != nil {
		synth = s.synth
	}
	var audioCache handlers.AudioCache
	if s.audioCache != nil {
		audioCache = s.audioCache
	}
	routes.SetupRoutes(s.router, s.llmClient, s.store, synth, audioCache)
}

func (s *service) cleanup() {
	if s.audioCache != nil {
		if err := s.audioCache.Close(); err != nil {
			slog.Warn("Audio cache close error", "error", err)
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			slog.Warn("Store close error", "error", err)
		}
	}
	if s.tracerCleanup != nil {
		s.tracerCleanup(context.Background())
	}
}

var _ Service = (*service)(nil)
