// main is the entry point of the students gRPC service.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the record store (memory by default, or SQLite)
//  4. Build the request handler and the gRPC server
//  5. Start the gRPC listener and, if configured, the HTTP gateway
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/students-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/students-api
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aanand-mishra/students-grpc/internal/config"
	"github.com/aanand-mishra/students-grpc/internal/http/handlers/student"
	"github.com/aanand-mishra/students-grpc/internal/rpc"
	"github.com/aanand-mishra/students-grpc/internal/service"
	"github.com/aanand-mishra/students-grpc/internal/storage"
	"github.com/aanand-mishra/students-grpc/internal/storage/memory"
	"github.com/aanand-mishra/students-grpc/internal/storage/sqlite"
	"github.com/aanand-mishra/students-grpc/internal/utils/response"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting students-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	store, closeStore, err := openStorage(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore.Close()

	log.Info("storage initialised", slog.String("driver", cfg.Storage.Driver))

	prometheus.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "students_store_records",
		Help: "Number of student records currently stored.",
	}, func() float64 {
		n, err := store.Count(context.Background())
		if err != nil {
			return 0
		}
		return float64(n)
	}))

	// ── 4. Build the request handler and gRPC server ──────────────────────
	students := service.New(store, service.Options{
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		MaxPageSize:     cfg.Pagination.MaxPageSize,
	})
	grpcServer := rpc.NewGRPCServer(students, cfg.GRPCServer, log)

	// ── 5. Start listeners ────────────────────────────────────────────────
	lis, err := net.Listen("tcp", cfg.GRPCServer.Addr)
	if err != nil {
		log.Error("failed to listen", slog.String("address", cfg.GRPCServer.Addr),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	go func() {
		log.Info("grpc server started", slog.String("address", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil {
			log.Error("grpc server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	var httpServer *http.Server
	if cfg.HTTPServer.Addr != "" {
		httpServer = newHTTPServer(cfg.HTTPServer.Addr, students)
		go func() {
			log.Info("http gateway started", slog.String("address", cfg.HTTPServer.Addr))
			if err := httpServer.ListenAndServe(); err != nil &&
				!errors.Is(err, http.ErrServerClosed) {
				log.Error("http gateway encountered an error",
					slog.String("error", err.Error()))
				os.Exit(1)
			}
		}()
	}

	// ── 6. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping servers...")

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if httpServer != nil {
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Error("failed to shutdown http gateway gracefully",
				slog.String("error", err.Error()))
		}
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-ctx.Done():
		log.Warn("graceful stop timed out, forcing")
		grpcServer.Stop()
	}

	log.Info("server stopped gracefully")
}

// openStorage returns the store selected by cfg.Storage.Driver and a
// closer for it.
func openStorage(cfg *config.Config) (storage.Storage, io.Closer, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.New(), closerFunc(func() error { return nil }), nil
	case config.DriverSQLite:
		s, err := sqlite.New(cfg)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// newHTTPServer wires the JSON gateway, /metrics and /healthz.
func newHTTPServer(addr string, students *service.Students) *http.Server {
	router := http.NewServeMux()
	student.Register(router, students)
	router.Handle("GET /metrics", promhttp.Handler())
	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.WriteJSON(w, http.StatusOK, response.OK())
	})

	return &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
