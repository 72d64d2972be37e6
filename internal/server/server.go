// Package server exposes metrics and health endpoints over HTTP and gRPC and
// stops serving them gracefully on shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	log "go.uber.org/zap"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/yanet-platform/shutdown/internal/utils/runtimemetrics"
	"github.com/yanet-platform/shutdown/pkg/metrics"
	"github.com/yanet-platform/shutdown/pkg/shutdown"
)

// Server serves application metrics, runtime metrics and health status.
// Health turns to not serving as soon as shutdown begins.
type Server struct {
	config     *Config
	controller *shutdown.Controller

	grpcServer   *grpc.Server
	healthServer *health.Server
	httpServer   *http.Server

	// stopping is closed once the server observed shutdown.
	stopping chan struct{}

	logger *log.Logger
}

// New creates a new Server instance. Every HTTP request is tracked by a
// monitor subscribed from controller.
func New(config *Config, controller *shutdown.Controller, gatherer metrics.Gatherer, logger *log.Logger) *Server {
	logger = logger.With(log.String("component", "server"))

	gRPCServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(gRPCServer, healthServer)
	reflection.Register(gRPCServer)

	m := &Server{
		config:       config,
		controller:   controller,
		grpcServer:   gRPCServer,
		healthServer: healthServer,
		stopping:     make(chan struct{}),
		logger:       logger,
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", gatherer.GetHTTPHandler())
	mux.Handle("/metrics/runtime", runtimemetrics.NewHandler())
	mux.HandleFunc("/healthz", m.handleHealth)

	handler := requestIDMiddleware(logger)(mux)
	handler = drainMiddleware(controller)(handler)

	m.httpServer = &http.Server{
		Addr:    config.HTTPAddr,
		Handler: handler,
	}

	return m
}

// Handler returns the root HTTP handler, including middlewares.
func (m *Server) Handler() http.Handler {
	return m.httpServer.Handler
}

// Run serves HTTP and gRPC until monitor reports shutdown, then stops both
// servers gracefully. It returns the first serving error, if any.
func (m *Server) Run(monitor *shutdown.Monitor) error {
	httpListener, err := m.listen(m.config.HTTPAddr)
	if err != nil {
		return err
	}
	if m.config.MaxConnections > 0 {
		httpListener = netutil.LimitListener(httpListener, m.config.MaxConnections)
	}

	var grpcListener net.Listener
	if m.config.GRPCAddr != "" {
		if grpcListener, err = m.listen(m.config.GRPCAddr); err != nil {
			httpListener.Close()
			return err
		}
	}

	return m.Serve(monitor, httpListener, grpcListener)
}

// Serve is like Run but uses the given listeners. grpcListener may be nil.
func (m *Server) Serve(monitor *shutdown.Monitor, httpListener, grpcListener net.Listener) error {
	wg, ctx := errgroup.WithContext(context.Background())

	m.logger.Info("serving", log.Stringer("http_addr", httpListener.Addr()))
	wg.Go(func() error {
		if err := m.httpServer.Serve(httpListener); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	if grpcListener != nil {
		m.logger.Info("serving", log.Stringer("grpc_addr", grpcListener.Addr()))
		wg.Go(func() error {
			err := m.grpcServer.Serve(grpcListener)
			if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("grpc server failed: %w", err)
			}
			return nil
		})
	}

	wg.Go(func() error {
		select {
		case <-monitor.Done():
			monitor.Recv()
		case <-ctx.Done():
			// One of the servers failed; stop the other one as well.
		}
		m.stop()
		return nil
	})

	return wg.Wait()
}

func (m *Server) stop() {
	close(m.stopping)
	m.healthServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), m.config.GetStopTimeout())
	defer cancel()

	if err := m.httpServer.Shutdown(ctx); err != nil {
		m.logger.Warn("failed to stop http server gracefully", log.Error(err))
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		m.grpcServer.GracefulStop()
	}()
	select {
	case <-stopped:
	case <-ctx.Done():
		m.grpcServer.Stop()
		<-stopped
	}

	m.logger.Info("server stopped")
}

func (m *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	select {
	case <-m.stopping:
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
	default:
		_, _ = w.Write([]byte("ok\n"))
	}
}

func (m *Server) listen(addr string) (net.Listener, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create listener on %q: %w", addr, err)
	}
	return listener, nil
}
