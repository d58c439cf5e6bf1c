package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const SHUTDOWN_TIMEOUT = 2 * time.Second

// NewRegistry creates a registry with the Go and process collectors attached.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// LinkMetrics counts traffic on the serial link. A nil *LinkMetrics is valid
// and records nothing.
type LinkMetrics struct {
	FramesSent    *prometheus.CounterVec // labels: command
	SendErrors    *prometheus.CounterVec // labels: command
	BytesSent     prometheus.Counter
	BytesReceived prometheus.Counter
}

func NewLinkMetrics(reg prometheus.Registerer) *LinkMetrics {
	m := &LinkMetrics{
		FramesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "turret_frames_sent_total",
			Help: "Command frames written to the serial link.",
		}, []string{"command"}),
		SendErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "turret_send_errors_total",
			Help: "Command frames that could not be encoded or written.",
		}, []string{"command"}),
		BytesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "turret_bytes_sent_total",
			Help: "Bytes written to the serial link.",
		}),
		BytesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "turret_bytes_received_total",
			Help: "Response bytes drained from the serial link.",
		}),
	}
	reg.MustRegister(m.FramesSent, m.SendErrors, m.BytesSent, m.BytesReceived)
	return m
}

func (m *LinkMetrics) ObserveSent(command string, n int) {
	if m == nil {
		return
	}
	m.FramesSent.WithLabelValues(command).Inc()
	m.BytesSent.Add(float64(n))
}

func (m *LinkMetrics) ObserveReceived(n int) {
	if m == nil {
		return
	}
	m.BytesReceived.Add(float64(n))
}

func (m *LinkMetrics) ObserveError(command string) {
	if m == nil {
		return
	}
	m.SendErrors.WithLabelValues(command).Inc()
}

// Serve exposes reg on addr under /metrics until ctx is cancelled.
func Serve(ctx context.Context, addr string, reg *prometheus.Registry, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Error shutting down metrics listener", zap.Error(err))
		}
	}()

	logger.Info("Serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
