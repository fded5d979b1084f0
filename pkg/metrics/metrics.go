// Package metrics exposes Prometheus instrumentation for the HTTP API and mailer.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crystalices/backend/pkg/mail"
)

type Metrics struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	authEvents      *prometheus.CounterVec
	emails          *prometheus.CounterVec
}

// New registers the collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crystal_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crystal_auth_events_total",
			Help: "Account lifecycle events by outcome",
		}, []string{"event", "success"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crystal_emails_total",
			Help: "Outbound emails handed to the mail sender",
		}, []string{"result"}),
	}
	reg.MustRegister(
		m.requestDuration,
		m.authEvents,
		m.emails,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware records request latency labelled by route pattern, not raw path.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.requestDuration.
			WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// AuthEvent counts register/login/verify outcomes.
func (m *Metrics) AuthEvent(event string, success bool) {
	m.authEvents.WithLabelValues(event, strconv.FormatBool(success)).Inc()
}

// InstrumentSender counts sends and failures of the wrapped sender.
func (m *Metrics) InstrumentSender(next mail.Sender) mail.Sender {
	return &countingSender{next: next, emails: m.emails}
}

type countingSender struct {
	next   mail.Sender
	emails *prometheus.CounterVec
}

func (s *countingSender) Send(ctx context.Context, msg mail.Message) error {
	err := s.next.Send(ctx, msg)
	if err != nil {
		s.emails.WithLabelValues("failed").Inc()
		return err
	}
	s.emails.WithLabelValues("sent").Inc()
	return nil
}
