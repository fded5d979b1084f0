package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystalices/backend/pkg/mail"
)

type stubSender struct{ err error }

func (s stubSender) Send(context.Context, mail.Message) error { return s.err }

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/equipment/all", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	app.Get("/metrics", m.Handler())

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/equipment/all", nil), -1)
	require.NoError(t, err)
	m.AuthEvent("login", false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `crystal_http_request_duration_seconds_count{method="GET",route="/api/equipment/all",status="200"} 1`)
	assert.Contains(t, string(body), `crystal_auth_events_total{event="login",success="false"} 1`)
}

func TestInstrumentSender(t *testing.T) {
	m := New()
	ok := m.InstrumentSender(stubSender{})
	bad := m.InstrumentSender(stubSender{err: errors.New("boom")})
	msg := mail.Message{To: []string{"a@x.io"}, Subject: "s"}

	require.NoError(t, ok.Send(context.Background(), msg))
	require.Error(t, bad.Send(context.Background(), msg))
	require.Error(t, bad.Send(context.Background(), msg))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.emails.WithLabelValues("sent")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.emails.WithLabelValues("failed")))
}
