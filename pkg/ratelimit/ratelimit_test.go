package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareBlocksAfterLimit(t *testing.T) {
	l, err := New("2-M", nil)
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/login", Middleware(l, zerolog.Nop()), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	app.Post("/register", Middleware(l, zerolog.Nop()), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
		if i == 0 {
			assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
			assert.Equal(t, "1", resp.Header.Get("X-RateLimit-Remaining"))
		}
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/register", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "routes are counted separately")
}

func TestDisabled(t *testing.T) {
	l, err := New("", nil)
	require.NoError(t, err)
	assert.Nil(t, l)

	app := fiber.New()
	app.Get("/", Middleware(nil, zerolog.Nop()), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })
	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}
}

func TestBadRate(t *testing.T) {
	_, err := New("lots", nil)
	assert.Error(t, err)
}
