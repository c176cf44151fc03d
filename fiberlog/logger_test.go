package fiberlog

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestApp(buf *bytes.Buffer) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	app := fiber.New()
	app.Use(New(Config{
		Logger: logger,
		Tags:   []string{TagStatus, TagMethod, TagPath, TagQuery, TagResBody},
		Skip: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/public")
		},
	}))
	app.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "caído")
	})
	app.Get("/pagina", func(c *fiber.Ctx) error {
		c.Type("html")
		return c.SendString("<h1>Ofertas</h1>")
	})
	app.Get("/public/app.js", func(c *fiber.Ctx) error {
		return c.SendString("js")
	})
	return app
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	entry := map[string]interface{}{}
	require.Nil(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestLogger(t *testing.T) {
	t.Run(`api request check`, func(t *testing.T) {
		buf := &bytes.Buffer{}
		app := newTestApp(buf)
		resp, err := app.Test(httptest.NewRequest("GET", "/api/ping?x=1", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		entry := lastEntry(t, buf)
		require.Equal(t, "info", entry["level"])
		require.Equal(t, "petición api", entry["msg"])
		require.Equal(t, "GET", entry[TagMethod])
		require.Equal(t, "/api/ping", entry[TagPath])
		require.Equal(t, "x=1", entry[TagQuery])
		require.Equal(t, float64(200), entry[TagStatus])
		require.Equal(t, `{"ok":true}`, entry[TagResBody])
	})

	t.Run(`handler error logged with final status check`, func(t *testing.T) {
		buf := &bytes.Buffer{}
		app := newTestApp(buf)
		resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

		entry := lastEntry(t, buf)
		require.Equal(t, "error", entry["level"])
		require.Equal(t, float64(fiber.StatusServiceUnavailable), entry[TagStatus])
	})

	t.Run(`not found is a warning check`, func(t *testing.T) {
		buf := &bytes.Buffer{}
		app := newTestApp(buf)
		resp, err := app.Test(httptest.NewRequest("GET", "/nada", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		require.Equal(t, "warning", lastEntry(t, buf)["level"])
	})

	t.Run(`html body not logged check`, func(t *testing.T) {
		buf := &bytes.Buffer{}
		app := newTestApp(buf)
		resp, err := app.Test(httptest.NewRequest("GET", "/pagina", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		entry := lastEntry(t, buf)
		require.Equal(t, "petición web", entry["msg"])
		require.Equal(t, "", entry[TagResBody])
	})

	t.Run(`skipped request check`, func(t *testing.T) {
		buf := &bytes.Buffer{}
		app := newTestApp(buf)
		_, err := app.Test(httptest.NewRequest("GET", "/public/app.js", nil))
		require.Nil(t, err)
		require.Equal(t, 0, buf.Len())
	})
}
