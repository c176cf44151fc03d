package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/require"
)

func TestFlash(t *testing.T) {
	flash := NewFlash(session.New())
	app := fiber.New()
	app.Use(flash.Handler())
	app.Post("/set", func(c *fiber.Ctx) error {
		if err := flash.Success(c, "Oferta creada"); err != nil {
			return err
		}
		return c.Redirect("/show")
	})
	app.Get("/show", func(c *fiber.Ctx) error {
		success, errMsg := GetFlash(c)
		return c.SendString(success + "|" + errMsg)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/set", nil))
	require.Nil(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	show := func() string {
		req := httptest.NewRequest(http.MethodGet, "/show", nil)
		for _, cookie := range cookies {
			req.AddCookie(cookie)
		}
		resp, err := app.Test(req)
		require.Nil(t, err)
		body, err := io.ReadAll(resp.Body)
		require.Nil(t, err)
		return string(body)
	}

	t.Run(`message shown once check`, func(t *testing.T) {
		require.Equal(t, "Oferta creada|", show())
		require.Equal(t, "|", show())
	})
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetRequestID(c))
	})

	t.Run(`generated check`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.Nil(t, err)
		body, _ := io.ReadAll(resp.Body)
		require.Len(t, string(body), 36)
		require.Equal(t, string(body), resp.Header.Get(fiber.HeaderXRequestID))
	})

	t.Run(`propagated check`, func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(fiber.HeaderXRequestID, "abc")
		resp, err := app.Test(req)
		require.Nil(t, err)
		body, _ := io.ReadAll(resp.Body)
		require.Equal(t, "abc", string(body))
	})
}

func TestErrNotify(t *testing.T) {
	received := make(chan errNotification, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var notification errNotification
		_ = json.NewDecoder(r.Body).Decode(&notification)
		received <- notification
	}))
	defer server.Close()

	app := fiber.New()
	app.Use(ErrNotify(server.URL))
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/fail/:id", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "message": "error leyendo las ofertas"})
	})

	t.Run(`success not notified check`, func(t *testing.T) {
		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
		require.Nil(t, err)
		select {
		case <-received:
			t.Fatal("unexpected notification")
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run(`5xx notified check`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail/1", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		select {
		case notification := <-received:
			require.Equal(t, fiber.StatusInternalServerError, notification.Code)
			require.Equal(t, "/fail/:id", notification.Path)
			require.Equal(t, "error leyendo las ofertas", notification.Error)
		case <-time.After(2 * time.Second):
			t.Fatal("notification not received")
		}
	})
}
