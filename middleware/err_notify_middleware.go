package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

var notifyClient = &http.Client{Timeout: 5 * time.Second}

type errNotification struct {
	Code      int    `json:"code"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	RequestID string `json:"request_id,omitempty"`
	Error     string `json:"error"`
}

// ErrNotify envía a addr un aviso por cada respuesta 5xx.
func ErrNotify(addr string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}
		statusCode := c.Response().StatusCode()
		if statusCode < http.StatusInternalServerError {
			return err
		}

		var data struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}
		body := c.Response().Body()
		if unmErr := json.Unmarshal(body, &data); unmErr != nil {
			log.WithError(unmErr).Debug("la respuesta no es json, se envía el cuerpo tal cual")
		}
		msg := data.Message
		if msg == "" {
			msg = string(body)
		}
		path := c.OriginalURL()
		if r := c.Route(); r != nil {
			path = r.Path
		}
		notification := errNotification{
			Code:      statusCode,
			Method:    c.Method(),
			Path:      path,
			RequestID: GetRequestID(c),
			Error:     msg,
		}

		go sendNotification(addr, notification)
		return err
	}
}

func sendNotification(addr string, notification errNotification) {
	payload, err := json.Marshal(notification)
	if err != nil {
		log.WithError(err).Warn("error preparando el aviso de error")
		return
	}
	resp, err := notifyClient.Post(addr, fiber.MIMEApplicationJSON, bytes.NewReader(payload))
	if err != nil {
		log.WithError(err).Warn("error enviando el aviso de error")
		return
	}
	_ = resp.Body.Close()
}
