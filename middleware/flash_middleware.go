package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	FlashSuccessKey = "success_msg"
	FlashErrorKey   = "error_msg"
)

// Flash mensajes de un solo uso guardados en la sesión hasta la siguiente página.
type Flash struct {
	store *session.Store
}

func NewFlash(store *session.Store) *Flash {
	return &Flash{store: store}
}

// Handler pasa los mensajes pendientes a c.Locals y los borra de la sesión.
func (f *Flash) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := f.store.Get(c)
		if err != nil {
			log.WithError(err).Warn("no se pudo leer la sesión")
			return c.Next()
		}
		found := false
		for _, key := range []string{FlashSuccessKey, FlashErrorKey} {
			if msg, ok := sess.Get(key).(string); ok && msg != "" {
				c.Locals(key, msg)
				sess.Delete(key)
				found = true
			}
		}
		if found {
			if err = sess.Save(); err != nil {
				log.WithError(err).Warn("no se pudo guardar la sesión")
			}
		}
		return c.Next()
	}
}

func (f *Flash) Success(c *fiber.Ctx, msg string) error {
	return f.set(c, FlashSuccessKey, msg)
}

func (f *Flash) Error(c *fiber.Ctx, msg string) error {
	return f.set(c, FlashErrorKey, msg)
}

func (f *Flash) set(c *fiber.Ctx, key, msg string) error {
	sess, err := f.store.Get(c)
	if err != nil {
		return errors.Wrap(err, "no se pudo leer la sesión")
	}
	sess.Set(key, msg)
	if err = sess.Save(); err != nil {
		return errors.Wrap(err, "no se pudo guardar la sesión")
	}
	return nil
}

// GetFlash mensajes recibidos en esta petición.
func GetFlash(c *fiber.Ctx) (success, errMsg string) {
	success, _ = c.Locals(FlashSuccessKey).(string)
	errMsg, _ = c.Locals(FlashErrorKey).(string)
	return success, errMsg
}
