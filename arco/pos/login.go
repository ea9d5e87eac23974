package pos

import (
	"context"
	"strings"

	"github.com/go-faster/errors"

	"github.com/arco365/go-arco-pos/arco"
	"github.com/arco365/go-arco-pos/arco/api"
	"github.com/arco365/go-arco-pos/arco/session"
)

// LoginForm carries the three credentials the ERP wants. All of them are
// required before anything goes over the wire.
type LoginForm struct {
	User        string
	Password    string
	CompanyName string
}

func (f LoginForm) Validate() error {
	if strings.TrimSpace(f.User) == "" {
		return errors.Wrap(arco.ErrValidation, "user is required")
	}
	if strings.TrimSpace(f.Password) == "" {
		return errors.Wrap(arco.ErrValidation, "password is required")
	}
	if strings.TrimSpace(f.CompanyName) == "" {
		return errors.Wrap(arco.ErrValidation, "company name is required")
	}
	return nil
}

// Login is the credential gate in front of the sale screen.
type Login struct {
	security api.SecurityService
	sessions *session.Store
	notifier Notifier
}

func NewLogin(security api.SecurityService, sessions *session.Store, notifier Notifier) *Login {
	return &Login{security: security, sessions: sessions, notifier: notifier}
}

// Submit validates the form, trades credentials for a token and persists
// the session. Any failure leaves the form with the caller for retry.
func (l *Login) Submit(ctx context.Context, form LoginForm) error {
	if err := form.Validate(); err != nil {
		l.notifier.Error("Complete todos los campos para iniciar sesión")
		return err
	}

	res, err := l.security.Login(ctx, form.User, form.Password, form.CompanyName)
	if err != nil {
		logger.Debugf("login failed: %v", err)
		l.notifier.Error("Error al iniciar sesión. Verifique sus credenciales.")
		return err
	}

	if _, err := l.sessions.Save(res.Token); err != nil {
		return err
	}

	l.notifier.Success("¡Inicio de sesión exitoso!")
	return nil
}
