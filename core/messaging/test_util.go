package messaging

import (
	"context"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/iljicevs/eduportal/core"
)

type serviceMock struct {
	service
}

// NewServiceMock returns a Service whose notification mail is sent
// synchronously so tests can assert on the outbox.
func NewServiceMock(repo Repository, mailSvc core.EmailService, conf *core.Config) Service {
	return &serviceMock{
		service: service{
			repo:    repo,
			mailSvc: mailSvc,
			logger:  core.NopLogger{},
			conf:    conf,
		},
	}
}

func (svc *serviceMock) Compose(ctx context.Context, v *validator.Validate, m Message, recipientEmail string) (Message, error) {
	if err := m.Validate(v); err != nil {
		return Message{}, err
	}
	m.CreatedAt = time.Now().UTC()
	if err := svc.repo.CreateMessage(ctx, &m); err != nil {
		return Message{}, errors.Wrap(err, "creating message")
	}
	// run synchronously
	svc.sendNotificationMail(m, recipientEmail)
	return m, nil
}
