package messaging

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/iljicevs/eduportal/core"
)

var (
	ErrNotFound    = errors.New("message not found")
	ErrNotAParty   = errors.New("not a party to this message")
	errSelfMessage = errors.New("sender and recipient are the same account")
)

type (
	Repository interface {
		CreateMessage(ctx context.Context, m *Message) error
		GetMessageByID(ctx context.Context, id string) (Message, error)
		// Inbox and Sent exclude messages the viewer has soft-deleted,
		// newest first.
		Inbox(ctx context.Context, userID string) ([]Message, error)
		Sent(ctx context.Context, userID string) ([]Message, error)
		UnreadCount(ctx context.Context, userID string) (int, error)
		UpdateMessage(ctx context.Context, m *Message) error
		PurgeMessage(ctx context.Context, id string) error
	}

	Service interface {
		Compose(ctx context.Context, v *validator.Validate, m Message, recipientEmail string) (Message, error)
		Inbox(ctx context.Context, userID string) ([]Message, error)
		Sent(ctx context.Context, userID string) ([]Message, error)
		UnreadCount(ctx context.Context, userID string) (int, error)
		// Read returns the message and marks it read when the viewer
		// is the recipient.
		Read(ctx context.Context, viewerID, messageID string) (Message, error)
		SetStarred(ctx context.Context, viewerID, messageID string, starred bool) error
		Delete(ctx context.Context, viewerID, messageID string) error
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
		logger  core.Logger
		conf    *core.Config
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, logger core.Logger, conf *core.Config) Service {
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
		logger:  logger,
		conf:    conf,
	}
}

// Compose validates and stores a new message, then queues a
// notification email to the recipient. Notification failures do not
// fail the send.
func (s *service) Compose(ctx context.Context, v *validator.Validate, m Message, recipientEmail string) (Message, error) {
	if err := m.Validate(v); err != nil {
		return Message{}, err
	}
	m.CreatedAt = time.Now().UTC()
	if err := s.repo.CreateMessage(ctx, &m); err != nil {
		return Message{}, errors.Wrap(err, "creating message")
	}
	go s.sendNotificationMail(m, recipientEmail)
	return m, nil
}

func (s *service) sendNotificationMail(m Message, recipientEmail string) {
	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: m.RecipientName, Address: recipientEmail}},
		Subject:      fmt.Sprintf("New message from %s", m.SenderName),
		TemplateName: "new_message",
		TemplateData: m,
	}
	if err := msg.Render(s.conf); err != nil {
		s.logger.Error("rendering message notification", err)
		return
	}
	s.mailSvc.SendMessages(msg)
}

func (s *service) Inbox(ctx context.Context, userID string) ([]Message, error) {
	msgs, err := s.repo.Inbox(ctx, userID)
	return msgs, errors.Wrap(err, "listing inbox")
}

func (s *service) Sent(ctx context.Context, userID string) ([]Message, error) {
	msgs, err := s.repo.Sent(ctx, userID)
	return msgs, errors.Wrap(err, "listing sent messages")
}

func (s *service) UnreadCount(ctx context.Context, userID string) (int, error) {
	n, err := s.repo.UnreadCount(ctx, userID)
	return n, errors.Wrap(err, "counting unread messages")
}

func (s *service) Read(ctx context.Context, viewerID, messageID string) (Message, error) {
	m, err := s.load(ctx, viewerID, messageID)
	if err != nil {
		return Message{}, err
	}
	if viewerID == m.RecipientID && !m.IsRead {
		m.MarkRead(time.Now())
		if err := s.repo.UpdateMessage(ctx, &m); err != nil {
			return Message{}, errors.Wrap(err, "marking message read")
		}
	}
	return m, nil
}

func (s *service) SetStarred(ctx context.Context, viewerID, messageID string, starred bool) error {
	m, err := s.load(ctx, viewerID, messageID)
	if err != nil {
		return err
	}
	switch viewerID {
	case m.SenderID:
		m.StarredBySender = starred
	case m.RecipientID:
		m.StarredByRecipient = starred
	}
	return errors.Wrap(s.repo.UpdateMessage(ctx, &m), "updating star flag")
}

// Delete soft-deletes the viewer's copy; once both parties have
// deleted, the row is purged.
func (s *service) Delete(ctx context.Context, viewerID, messageID string) error {
	m, err := s.load(ctx, viewerID, messageID)
	if err != nil {
		return err
	}
	switch viewerID {
	case m.SenderID:
		m.DeletedBySender = true
	case m.RecipientID:
		m.DeletedByRecipient = true
	}
	if m.CompletelyDeleted() {
		return errors.Wrap(s.repo.PurgeMessage(ctx, m.ID), "purging message")
	}
	return errors.Wrap(s.repo.UpdateMessage(ctx, &m), "soft-deleting message")
}

// load fetches a message and enforces that the viewer is a party to it
// and has not already deleted their copy.
func (s *service) load(ctx context.Context, viewerID, messageID string) (Message, error) {
	m, err := s.repo.GetMessageByID(ctx, messageID)
	if err != nil {
		return Message{}, err
	}
	if viewerID != m.SenderID && viewerID != m.RecipientID {
		return Message{}, ErrNotAParty
	}
	if m.DeletedBy(viewerID) {
		return Message{}, ErrNotFound
	}
	return m, nil
}
