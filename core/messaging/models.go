package messaging

import (
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/iljicevs/eduportal/core"
)

// Message is a direct message between two accounts. Deletion is soft
// and per-party: a message disappears from a mailbox without touching
// the other party's copy, and is purged only once both have deleted it.
type Message struct {
	ID            string    `db:"id" json:"id"`
	SenderID      string    `db:"sender_id" json:"sender_id" validate:"required,uuid4"`
	SenderName    string    `db:"sender_name" json:"sender_name"`
	RecipientID   string    `db:"recipient_id" json:"recipient_id" validate:"required,uuid4"`
	RecipientName string    `db:"recipient_name" json:"recipient_name"`
	Subject       string    `db:"subject" json:"subject" validate:"required,max=255"`
	Body          string    `db:"body" json:"body" validate:"required"`
	IsRead        bool      `db:"is_read" json:"is_read"`
	ReadAt        null.Time `db:"read_at" json:"read_at"`

	DeletedBySender    bool `db:"deleted_by_sender" json:"-"`
	DeletedByRecipient bool `db:"deleted_by_recipient" json:"-"`
	StarredBySender    bool `db:"starred_by_sender" json:"starred_by_sender"`
	StarredByRecipient bool `db:"starred_by_recipient" json:"starred_by_recipient"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (m *Message) Validate(v *validator.Validate) error {
	m.Subject = core.CleanString(m.Subject)
	m.Body = core.CleanString(m.Body)
	if err := v.Struct(m); err != nil {
		return err
	}
	if m.SenderID == m.RecipientID {
		return core.NewValidationError(
			errSelfMessage,
			core.FieldError{Field: "recipient_id", Error: "cannot message yourself"},
		)
	}
	return nil
}

// MarkRead stamps the message read. Idempotent: the first read time is
// kept.
func (m *Message) MarkRead(now time.Time) {
	if m.IsRead {
		return
	}
	m.IsRead = true
	m.ReadAt = null.TimeFrom(now.UTC())
}

// DeletedBy reports whether the given party has removed the message
// from their mailbox.
func (m Message) DeletedBy(userID string) bool {
	switch userID {
	case m.SenderID:
		return m.DeletedBySender
	case m.RecipientID:
		return m.DeletedByRecipient
	}
	return false
}

// StarredBy reports whether the given party has starred the message.
func (m Message) StarredBy(userID string) bool {
	switch userID {
	case m.SenderID:
		return m.StarredBySender
	case m.RecipientID:
		return m.StarredByRecipient
	}
	return false
}

// CompletelyDeleted reports whether both parties have removed the
// message and its row can be purged.
func (m Message) CompletelyDeleted() bool {
	return m.DeletedBySender && m.DeletedByRecipient
}
