package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/iljicevs/eduportal/core/messaging"
)

const messageColumns = `
	m.id, m.sender_id, m.recipient_id, m.subject, m.body, m.is_read, m.read_at,
	m.deleted_by_sender, m.deleted_by_recipient,
	m.starred_by_sender, m.starred_by_recipient, m.created_at,
	COALESCE(NULLIF(TRIM(s.last_name || ' ' || s.first_name), ''), s.username) AS sender_name,
	COALESCE(NULLIF(TRIM(r.last_name || ' ' || r.first_name), ''), r.username) AS recipient_name`

const messageJoins = `
	FROM message m
	JOIN app_user s ON s.id = m.sender_id
	JOIN app_user r ON r.id = m.recipient_id`

type messageRepository struct {
	db *sqlx.DB
}

var _ messaging.Repository = (*messageRepository)(nil)

func NewMessagingRepository(db *sqlx.DB) messaging.Repository {
	return &messageRepository{db: db}
}

func (repo *messageRepository) CreateMessage(ctx context.Context, m *messaging.Message) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO message (id, sender_id, recipient_id, subject, body, is_read,
			read_at, deleted_by_sender, deleted_by_recipient, starred_by_sender,
			starred_by_recipient, created_at)
		VALUES (:id, :sender_id, :recipient_id, :subject, :body, :is_read,
			:read_at, :deleted_by_sender, :deleted_by_recipient, :starred_by_sender,
			:starred_by_recipient, :created_at)`, m)
	return errors.Wrap(err, "inserting message")
}

func (repo *messageRepository) GetMessageByID(ctx context.Context, id string) (messaging.Message, error) {
	var m messaging.Message
	err := repo.db.GetContext(ctx, &m,
		`SELECT `+messageColumns+messageJoins+` WHERE m.id = $1`, id)
	if err == sql.ErrNoRows {
		return messaging.Message{}, messaging.ErrNotFound
	} else if err != nil {
		return messaging.Message{}, errors.Wrap(err, "getting message")
	}
	return m, nil
}

func (repo *messageRepository) Inbox(ctx context.Context, userID string) ([]messaging.Message, error) {
	var msgs []messaging.Message
	err := repo.db.SelectContext(ctx, &msgs, `
		SELECT `+messageColumns+messageJoins+`
		WHERE m.recipient_id = $1 AND NOT m.deleted_by_recipient
		ORDER BY m.created_at DESC`, userID)
	return msgs, errors.Wrap(err, "listing inbox")
}

func (repo *messageRepository) Sent(ctx context.Context, userID string) ([]messaging.Message, error) {
	var msgs []messaging.Message
	err := repo.db.SelectContext(ctx, &msgs, `
		SELECT `+messageColumns+messageJoins+`
		WHERE m.sender_id = $1 AND NOT m.deleted_by_sender
		ORDER BY m.created_at DESC`, userID)
	return msgs, errors.Wrap(err, "listing sent messages")
}

func (repo *messageRepository) UnreadCount(ctx context.Context, userID string) (int, error) {
	var n int
	err := repo.db.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM message
		WHERE recipient_id = $1 AND NOT deleted_by_recipient AND NOT is_read`, userID)
	return n, errors.Wrap(err, "counting unread messages")
}

func (repo *messageRepository) UpdateMessage(ctx context.Context, m *messaging.Message) error {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE message SET
			is_read = :is_read, read_at = :read_at,
			deleted_by_sender = :deleted_by_sender,
			deleted_by_recipient = :deleted_by_recipient,
			starred_by_sender = :starred_by_sender,
			starred_by_recipient = :starred_by_recipient
		WHERE id = :id`, m)
	if err != nil {
		return errors.Wrap(err, "updating message")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return messaging.ErrNotFound
	}
	return nil
}

func (repo *messageRepository) PurgeMessage(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM message WHERE id = $1`, id)
	return errors.Wrap(err, "purging message")
}
