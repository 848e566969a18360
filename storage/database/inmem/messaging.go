package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/iljicevs/eduportal/core/messaging"
)

type messagingRepository struct {
	db *DB
}

var _ messaging.Repository = (*messagingRepository)(nil)

func NewMessagingRepository(db *DB) messaging.Repository {
	return &messagingRepository{db: db}
}

func (repo *messagingRepository) CreateMessage(ctx context.Context, m *messaging.Message) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.CreatedAt = time.Now().UTC()
	cp := *m
	repo.db.messages[m.ID] = &cp
	return nil
}

func (repo *messagingRepository) GetMessageByID(ctx context.Context, id string) (messaging.Message, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if m, ok := repo.db.messages[id]; ok {
		return *m, nil
	}
	return messaging.Message{}, messaging.ErrNotFound
}

func (repo *messagingRepository) Inbox(ctx context.Context, userID string) ([]messaging.Message, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var msgs []messaging.Message
	for _, m := range repo.db.messages {
		if m.RecipientID == userID && !m.DeletedByRecipient {
			msgs = append(msgs, *m)
		}
	}
	sortNewestFirst(msgs)
	return msgs, nil
}

func (repo *messagingRepository) Sent(ctx context.Context, userID string) ([]messaging.Message, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var msgs []messaging.Message
	for _, m := range repo.db.messages {
		if m.SenderID == userID && !m.DeletedBySender {
			msgs = append(msgs, *m)
		}
	}
	sortNewestFirst(msgs)
	return msgs, nil
}

func (repo *messagingRepository) UnreadCount(ctx context.Context, userID string) (int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	count := 0
	for _, m := range repo.db.messages {
		if m.RecipientID == userID && !m.DeletedByRecipient && !m.IsRead {
			count++
		}
	}
	return count, nil
}

func (repo *messagingRepository) UpdateMessage(ctx context.Context, m *messaging.Message) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.messages[m.ID]; !ok {
		return messaging.ErrNotFound
	}
	cp := *m
	repo.db.messages[m.ID] = &cp
	return nil
}

func (repo *messagingRepository) PurgeMessage(ctx context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	delete(repo.db.messages, id)
	return nil
}

func sortNewestFirst(msgs []messaging.Message) {
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].CreatedAt.After(msgs[j].CreatedAt) })
}
