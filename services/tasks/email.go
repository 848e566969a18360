package tasksvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/mail"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"

	"github.com/iljicevs/eduportal/core"
)

// TypeEmailDeliver is the task type of a rendered email awaiting
// delivery.
const TypeEmailDeliver = "email:deliver"

type (
	emailAttachment struct {
		Filename    string `json:"filename"`
		ContentType string `json:"content_type"`
		Content     string `json:"content"` // base64, as produced by EmailMessage.Attach
	}

	// emailPayload is the wire form of a rendered email. Rendering
	// happens before enqueue so the worker does not need the template
	// cache.
	emailPayload struct {
		To          []mail.Address    `json:"to"`
		Cc          []mail.Address    `json:"cc,omitempty"`
		Bcc         []mail.Address    `json:"bcc,omitempty"`
		Subject     string            `json:"subject"`
		TextContent string            `json:"text_content"`
		HTMLContent string            `json:"html_content"`
		Attachments []emailAttachment `json:"attachments,omitempty"`
	}
)

// RedisOpt builds the asynq connection options from app config.
func RedisOpt(conf *core.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	}
}

func newEmailTask(msg core.EmailMessage) (*asynq.Task, error) {
	p := emailPayload{
		To:          msg.To,
		Cc:          msg.Cc,
		Bcc:         msg.Bcc,
		Subject:     msg.Subject,
		TextContent: msg.TextContent,
		HTMLContent: msg.HTMLContent,
	}
	for _, at := range msg.Attachments {
		p.Attachments = append(p.Attachments, emailAttachment{
			Filename:    at.Filename,
			ContentType: at.ContentType,
			Content:     at.Content.String(),
		})
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling email payload")
	}
	return asynq.NewTask(TypeEmailDeliver, b), nil
}

func (p emailPayload) message() *core.EmailMessage {
	msg := &core.EmailMessage{
		To:      p.To,
		Cc:      p.Cc,
		Bcc:     p.Bcc,
		Subject: p.Subject,
		// BodyStr keeps the text content stable across the delivery
		// service's own Render call; HTML is already final.
		BodyStr:     p.TextContent,
		HTMLContent: p.HTMLContent,
	}
	for _, at := range p.Attachments {
		msg.Attachments = append(msg.Attachments, core.Attachment{
			Filename:    at.Filename,
			ContentType: at.ContentType,
			Content:     bytes.NewBufferString(at.Content),
		})
	}
	return msg
}

// queueService is a core.EmailService that renders messages and hands
// them to the task queue instead of delivering inline. The web app
// uses it so requests never wait on SMTP round-trips.
type queueService struct {
	conf   *core.Config
	client *asynq.Client
	logger core.Logger
}

var _ core.EmailService = (*queueService)(nil)

func NewQueueService(conf *core.Config, logger core.Logger) *queueService {
	return &queueService{
		conf:   conf,
		client: asynq.NewClient(RedisOpt(conf)),
		logger: logger,
	}
}

func (svc *queueService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		msg := msg
		go func() {
			if err := msg.Render(svc.conf); err != nil {
				svc.logger.Error(fmt.Sprintf("rendering email: %v", err), err)
				return
			}
			if !msg.HasRecipients() || !(msg.HasContent() || msg.HasAttachments()) {
				return
			}
			task, err := newEmailTask(*msg)
			if err != nil {
				svc.logger.Error(fmt.Sprintf("building email task: %v", err), err)
				return
			}
			if _, err := svc.client.Enqueue(task, asynq.MaxRetry(5)); err != nil {
				svc.logger.Error(fmt.Sprintf("enqueuing email: %v", err), err)
			}
		}()
	}
}

func (svc *queueService) Close() error { return svc.client.Close() }

// NewEmailHandler returns the worker-side handler that delivers queued
// emails through the given delivery service (sendgrid in deployments,
// console in development).
func NewEmailHandler(deliver core.EmailService, logger core.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p emailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error(fmt.Sprintf("invalid email payload: %v", err), err)
			return errors.Wrap(err, "unmarshaling email payload")
		}
		deliver.SendMessages(p.message())
		return nil
	}
}
