package bus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/Shot-your-pet/publications-groupe9/internal/domains/post/model"
)

// publishConn is the slice of *nats.Conn the publisher needs; it exists so
// tests can capture outgoing messages.
type publishConn interface {
	PublishMsg(msg *nats.Msg) error
}

// Publisher announces publication events on the timeline subject. Every
// call is synchronous and fallible; there is no acknowledgment or retry
// contract beyond the call returning an error.
type Publisher struct {
	conn    publishConn
	subject string
}

func NewPublisher(conn *nats.Conn, subject string) *Publisher {
	return &Publisher{conn: conn, subject: subject}
}

// PublishPostCreated sends the new-publication event for a stored post.
func (p *Publisher) PublishPostCreated(_ context.Context, post *model.Post) error {
	event := NewPostPublicationEvent(post)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal publication event: %w", err)
	}

	msg := &nats.Msg{
		Subject: p.subject,
		Data:    data,
	}

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish on %s: %w", p.subject, err)
	}

	log.Debug().
		Str("subject", p.subject).
		Int64("post_id", post.ID).
		Msg("Publication event sent")

	return nil
}
