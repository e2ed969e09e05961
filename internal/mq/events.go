package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/inkwell-blog/apiserver/types"
)

// Comment lifecycle event types carried on the notification channel.
const (
	EventCommentCreated       = "comment.created"
	EventCommentStatusChanged = "comment.status_changed"
)

// CommentEvent is the payload published when a comment is created or
// moderated. The notification worker turns these into email.
type CommentEvent struct {
	Type       string              `json:"type"`
	CommentID  string              `json:"commentId"`
	PostID     string              `json:"postId"`
	AuthorID   string              `json:"authorId"`
	Status     types.CommentStatus `json:"status"`
	OccurredAt time.Time           `json:"occurredAt"`
}

// EventPublisher publishes comment events to a fixed channel. A nil
// publisher is valid and drops events, so callers need no branching
// when the broker is not configured.
type EventPublisher struct {
	mq      *MQ
	channel string
}

// NewEventPublisher wraps an MQ for comment event publishing. Returns
// nil when q is nil.
func NewEventPublisher(q *MQ, channel string) *EventPublisher {
	if q == nil {
		return nil
	}
	return &EventPublisher{mq: q, channel: channel}
}

// PublishCommentEvent serializes and publishes one event.
func (p *EventPublisher) PublishCommentEvent(ctx context.Context, event CommentEvent) error {
	if p == nil {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = p.mq.Publish(ctx, p.channel, data, map[string]string{"type": event.Type})
	return err
}
