package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/inkwell-blog/apiserver/internal/mq"
	"github.com/inkwell-blog/apiserver/internal/services"
)

// Worker consumes comment events and turns them into notification mail.
// New pending comments go to the admin inbox; moderation decisions go
// to the comment's author.
type Worker struct {
	mailer     *Mailer
	users      services.UserRepository
	adminEmail string
}

func NewWorker(mailer *Mailer, users services.UserRepository, adminEmail string) *Worker {
	return &Worker{
		mailer:     mailer,
		users:      users,
		adminEmail: adminEmail,
	}
}

// Run subscribes to the notification channel and blocks until the
// context is canceled or the subscription fails.
func (w *Worker) Run(ctx context.Context, q *mq.MQ, channel string) error {
	return q.Subscribe(ctx, channel, w.handle)
}

func (w *Worker) handle(ctx context.Context, msg mq.Message) error {
	var event mq.CommentEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		// A malformed payload will never parse; drop it instead of
		// redelivering forever.
		slog.Error("dropping malformed comment event", "message_id", msg.ID, "error", err)
		return nil
	}

	switch event.Type {
	case mq.EventCommentCreated:
		return w.notifyAdmin(event)
	case mq.EventCommentStatusChanged:
		return w.notifyAuthor(ctx, event)
	default:
		slog.Warn("ignoring unknown comment event", "type", event.Type, "message_id", msg.ID)
		return nil
	}
}

func (w *Worker) notifyAdmin(event mq.CommentEvent) error {
	if strings.TrimSpace(w.adminEmail) == "" {
		return nil
	}
	subject := "New comment awaiting moderation"
	body := fmt.Sprintf(
		"A new comment %s was posted on post %s and is waiting for review.",
		event.CommentID, event.PostID)
	return w.mailer.Send(w.adminEmail, subject, body)
}

func (w *Worker) notifyAuthor(ctx context.Context, event mq.CommentEvent) error {
	author, err := w.users.GetByID(ctx, event.AuthorID)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Your comment was %s", strings.ToLower(string(event.Status)))
	body := fmt.Sprintf(
		"Hi %s,\n\nyour comment %s on post %s is now %s.",
		author.Name, event.CommentID, event.PostID, strings.ToLower(string(event.Status)))
	return w.mailer.Send(author.Email, subject, body)
}
