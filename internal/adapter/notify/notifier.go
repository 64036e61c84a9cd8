// Package notify delivers user notifications over Redis pub/sub.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arturoeanton/health-planner/internal/domain"
)

// Notifier publishes notifications to per-user Redis channels. Without a
// Redis client it only logs and reports the stub status.
type Notifier struct {
	rdb *redis.Client
	now func() time.Time
}

// NewNotifier creates a Notifier. rdb may be nil.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb, now: time.Now}
}

// UserChannel returns the pub/sub channel of a user.
func UserChannel(userID string) string {
	return "notifications:" + userID
}

// Notify publishes message to the user's channel.
func (n *Notifier) Notify(ctx context.Context, userID, message string) (*domain.Notification, error) {
	note := &domain.Notification{
		UserID:  userID,
		Message: message,
		Status:  domain.NotificationSentStub,
		SentAt:  n.now().UTC(),
	}

	if n.rdb == nil {
		slog.Info("Notification (stub)", "user_id", userID, "message", message)
		return note, nil
	}

	note.Status = domain.NotificationSent
	payload, err := json.Marshal(note)
	if err != nil {
		return nil, fmt.Errorf("marshal notification: %w", err)
	}
	if err := n.rdb.Publish(ctx, UserChannel(userID), payload).Err(); err != nil {
		return nil, fmt.Errorf("publish notification: %w", err)
	}
	return note, nil
}
