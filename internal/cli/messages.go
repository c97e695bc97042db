package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"libmatch/internal/models"
)

func (a *App) Send(ctx context.Context, matchID string) error {
	userID, ok := a.sessions.CurrentUserID(ctx)
	if !ok {
		printlnFn("Not logged in")
		return nil
	}

	content, err := GetSimpleText(a.reader, "Message", outWriter)
	if err != nil {
		return err
	}

	message := models.Message{
		ID:        uuid.NewString(),
		MatchID:   matchID,
		SenderID:  userID,
		Content:   content,
		Timestamp: time.Now(),
	}

	// Best effort remote write; the local collection is the source of truth
	// for this device either way.
	if _, err := a.remote.CreateMessage(ctx, matchID, userID, content); err != nil {
		a.log.Debug(ctx, "remote message write skipped", "error", err)
	}

	if err := a.store.Messages.Append(ctx, matchID, message); err != nil {
		printlnFn("Failed to save message:", err.Error())
		return err
	}

	printlnFn("Sent")
	return nil
}

func (a *App) Messages(ctx context.Context, matchID string) error {
	messages, err := a.store.Messages.Load(ctx, matchID)
	if err != nil {
		printlnFn("Failed to load messages:", err.Error())
		return err
	}

	if len(messages) == 0 {
		printlnFn("No messages")
		return nil
	}
	for _, message := range messages {
		printlnFn(fmt.Sprintf("[%s] %s: %s",
			message.Timestamp.Format(time.RFC822), message.SenderID, message.Content))
	}
	return nil
}
