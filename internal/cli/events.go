package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libmatch/internal/remote"
)

// Events lists upcoming community events from the remote store.
func (a *App) Events(ctx context.Context) error {
	events, err := a.remote.ListEvents(ctx)
	if err != nil {
		if errors.Is(err, remote.ErrUnavailable) {
			printlnFn("Events require a remote connection")
			return nil
		}
		printlnFn("Failed to load events:", err.Error())
		return err
	}

	if len(events) == 0 {
		printlnFn("No upcoming events")
		return nil
	}
	for _, event := range events {
		printlnFn(fmt.Sprintf("%s  %s @ %s (%d/%d) [%s]",
			event.Date.Format(time.RFC822), event.Title, event.Location,
			event.CurrentParticipants, event.MaxParticipants, event.ID))
	}
	return nil
}

// Join signs the current user up for an event.
func (a *App) Join(ctx context.Context, eventID string) error {
	userID, ok := a.sessions.CurrentUserID(ctx)
	if !ok {
		printlnFn("Not logged in")
		return nil
	}

	if err := a.remote.JoinEvent(ctx, eventID, userID); err != nil {
		if errors.Is(err, remote.ErrUnavailable) {
			printlnFn("Joining events requires a remote connection")
			return nil
		}
		printlnFn("Failed to join event:", err.Error())
		return err
	}

	printlnFn("Joined event", eventID)
	return nil
}
