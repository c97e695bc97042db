package cli

import (
	"context"
	"fmt"
)

func (a *App) Whoami(ctx context.Context) error {
	user, err := a.sessions.CurrentUser(ctx, a.remote, a.directory)
	if err != nil {
		printlnFn("Failed to resolve current user:", err.Error())
		return err
	}
	if user == nil {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s> (id %s)", user.Name, user.Email, user.ID))
	return nil
}

func (a *App) Cleanup(ctx context.Context) error {
	count, err := a.store.CleanupOrphanedData(ctx)
	if err != nil {
		printlnFn("Cleanup failed:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Removed %d orphaned message collections", count))
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	stats, err := a.store.Stats(ctx)
	if err != nil {
		printlnFn("Stats failed:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("keys=%d size=%dB appData=%dB messageCollections=%d",
		stats.TotalKeys, stats.TotalSize, stats.UserDataSize, stats.MessagesCount))
	return nil
}

func (a *App) DeleteAccount(ctx context.Context) error {
	confirm, err := GetSimpleText(a.reader, "Type 'delete' to remove your account and all data", outWriter)
	if err != nil {
		return err
	}
	if confirm != "delete" {
		printlnFn("Aborted")
		return nil
	}

	ok, err := a.coordinator.DeleteAccount(ctx)
	if err != nil {
		printlnFn("Account deletion failed:", err.Error())
		return err
	}
	if !ok {
		printlnFn("No active session")
		return nil
	}
	printlnFn("Account deleted")
	return nil
}
