package cli

import (
	"context"
	"encoding/json"
	"os"

	"libmatch/internal/storage"
)

// Export snapshots the local profile, matches and settings into a JSON file.
func (a *App) Export(ctx context.Context, path string) error {
	backup, err := a.store.Export(ctx)
	if err != nil {
		printlnFn("Export failed:", err.Error())
		return err
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		printlnFn("Export failed:", err.Error())
		return err
	}

	printlnFn("Exported to", path)
	return nil
}

// Import restores the slots present in a backup file, leaving the rest of
// the local data untouched.
func (a *App) Import(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Import failed:", err.Error())
		return err
	}

	var backup storage.Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		printlnFn("Import failed: not a valid backup file")
		return err
	}

	if err := a.store.Import(ctx, &backup); err != nil {
		printlnFn("Import failed:", err.Error())
		return err
	}

	printlnFn("Imported from", path)
	return nil
}
