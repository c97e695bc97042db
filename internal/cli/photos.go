package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"libmatch/internal/filex"
	"libmatch/internal/netx"
	"libmatch/internal/storage"
)

// UploadPhoto pushes a local image file to object storage through a
// presigned URL and records the object key on the saved profile.
func (a *App) UploadPhoto(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Cannot read file:", err.Error())
		return err
	}

	key, url, err := a.photos.PresignPut(ctx)
	if err != nil {
		printlnFn("Upload failed:", err.Error())
		return err
	}
	if err := netx.UploadToPresignedURL(url, data); err != nil {
		printlnFn("Upload failed:", err.Error())
		return err
	}

	profile, err := a.store.Profile.Load(ctx)
	if err != nil && !errors.Is(err, storage.ErrCorruptRecord) {
		return err
	}
	if profile != nil {
		profile.Photos = append(profile.Photos, key)
		if err := a.store.Profile.Save(ctx, *profile); err != nil {
			return err
		}
	}

	printlnFn("Uploaded as", key)
	return nil
}

// DownloadPhoto fetches a photo object and saves it under ./photos.
func (a *App) DownloadPhoto(ctx context.Context, key string) error {
	url, err := a.photos.PresignGet(ctx, key)
	if err != nil {
		printlnFn("Download failed:", err.Error())
		return err
	}

	data, err := netx.DownloadFromPresignedURL(url)
	if err != nil {
		printlnFn("Download failed:", err.Error())
		return err
	}

	dir, err := filex.EnsureSubDir("photos")
	if err != nil {
		return err
	}
	dest := filepath.Join(dir, filepath.Base(key))
	if err := os.WriteFile(dest, data, 0o600); err != nil {
		return err
	}

	printlnFn("Saved to", dest)
	return nil
}
