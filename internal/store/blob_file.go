package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/printzz/printzz/internal/logger"
)

const tempBlobPattern = ".upload-*"

// fileBlobStorage keeps blobs as plain files in one directory.
type fileBlobStorage struct {
	dir    string
	logger *logger.Logger
}

// NewFileBlobStorage creates dir if needed and returns a [BlobStorage] on it.
func NewFileBlobStorage(dir string, logger *logger.Logger) (BlobStorage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		logger.Err(err).Str("func", "NewFileBlobStorage").Str("dir", dir).Msg("error creating queue directory")
		return nil, fmt.Errorf("error creating queue directory: %w", err)
	}
	logger.Debug().Str("dir", dir).Msg("creating file blob storage")

	return &fileBlobStorage{dir: dir, logger: logger}, nil
}

// Put streams r into a temp file, fsyncs it and renames it into place.
func (s *fileBlobStorage) Put(ctx context.Context, name string, r io.Reader) (int64, error) {
	log := logger.FromContext(ctx)

	if err := validateBlobName(name); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(s.dir, tempBlobPattern)
	if err != nil {
		log.Err(err).Str("func", "*fileBlobStorage.Put").Msg("error creating temp file")
		return 0, fmt.Errorf("%w: %w", ErrWritingBlob, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	written, err := io.Copy(tmp, contextReader{ctx: ctx, r: r})
	if err != nil {
		log.Err(err).Str("func", "*fileBlobStorage.Put").Str("blob", name).Msg("error writing blob")
		return 0, fmt.Errorf("%w: %w", ErrWritingBlob, err)
	}
	if err = tmp.Sync(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWritingBlob, err)
	}
	if err = tmp.Close(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWritingBlob, err)
	}
	if err = os.Rename(tmpName, s.path(name)); err != nil {
		log.Err(err).Str("func", "*fileBlobStorage.Put").Str("blob", name).Msg("error renaming blob")
		return 0, fmt.Errorf("%w: %w", ErrWritingBlob, err)
	}
	committed = true

	return written, nil
}

func (s *fileBlobStorage) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := validateBlobName(name); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileBlobStorage.Get").Str("blob", name).Msg("error opening blob")
		return nil, fmt.Errorf("%w: %w", ErrReadingBlob, err)
	}

	return f, nil
}

func (s *fileBlobStorage) Delete(ctx context.Context, name string) error {
	if err := validateBlobName(name); err != nil {
		return err
	}

	err := os.Remove(s.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.FromContext(ctx).Err(err).Str("func", "*fileBlobStorage.Delete").Str("blob", name).Msg("error deleting blob")
		return fmt.Errorf("%w: %w", ErrDeletingBlob, err)
	}

	return nil
}

// List includes leftover temp files so the janitor can collect them.
func (s *fileBlobStorage) List(ctx context.Context) ([]BlobInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileBlobStorage.List").Msg("error reading queue directory")
		return nil, fmt.Errorf("%w: %w", ErrListingBlobs, err)
	}

	blobs := make([]BlobInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		blobs = append(blobs, BlobInfo{Name: entry.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}

	return blobs, nil
}

func (s *fileBlobStorage) path(name string) string {
	return filepath.Join(s.dir, name)
}

func validateBlobName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidBlobName, name)
	}
	return nil
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
