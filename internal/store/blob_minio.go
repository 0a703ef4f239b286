package store

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/printzz/printzz/internal/config"
	"github.com/printzz/printzz/internal/logger"
)

// minioPartSize is the multipart chunk for uploads of unknown size; minio
// buffers one part in memory, about 537 MiB when left unset.
const minioPartSize = 16 << 20

// minioBlobStorage keeps blobs as objects in an S3-compatible bucket.
// PutObject only publishes an object once the upload completes.
type minioBlobStorage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

// NewMinioBlobStorage connects to the object store and creates the bucket
// when it does not exist yet.
func NewMinioBlobStorage(ctx context.Context, cfg config.ObjectStore, log *logger.Logger) (BlobStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Err(err).Str("func", "NewMinioBlobStorage").Msg("error creating minio client")
		return nil, fmt.Errorf("error creating minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		log.Err(err).Str("func", "NewMinioBlobStorage").Str("bucket", cfg.Bucket).Msg("error checking bucket")
		return nil, fmt.Errorf("error checking bucket: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			log.Err(err).Str("func", "NewMinioBlobStorage").Str("bucket", cfg.Bucket).Msg("error creating bucket")
			return nil, fmt.Errorf("error creating bucket: %w", err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("created bucket")
	}

	return &minioBlobStorage{client: client, bucket: cfg.Bucket, logger: log}, nil
}

func (s *minioBlobStorage) Put(ctx context.Context, name string, r io.Reader) (int64, error) {
	if err := validateBlobName(name); err != nil {
		return 0, err
	}

	info, err := s.client.PutObject(ctx, s.bucket, name, r, -1, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
		PartSize:    minioPartSize,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*minioBlobStorage.Put").Str("blob", name).Msg("error uploading blob")
		return 0, fmt.Errorf("%w: %w", ErrWritingBlob, err)
	}

	return info.Size, nil
}

func (s *minioBlobStorage) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := validateBlobName(name); err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingBlob, err)
	}
	// GetObject is lazy; Stat surfaces a missing key.
	if _, err = obj.Stat(); err != nil {
		_ = obj.Close()
		if isNoSuchKey(err) {
			return nil, ErrBlobNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*minioBlobStorage.Get").Str("blob", name).Msg("error reading blob")
		return nil, fmt.Errorf("%w: %w", ErrReadingBlob, err)
	}

	return obj, nil
}

func (s *minioBlobStorage) Delete(ctx context.Context, name string) error {
	if err := validateBlobName(name); err != nil {
		return err
	}

	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil && !isNoSuchKey(err) {
		logger.FromContext(ctx).Err(err).Str("func", "*minioBlobStorage.Delete").Str("blob", name).Msg("error deleting blob")
		return fmt.Errorf("%w: %w", ErrDeletingBlob, err)
	}

	return nil
}

func (s *minioBlobStorage) List(ctx context.Context) ([]BlobInfo, error) {
	blobs := make([]BlobInfo, 0)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			logger.FromContext(ctx).Err(obj.Err).Str("func", "*minioBlobStorage.List").Msg("error listing blobs")
			return nil, fmt.Errorf("%w: %w", ErrListingBlobs, obj.Err)
		}
		blobs = append(blobs, BlobInfo{Name: obj.Key, Size: obj.Size, ModTime: obj.LastModified})
	}

	return blobs, nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
