// Package storage implements the profile-picture object store on top of
// gocloud.dev blob buckets, so local disk and GCS are interchangeable by URL.
package storage

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"taskdeck/config"
	"taskdeck/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets for local development
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets in production
	"gocloud.dev/gcerrors"
)

type blobPictureStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// StoreParams holds dependencies for the picture store, injected by Fx.
type StoreParams struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewProfilePictureStore opens the configured bucket. Returns nil when no
// storage is configured; handlers treat that as uploads being disabled.
func NewProfilePictureStore(params StoreParams) (service.ProfilePictureStore, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		params.Logger.Info("Object storage not configured, picture uploads disabled")

		return nil, nil
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobPictureStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// Upload writes the picture under a fresh key and returns its public URL.
func (s *blobPictureStore) Upload(ctx context.Context, filename string, contentType string, body io.Reader) (*service.StoredPicture, error) {
	// Key layout: pictures/<uuid><ext>. The original filename only
	// contributes its extension; everything else is client-controlled.
	key := "pictures/" + uuid.New().String() + strings.ToLower(path.Ext(filename))

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(writer, body); err != nil {
		writer.Close()

		return nil, errors.Wrap(err, "failed to write picture to bucket")
	}

	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to finalize picture upload")
	}

	s.logger.Debug("Uploaded profile picture", slog.String("key", key))

	return &service.StoredPicture{
		Key: key,
		URL: s.publicBaseURL + "/" + key,
	}, nil
}

// Delete removes a previously uploaded object. Unknown keys are not an error
// so double deletes from retried clients stay quiet.
func (s *blobPictureStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "failed to delete picture %s", key)
	}

	return nil
}
