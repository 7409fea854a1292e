package service

import (
	"context"
	"io"
)

// StoredPicture describes an uploaded object: the key used to delete it later
// and the public URL stored on the user row.
type StoredPicture struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ProfilePictureStore is the boundary to the object-storage service holding
// profile pictures. The core stores only the returned URL; the binary never
// touches the database.
type ProfilePictureStore interface {
	// Upload writes the picture bytes under a fresh key and returns its
	// public URL.
	Upload(ctx context.Context, filename string, contentType string, body io.Reader) (*StoredPicture, error)

	// Delete removes a previously uploaded object by key. Deleting an
	// unknown key is not an error.
	Delete(ctx context.Context, key string) error
}
