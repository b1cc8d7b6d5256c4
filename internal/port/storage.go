package port

import (
	"context"
	"io"
	"time"
)

// UploadInput describes one rendered artifact to store. Filename, when set,
// is served back as the attachment name; Metadata is stored with the object.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
	Filename    string
	Metadata    map[string]string
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// PresignInput asks for a time-limited download link. Zero Expiry means
// the adapter default.
type PresignInput struct {
	Bucket   string
	Key      string
	Filename string
	Expiry   time.Duration
}

// ObjectStorage abstracts the artifact store behind invoice downloads.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Delete(ctx context.Context, bucket, key string) error
	GetPresignedURL(ctx context.Context, input PresignInput) (string, error)
}
