// Package storage uploads original media to durable object storage.
package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
)

// Location identifies where an uploaded media object ended up. Provider
// "local" marks the placeholder used when the upload failed or no store is
// configured.
type Location struct {
	Provider string `json:"provider"`
	Bucket   string `json:"bucket,omitempty"`
	Key      string `json:"key"`
}

// LocalPlaceholder is the degraded location: the media stayed on local disk
// but the incident response is still complete.
func LocalPlaceholder(path string) Location {
	return Location{Provider: "local", Key: path}
}

// MediaStore persists the original media bytes.
type MediaStore interface {
	Save(ctx context.Context, path, name, mimeType string) (Location, error)
}

// FirebaseStore uploads to a Firebase Storage bucket.
type FirebaseStore struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// NewFirebaseStore builds the client from base64 service-account credentials
// in FIREBASE_CREDENTIALS and the bucket named by STORAGE_BUCKET. Either
// being absent disables media storage (nil store, nil error).
func NewFirebaseStore(ctx context.Context) (*FirebaseStore, error) {
	encodedCreds := os.Getenv("FIREBASE_CREDENTIALS")
	bucketName := os.Getenv("STORAGE_BUCKET")
	if encodedCreds == "" || bucketName == "" {
		return nil, nil
	}

	creds, err := base64.StdEncoding.DecodeString(encodedCreds)
	if err != nil {
		return nil, fmt.Errorf("failed to decode Firebase credentials: %w", err)
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Storage client: %w", err)
	}
	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("error getting default bucket: %w", err)
	}

	return &FirebaseStore{bucket: bucket, bucketName: bucketName}, nil
}

// Save streams the file into the bucket under raw/<timestamp>-<name>.
func (s *FirebaseStore) Save(ctx context.Context, path, name, mimeType string) (Location, error) {
	file, err := os.Open(path)
	if err != nil {
		return Location{}, err
	}
	defer file.Close()

	key := fmt.Sprintf("raw/%d-%s", time.Now().UnixMilli(), name)
	writer := s.bucket.Object(key).NewWriter(ctx)
	writer.ContentType = mimeType

	if _, err := io.Copy(writer, file); err != nil {
		writer.Close()
		return Location{}, err
	}
	if err := writer.Close(); err != nil {
		return Location{}, err
	}

	return Location{Provider: "firebase", Bucket: s.bucketName, Key: key}, nil
}
