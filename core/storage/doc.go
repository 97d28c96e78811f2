// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a narrow interface that works against AWS S3
// and self-hosted MinIO alike. EnsureBucket creates the configured bucket on startup.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Layout
//
// Staged incoming uploads live under incoming/<upload id>/ and updated masters
// under results/<run id>/. IncomingKey and ResultKey build these names;
// PutBytes and GetBytes move whole artifacts, FindFirst locates
// the single object under a prefix and RemovePrefix discards a staged upload.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.PutBytes(ctx, client, cfg.Bucket, storage.ResultKey(runID, name), data, mime)
package storage
