package reconcile

import (
	"context"
	"errors"
	"time"

	apperrors "master-sync/core/errors"
	"master-sync/core/pipeline"
	"master-sync/core/storage"
	"master-sync/core/table"
	"master-sync/core/writer"
	"master-sync/feature/reconcile/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Service stages uploads, runs reconciliations and keeps their artifacts.
type Service struct {
	client  storage.Client
	bucket  string
	logger  *zap.Logger
	history *History
	cfg     pipeline.Config

	// downloads collapses concurrent fetches of the same run artifact.
	downloads singleflight.Group
}

// NewService creates a new reconcile service. db may be nil, in which case
// runs are not recorded.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, cfg pipeline.Config) *Service {
	return &Service{
		client:  client,
		bucket:  bucket,
		logger:  logger,
		history: NewHistory(db),
		cfg:     cfg,
	}
}

// History returns the run history store.
func (s *Service) History() *History {
	return s.history
}

// StagedUpload describes an incoming table waiting for its master.
type StagedUpload struct {
	UploadID string
	Filename string
	Table    *table.Table
	Preview  *table.Table
	Warnings []pipeline.Warning
}

// StageIncoming validates an incoming table and stores it until a master is
// uploaded against it.
func (s *Service) StageIncoming(ctx context.Context, filename string, data []byte) (*StagedUpload, error) {
	src := pipeline.NewSource(storage.SafeName(filename), data)
	t, warnings, err := pipeline.Load(s.cfg, src)
	if err != nil {
		return nil, err
	}

	uploadID := uuid.NewString()
	key := storage.IncomingKey(uploadID, src.Name)
	if err := storage.PutBytes(ctx, s.client, s.bucket, key, data, writer.MIMEType(src.Format)); err != nil {
		return nil, err
	}

	s.logger.Info("Staged incoming table",
		zap.String("upload_id", uploadID),
		zap.String("file", src.Name),
		zap.Int("rows", t.Len()))

	return &StagedUpload{
		UploadID: uploadID,
		Filename: src.Name,
		Table:    t,
		Preview:  t.Head(s.previewRows()),
		Warnings: warnings,
	}, nil
}

// RunSummary is a completed run and where its output is stored.
type RunSummary struct {
	RunID       string
	UploadID    string
	ArtifactKey string
	Outcome     *pipeline.Outcome
}

// ReconcileStaged runs a staged incoming table against a master upload.
func (s *Service) ReconcileStaged(ctx context.Context, uploadID, masterName string, masterData []byte) (*RunSummary, error) {
	if _, err := uuid.Parse(uploadID); err != nil {
		return nil, apperrors.NewNotFoundError("upload", uploadID)
	}
	key, err := storage.FindFirst(ctx, s.client, s.bucket, storage.IncomingDir(uploadID))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("upload", uploadID)
	}
	if err != nil {
		return nil, err
	}
	data, err := storage.GetBytes(ctx, s.client, s.bucket, key)
	if err != nil {
		return nil, err
	}

	incoming := pipeline.NewSource(storage.BaseName(key), data)
	master := pipeline.NewSource(storage.SafeName(masterName), masterData)
	return s.run(ctx, uploadID, incoming, master)
}

// DiscardUpload removes a staged incoming upload.
func (s *Service) DiscardUpload(ctx context.Context, uploadID string) error {
	if _, err := uuid.Parse(uploadID); err != nil {
		return apperrors.NewNotFoundError("upload", uploadID)
	}
	if _, err := storage.FindFirst(ctx, s.client, s.bucket, storage.IncomingDir(uploadID)); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("upload", uploadID)
		}
		return err
	}
	if err := storage.RemovePrefix(ctx, s.client, s.bucket, storage.IncomingDir(uploadID)); err != nil {
		return err
	}
	s.logger.Info("Discarded staged upload", zap.String("upload_id", uploadID))
	return nil
}

// ReconcileFiles runs both uploads in one step.
func (s *Service) ReconcileFiles(ctx context.Context, incomingName string, incomingData []byte, masterName string, masterData []byte) (*RunSummary, error) {
	incoming := pipeline.NewSource(storage.SafeName(incomingName), incomingData)
	master := pipeline.NewSource(storage.SafeName(masterName), masterData)
	return s.run(ctx, "", incoming, master)
}

func (s *Service) run(ctx context.Context, uploadID string, incoming, master pipeline.Source) (*RunSummary, error) {
	runID := uuid.NewString()
	l := s.logger.With(zap.String("run_id", runID))

	outcome, err := pipeline.Run(s.cfg, incoming, master, l)
	if err != nil {
		return nil, err
	}

	artifact := storage.ResultKey(runID, outcome.Filename)
	if err := storage.PutBytes(ctx, s.client, s.bucket, artifact, outcome.Output, outcome.MIMEType); err != nil {
		return nil, err
	}

	run := &models.Run{
		ID:              runID,
		UploadID:        uploadID,
		IncomingName:    incoming.Name,
		MasterName:      master.Name,
		MasterFormat:    string(outcome.Format),
		KeyColumn:       outcome.Key.Name,
		KeySource:       string(outcome.Key.Source),
		Changes:         outcome.Report.Count,
		UpdatedRows:     outcome.Result.UpdatedRows(),
		AppendedRows:    outcome.Result.NewRows(),
		PropagatedCells: outcome.Result.PropagatedCells,
		Warnings:        len(outcome.Warnings),
		ArtifactKey:     artifact,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.history.Record(ctx, run); err != nil {
		// The artifact is already stored; the run stays downloadable.
		l.Warn("Failed to record run history", zap.Error(err))
	}

	return &RunSummary{RunID: runID, UploadID: uploadID, ArtifactKey: artifact, Outcome: outcome}, nil
}

// ListRuns returns recent runs, newest first.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]models.Run, error) {
	return s.history.List(ctx, limit)
}

// GetRun returns a recorded run.
func (s *Service) GetRun(ctx context.Context, runID string) (*models.Run, error) {
	return s.history.Get(ctx, runID)
}

// Artifact is a downloadable updated master.
type Artifact struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Download fetches the updated master of a run from storage. Concurrent
// downloads of one run share a single fetch.
func (s *Service) Download(ctx context.Context, runID string) (*Artifact, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return nil, apperrors.NewNotFoundError("run", runID)
	}
	v, err, shared := s.downloads.Do(runID, func() (any, error) {
		return s.fetchArtifact(ctx, runID)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Shared artifact download", zap.String("run_id", runID))
	}
	return v.(*Artifact), nil
}

func (s *Service) fetchArtifact(ctx context.Context, runID string) (*Artifact, error) {
	key, err := storage.FindFirst(ctx, s.client, s.bucket, storage.ResultDir(runID))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("run", runID)
	}
	if err != nil {
		return nil, err
	}
	data, err := storage.GetBytes(ctx, s.client, s.bucket, key)
	if err != nil {
		return nil, err
	}
	name := storage.BaseName(key)
	return &Artifact{
		Filename: name,
		MIMEType: writer.MIMEType(table.DetectFormat(name, data)),
		Data:     data,
	}, nil
}

func (s *Service) previewRows() int {
	if s.cfg.PreviewRows <= 0 {
		return pipeline.DefaultConfig().PreviewRows
	}
	return s.cfg.PreviewRows
}
