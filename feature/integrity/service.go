package integrity

import (
	"context"

	"master-sync/core/storage"
	"master-sync/feature/integrity/checks"
	"master-sync/feature/reconcile/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Structure statuses.
const (
	StatusOK      = "ok"
	StatusMissing = "missing"
	StatusFixed   = "fixed"
	StatusError   = "error"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
}

// StructureReport is the outcome of the bucket layout check.
type StructureReport struct {
	Status  string   `json:"status"`
	Missing []string `json:"missing"`
	Fixed   []string `json:"fixed,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Report combines every check. A failed check is reported, not returned.
type Report struct {
	Structure   StructureReport      `json:"structure"`
	Schema      *checks.SchemaReport `json:"schema,omitempty"`
	SchemaError string               `json:"schema_error,omitempty"`
}

// NewService creates a new integrity service. db may be nil when run history
// is not configured.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
	}
}

// CheckStructure returns a list of missing artifact prefixes.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the missing prefixes.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// Structure checks the bucket layout and, when fix is set, creates what is
// missing. On a failed fix the report still lists the missing prefixes.
func (s *Service) Structure(ctx context.Context, fix bool) (*StructureReport, error) {
	missing, err := s.CheckStructure(ctx)
	if err != nil {
		return nil, err
	}
	if len(missing) == 0 {
		return &StructureReport{Status: StatusOK, Missing: []string{}}, nil
	}

	s.logger.Warn("Missing prefixes detected", zap.Strings("missing", missing))
	if !fix {
		return &StructureReport{Status: StatusMissing, Missing: missing}, nil
	}
	if err := s.FixStructure(ctx, missing); err != nil {
		return &StructureReport{Status: StatusError, Missing: missing, Error: err.Error()}, err
	}
	return &StructureReport{Status: StatusFixed, Missing: []string{}, Fixed: missing}, nil
}

// CheckSchema compares the run history table with its model.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, models.Run{})
}

// RunAll runs every check without fixing anything.
func (s *Service) RunAll(ctx context.Context) *Report {
	report := &Report{}

	if structure, err := s.Structure(ctx, false); err != nil {
		report.Structure = StructureReport{Status: StatusError, Missing: []string{}, Error: err.Error()}
	} else {
		report.Structure = *structure
	}

	if schema, err := s.CheckSchema(); err != nil {
		report.SchemaError = err.Error()
	} else {
		report.Schema = schema
	}
	return report
}
