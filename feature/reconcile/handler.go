package reconcile

import (
	"errors"
	"fmt"
	"io"

	apperrors "master-sync/core/errors"
	"master-sync/core/logger"
	"master-sync/core/pipeline"
	coreReconcile "master-sync/core/reconcile"
	"master-sync/core/table"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errMissingFile = errors.New("missing file")

// Handler handles HTTP requests for reconciliation runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the reconcile routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reconcile")
	group.Post("/", h.HandleReconcile)
	group.Post("/incoming", h.HandleUploadIncoming)
	group.Post("/incoming/:uploadID/master", h.HandleUploadMaster)
	group.Delete("/incoming/:uploadID", h.HandleDiscardUpload)
	group.Get("/runs", h.HandleListRuns)
	group.Get("/runs/:runID", h.HandleGetRun)
	group.Get("/runs/:runID/download", h.HandleDownload)
}

// TableView is a JSON friendly table.
type TableView struct {
	Columns []string    `json:"columns"`
	Rows    []table.Row `json:"rows"`
}

func viewOf(t *table.Table) TableView {
	rows := t.Rows
	if rows == nil {
		rows = []table.Row{}
	}
	return TableView{Columns: t.Columns, Rows: rows}
}

// UploadResponse describes a staged incoming table.
type UploadResponse struct {
	UploadID string             `json:"upload_id"`
	Filename string             `json:"filename"`
	Columns  []string           `json:"columns"`
	Rows     int                `json:"rows"`
	Preview  TableView          `json:"preview"`
	Warnings []pipeline.Warning `json:"warnings"`
}

// RunResponse describes a completed run.
type RunResponse struct {
	RunID           string               `json:"run_id"`
	UploadID        string               `json:"upload_id,omitempty"`
	Key             string               `json:"key"`
	KeySource       string               `json:"key_source"`
	NumChanges      int                  `json:"num_changes"`
	UpdatedRows     int                  `json:"updated_rows"`
	AppendedRows    int                  `json:"appended_rows"`
	PropagatedCells int                  `json:"propagated_cells"`
	IgnoredColumns  []string             `json:"ignored_columns"`
	Report          coreReconcile.Report `json:"report"`
	Warnings        []pipeline.Warning   `json:"warnings"`
	Download        string               `json:"download"`
}

func runResponse(s *RunSummary) RunResponse {
	o := s.Outcome
	warnings := o.Warnings
	if warnings == nil {
		warnings = []pipeline.Warning{}
	}
	return RunResponse{
		RunID:           s.RunID,
		UploadID:        s.UploadID,
		Key:             o.Key.Name,
		KeySource:       string(o.Key.Source),
		NumChanges:      o.Report.Count,
		UpdatedRows:     o.Result.UpdatedRows(),
		AppendedRows:    o.Result.NewRows(),
		PropagatedCells: o.Result.PropagatedCells,
		IgnoredColumns:  o.Result.IgnoredColumns,
		Report:          o.Report,
		Warnings:        warnings,
		Download:        fmt.Sprintf("/reconcile/runs/%s/download", s.RunID),
	}
}

// HandleUploadIncoming stages the incoming table.
// @Summary Upload Incoming Table
// @Description Validates and stages an incoming CSV or XLSX table and returns a preview of its first rows.
// @Tags reconcile
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Incoming table"
// @Success 200 {object} UploadResponse "Staged upload"
// @Failure 400 {object} map[string]string "Missing file"
// @Failure 422 {object} map[string]string "Unreadable table"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile/incoming [post]
func (h *Handler) HandleUploadIncoming(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	name, data, err := readFormFile(c, "file")
	if err != nil {
		return h.fail(c, l, "Incoming upload rejected", err)
	}

	staged, err := h.service.StageIncoming(c.Context(), name, data)
	if err != nil {
		return h.fail(c, l, "Failed to stage incoming table", err)
	}

	warnings := staged.Warnings
	if warnings == nil {
		warnings = []pipeline.Warning{}
	}
	return c.JSON(UploadResponse{
		UploadID: staged.UploadID,
		Filename: staged.Filename,
		Columns:  staged.Table.Columns,
		Rows:     staged.Table.Len(),
		Preview:  viewOf(staged.Preview),
		Warnings: warnings,
	})
}

// HandleUploadMaster reconciles a staged incoming table with a master.
// @Summary Upload Master Table
// @Description Reconciles the staged incoming table into the uploaded master and stores the updated master.
// @Tags reconcile
// @Accept multipart/form-data
// @Produce json
// @Param uploadID path string true "Upload ID returned by /reconcile/incoming"
// @Param master_file formData file true "Master table"
// @Success 200 {object} RunResponse "Run result"
// @Failure 404 {object} map[string]string "Unknown upload"
// @Failure 422 {object} map[string]string "Unreadable table or no common key"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile/incoming/{uploadID}/master [post]
func (h *Handler) HandleUploadMaster(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	uploadID := c.Params("uploadID")

	name, data, err := readFormFile(c, "master_file")
	if err != nil {
		return h.fail(c, l, "Master upload rejected", err)
	}

	summary, err := h.service.ReconcileStaged(c.Context(), uploadID, name, data)
	if err != nil {
		return h.fail(c, l.With(zap.String("upload_id", uploadID)), "Reconciliation failed", err)
	}

	return c.JSON(runResponse(summary))
}

// HandleDiscardUpload removes a staged incoming table.
// @Summary Discard Incoming Table
// @Description Deletes a staged incoming table that is no longer needed.
// @Tags reconcile
// @Param uploadID path string true "Upload ID returned by /reconcile/incoming"
// @Success 204 "Discarded"
// @Failure 404 {object} map[string]string "Unknown upload"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile/incoming/{uploadID} [delete]
func (h *Handler) HandleDiscardUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	uploadID := c.Params("uploadID")

	if err := h.service.DiscardUpload(c.Context(), uploadID); err != nil {
		return h.fail(c, l.With(zap.String("upload_id", uploadID)), "Discard failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleReconcile reconciles two tables uploaded together.
// @Summary Reconcile Tables
// @Description Reconciles the incoming table into the master in a single request.
// @Tags reconcile
// @Accept multipart/form-data
// @Produce json
// @Param incoming formData file true "Incoming table"
// @Param master formData file true "Master table"
// @Success 200 {object} RunResponse "Run result"
// @Failure 400 {object} map[string]string "Missing file"
// @Failure 422 {object} map[string]string "Unreadable table or no common key"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	incomingName, incomingData, err := readFormFile(c, "incoming")
	if err != nil {
		return h.fail(c, l, "Incoming upload rejected", err)
	}
	masterName, masterData, err := readFormFile(c, "master")
	if err != nil {
		return h.fail(c, l, "Master upload rejected", err)
	}

	summary, err := h.service.ReconcileFiles(c.Context(), incomingName, incomingData, masterName, masterData)
	if err != nil {
		return h.fail(c, l, "Reconciliation failed", err)
	}

	return c.JSON(runResponse(summary))
}

// HandleListRuns lists recorded runs.
// @Summary List Runs
// @Description Lists recorded reconciliation runs, newest first.
// @Tags reconcile
// @Produce json
// @Param limit query int false "Maximum number of runs"
// @Success 200 {array} models.Run "Runs"
// @Failure 503 {object} map[string]string "History disabled"
// @Router /reconcile/runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.ListRuns(c.Context(), c.QueryInt("limit", DefaultHistoryLimit))
	if err != nil {
		return h.fail(c, l, "Failed to list runs", err)
	}
	return c.JSON(runs)
}

// HandleGetRun returns one recorded run.
// @Summary Get Run
// @Description Returns the recorded summary of a reconciliation run.
// @Tags reconcile
// @Produce json
// @Param runID path string true "Run ID"
// @Success 200 {object} models.Run "Run"
// @Failure 404 {object} map[string]string "Unknown run"
// @Failure 503 {object} map[string]string "History disabled"
// @Router /reconcile/runs/{runID} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	run, err := h.service.GetRun(c.Context(), c.Params("runID"))
	if err != nil {
		return h.fail(c, l, "Failed to load run", err)
	}
	return c.JSON(run)
}

// HandleDownload streams the updated master of a run.
// @Summary Download Updated Master
// @Description Downloads the updated master in the format it was uploaded in.
// @Tags reconcile
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Param runID path string true "Run ID"
// @Success 200 {file} file "Updated master"
// @Failure 404 {object} map[string]string "Unknown run"
// @Router /reconcile/runs/{runID}/download [get]
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	artifact, err := h.service.Download(c.Context(), c.Params("runID"))
	if err != nil {
		return h.fail(c, l, "Download failed", err)
	}

	c.Attachment(artifact.Filename)
	c.Set(fiber.HeaderContentType, artifact.MIMEType)
	return c.Send(artifact.Data)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errMissingFile):
		return fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrFormat), errors.Is(err, apperrors.ErrNoKeyFound):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrHistoryDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func readFormFile(c *fiber.Ctx, field string) (string, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil, fmt.Errorf("%w: form field %q", errMissingFile, field)
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}
	return fh.Filename, data, nil
}
