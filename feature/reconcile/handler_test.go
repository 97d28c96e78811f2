package reconcile

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"master-sync/core/storage/mocks"
	"master-sync/core/writer"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type formFile struct {
	field, name, body string
}

func multipartRequest(t *testing.T, target string, files ...formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func setupTestApp(t *testing.T, db *gorm.DB) (*fiber.App, *mocks.Client) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	handler := NewHandler(newTestService(mockClient, db))
	handler.RegisterRoutes(app)
	return app, mockClient
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHandleUploadIncoming(t *testing.T) {
	app, mockClient := setupTestApp(t, nil)
	mockClient.On("PutObject", mock.Anything, testBucket, hasPrefix("incoming/"), mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	req := multipartRequest(t, "/reconcile/incoming", formFile{"file", "sections.csv", "ID,Total FTE\nA1,1\nA2,2\nA3,3\n"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body UploadResponse
	decode(t, resp, &body)
	assert.NotEmpty(t, body.UploadID)
	assert.Equal(t, []string{"ID", "Total FTE"}, body.Columns)
	assert.Equal(t, 3, body.Rows)
	assert.Len(t, body.Preview.Rows, 2)
	assert.Empty(t, body.Warnings)
}

func TestHandleUploadIncoming_Errors(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	resp, err := app.Test(multipartRequest(t, "/reconcile/incoming", formFile{"other", "a.csv", "ID\n"}))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	resp, err = app.Test(multipartRequest(t, "/reconcile/incoming", formFile{"file", "a.xlsx", "not a workbook"}))
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Contains(t, body["error"], "a.xlsx")
}

func TestHandleUploadMaster(t *testing.T) {
	uploadID := uuid.NewString()
	stagedKey := "incoming/" + uploadID + "/sections.csv"

	app, mockClient := setupTestApp(t, setupHistoryDB(t))
	mockClient.On("ListObjects", mock.Anything, testBucket, mock.Anything).Return(mocks.ObjectChannel(stagedKey))
	mockClient.On("GetObject", mock.Anything, testBucket, stagedKey, mock.Anything).
		Return(io.NopCloser(strings.NewReader("ID,Total FTE\nA1,3\n")), nil)
	mockClient.On("PutObject", mock.Anything, testBucket, hasPrefix("results/"), mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	req := multipartRequest(t, "/reconcile/incoming/"+uploadID+"/master",
		formFile{"master_file", "master.csv", "ID,Total FTE\nA1,2\n"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, uploadID, body["upload_id"])
	assert.Equal(t, "ID", body["key"])
	assert.Equal(t, "candidate", body["key_source"])
	assert.EqualValues(t, 1, body["num_changes"])
	assert.Equal(t, "/reconcile/runs/"+body["run_id"].(string)+"/download", body["download"])

	report := body["report"].(map[string]any)
	assert.Equal(t, []any{"ID", "Total FTE (Old)", "Total FTE (New)"}, report["columns"])
	row := report["rows"].([]any)[0].(map[string]any)
	assert.Equal(t, "2", row["Total FTE (Old)"])
	assert.Equal(t, "3", row["Total FTE (New)"])

	runResp, err := app.Test(httptest.NewRequest("GET", "/reconcile/runs/"+body["run_id"].(string), nil))
	require.NoError(t, err)
	assert.Equal(t, 200, runResp.StatusCode)

	listResp, err := app.Test(httptest.NewRequest("GET", "/reconcile/runs?limit=5", nil))
	require.NoError(t, err)
	var runs []map[string]any
	decode(t, listResp, &runs)
	assert.Len(t, runs, 1)
}

func TestHandleUploadMaster_UnknownUpload(t *testing.T) {
	app, mockClient := setupTestApp(t, nil)
	mockClient.On("ListObjects", mock.Anything, testBucket, mock.Anything).Return(mocks.ObjectChannel())

	req := multipartRequest(t, "/reconcile/incoming/"+uuid.NewString()+"/master",
		formFile{"master_file", "master.csv", "ID\nA1\n"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleDiscardUpload(t *testing.T) {
	app, mockClient := setupTestApp(t, nil)
	uploadID := uuid.NewString()
	key := "incoming/" + uploadID + "/sections.csv"
	mockClient.On("ListObjects", mock.Anything, testBucket, mock.Anything).Return(mocks.ObjectChannel(key)).Once()
	mockClient.On("ListObjects", mock.Anything, testBucket, mock.Anything).Return(mocks.ObjectChannel(key)).Once()
	mockClient.On("RemoveObjects", mock.Anything, testBucket, []string{key}, mock.Anything).Return(mocks.RemoveErrors())

	resp, err := app.Test(httptest.NewRequest("DELETE", "/reconcile/incoming/"+uploadID, nil))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/reconcile/incoming/not-an-id", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleReconcile(t *testing.T) {
	app, mockClient := setupTestApp(t, nil)
	mockClient.On("PutObject", mock.Anything, testBucket, hasPrefix("results/"), mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	req := multipartRequest(t, "/reconcile",
		formFile{"incoming", "in.csv", "ID,Name\nB2,Jones\n"},
		formFile{"master", "master.csv", "ID,Name,Room\nA1,Smith,R1\n"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body RunResponse
	decode(t, resp, &body)
	assert.Equal(t, 1, body.AppendedRows)
	assert.Equal(t, []string{"ID", "Status"}, body.Report.Columns)
}

func TestHandleReconcile_NoKey(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	req := multipartRequest(t, "/reconcile",
		formFile{"incoming", "in.csv", "Foo\n1\n"},
		formFile{"master", "master.csv", "Bar\n2\n"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)
}

func TestHandleRuns_HistoryDisabled(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/reconcile/runs", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestHandleGetRun_NotFound(t *testing.T) {
	app, _ := setupTestApp(t, setupHistoryDB(t))

	resp, err := app.Test(httptest.NewRequest("GET", "/reconcile/runs/"+uuid.NewString(), nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleDownload(t *testing.T) {
	runID := uuid.NewString()
	key := "results/" + runID + "/updated_master.csv"

	app, mockClient := setupTestApp(t, nil)
	mockClient.On("ListObjects", mock.Anything, testBucket, mock.Anything).Return(mocks.ObjectChannel(key))
	mockClient.On("GetObject", mock.Anything, testBucket, key, mock.Anything).
		Return(io.NopCloser(strings.NewReader("ID\nA1\n")), nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/reconcile/runs/"+runID+"/download", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	assert.Equal(t, writer.MIMEDelimited, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="updated_master.csv"`)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ID\nA1\n", string(data))
}
