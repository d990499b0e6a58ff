package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"petledger/internal/config"
	"petledger/internal/domain"
	"petledger/internal/port"
	"petledger/internal/service"
	"petledger/internal/telemetry"
	"petledger/mocks"
)

const stockCSV = `name,sku,category,quantity,price,petSpecies
Chicken Kibble,FOOD-001,food,40,1299.50,dog
Catnip Mouse,TOY-001,toys,12,,cat
Bird Perch,BIRD-001,supplies,3,199,dragon
`

func testImportConfig() config.ImportConfig {
	return config.ImportConfig{
		SubmitTimeout:  5 * time.Second,
		MaxRows:        100,
		ArchiveUploads: true,
		SessionTTL:     time.Hour,
	}
}

func testS3Config() config.S3Config {
	return config.S3Config{
		Region:        "ap-south-1",
		Bucket:        "test-bucket",
		MaxFileSizeMB: 1,
	}
}

type importDeps struct {
	submitter *mocks.MockProductSubmitter
	runs      *mocks.MockImportRunRepo
	storage   *mocks.MockObjectStorage
	metrics   *telemetry.Metrics
}

func newImportService(cfg config.ImportConfig) (service.ImportService, importDeps) {
	deps := importDeps{
		submitter: new(mocks.MockProductSubmitter),
		runs:      new(mocks.MockImportRunRepo),
		storage:   new(mocks.MockObjectStorage),
		metrics:   telemetry.NewMetrics("test", prometheus.NewRegistry()),
	}
	svc := service.NewImportService(deps.submitter, deps.runs, deps.storage, deps.metrics, cfg, testS3Config())
	return svc, deps
}

func TestImportService_Validate_Success(t *testing.T) {
	svc, deps := newImportService(testImportConfig())

	deps.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "test-bucket" && strings.HasPrefix(in.Key, "imports/") &&
			strings.HasSuffix(in.Key, "/stock.csv") && in.ContentType == "text/csv"
	})).Return(&port.UploadOutput{Location: "s3://test-bucket/x"}, nil)
	deps.runs.On("Upsert", mock.Anything, mock.MatchedBy(func(run *domain.ImportRun) bool {
		return run.State == domain.ImportStateValidated && run.TotalRows == 3 &&
			run.ValidRows == 2 && run.InvalidRows == 1 && run.WarnedRows == 1 && run.ArchiveKey != ""
	})).Return(nil)

	got, err := svc.Validate(context.Background(), service.ImportUpload{
		FileName:    "stock.csv",
		ContentType: "text/csv",
		Body:        []byte(stockCSV),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ImportStateValidated, got.Session.State)
	assert.NotEmpty(t, got.Session.ID)
	assert.Len(t, got.Report.Valid, 2)
	assert.Len(t, got.Report.Invalid, 1)
	assert.Equal(t, float64(2), testutil.ToFloat64(deps.metrics.ImportRows.WithLabelValues("valid")))
	deps.storage.AssertExpectations(t)
	deps.runs.AssertExpectations(t)
}

func TestImportService_Validate_ArchiveFailureIsNotFatal(t *testing.T) {
	svc, deps := newImportService(testImportConfig())
	deps.storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("bucket unavailable"))
	deps.runs.On("Upsert", mock.Anything, mock.MatchedBy(func(run *domain.ImportRun) bool {
		return run.ArchiveKey == ""
	})).Return(nil)

	got, err := svc.Validate(context.Background(), service.ImportUpload{FileName: "stock.csv", Body: []byte(stockCSV)})

	require.NoError(t, err)
	assert.Equal(t, 3, got.Session.Rows)
	deps.runs.AssertExpectations(t)
}

func TestImportService_Validate_ArchiveDisabled(t *testing.T) {
	cfg := testImportConfig()
	cfg.ArchiveUploads = false
	svc, deps := newImportService(cfg)
	deps.runs.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Validate(context.Background(), service.ImportUpload{FileName: "stock.csv", Body: []byte(stockCSV)})

	require.NoError(t, err)
	deps.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestImportService_Validate_Rejections(t *testing.T) {
	cfg := testImportConfig()
	cfg.MaxRows = 2
	svc, deps := newImportService(cfg)

	tests := []struct {
		name    string
		upload  service.ImportUpload
		wantErr error
	}{
		{"empty", service.ImportUpload{FileName: "a.csv", Body: []byte("  \n")}, domain.ErrEmptyPayload},
		{"too_large", service.ImportUpload{FileName: "a.csv", Body: []byte(strings.Repeat("x", 1024*1024+1))}, domain.ErrFileTooLarge},
		{"bad_extension", service.ImportUpload{FileName: "a.pdf", Body: []byte("%PDF-1.4")}, domain.ErrUnsupportedFileType},
		{"too_many_rows", service.ImportUpload{FileName: "a.csv", Body: []byte(stockCSV)}, domain.ErrTooManyRows},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(context.Background(), tt.upload)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	deps.runs.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestImportService_Validate_XLSX(t *testing.T) {
	cfg := testImportConfig()
	cfg.ArchiveUploads = false
	svc, deps := newImportService(cfg)
	deps.runs.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"name", "sku", "category", "quantity", "price"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Leash", "ACC-001", "accessories", 5, 450}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	got, err := svc.Validate(context.Background(), service.ImportUpload{Body: buf.Bytes()})

	require.NoError(t, err)
	require.Len(t, got.Report.Valid, 1)
	assert.Equal(t, "ACC-001", got.Report.Valid[0].Record.SKU)
}

func validatedSession(t *testing.T, svc service.ImportService, deps importDeps) string {
	t.Helper()
	deps.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil).Maybe()
	deps.runs.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	got, err := svc.Validate(context.Background(), service.ImportUpload{FileName: "stock.csv", Body: []byte(stockCSV)})
	require.NoError(t, err)
	return got.Session.ID
}

func TestImportService_Submit_Success(t *testing.T) {
	svc, deps := newImportService(testImportConfig())
	id := validatedSession(t, svc, deps)

	deps.submitter.On("SubmitProducts", mock.Anything, mock.MatchedBy(func(ps []domain.Product) bool {
		return len(ps) == 2
	})).Return(&domain.SubmitResult{Successful: 2}, nil)

	res, err := svc.Submit(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, 2, res.Successful)
	snap, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.ImportStateCompleted, snap.State)
	assert.Equal(t, float64(1), testutil.ToFloat64(deps.metrics.ImportSubmissions.WithLabelValues("completed")))
	deps.runs.AssertNumberOfCalls(t, "Upsert", 2)
}

func TestImportService_Submit_Failure(t *testing.T) {
	svc, deps := newImportService(testImportConfig())
	id := validatedSession(t, svc, deps)

	deps.submitter.On("SubmitProducts", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.Submit(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrSubmissionFailed)
	snap, getErr := svc.Get(context.Background(), id)
	require.NoError(t, getErr)
	assert.Equal(t, domain.ImportStateFailed, snap.State)
	assert.Contains(t, snap.Error, "db down")
	assert.Equal(t, float64(1), testutil.ToFloat64(deps.metrics.ImportSubmissions.WithLabelValues("failed")))
}

func TestImportService_UnknownSession(t *testing.T) {
	svc, _ := newImportService(testImportConfig())

	_, err := svc.Submit(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, _, err = svc.Report(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImportService_Report(t *testing.T) {
	svc, deps := newImportService(testImportConfig())
	id := validatedSession(t, svc, deps)

	rep, name, err := svc.Report(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "stock.csv", name)
	assert.Equal(t, 3, rep.Total)
}

func TestImportService_SessionsExpire(t *testing.T) {
	svc, deps := newImportService(testImportConfig())
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	service.SetClock(svc, func() time.Time { return now })
	id := validatedSession(t, svc, deps)

	now = now.Add(30 * time.Minute)
	_, err := svc.Get(context.Background(), id)
	require.NoError(t, err)

	now = now.Add(61 * time.Minute)
	_, err = svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImportService_ListRuns(t *testing.T) {
	svc, deps := newImportService(testImportConfig())
	runs := []domain.ImportRun{{ID: "r1", State: domain.ImportStateCompleted}}
	deps.runs.On("ListRecent", mock.Anything, 10).Return(runs, nil)

	got, err := svc.ListRuns(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, runs, got)
}

func TestImportService_NilCollaborators(t *testing.T) {
	sub := new(mocks.MockProductSubmitter)
	svc := service.NewImportService(sub, nil, nil, nil, testImportConfig(), testS3Config())

	got, err := svc.Validate(context.Background(), service.ImportUpload{FileName: "stock.csv", Body: []byte(stockCSV)})
	require.NoError(t, err)

	runs, err := svc.ListRuns(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, runs)

	sub.On("SubmitProducts", mock.Anything, mock.Anything).Return(&domain.SubmitResult{Successful: 2}, nil)
	_, err = svc.Submit(context.Background(), got.Session.ID)
	assert.NoError(t, err)
}
