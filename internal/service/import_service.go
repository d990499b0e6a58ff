package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"petledger/internal/config"
	"petledger/internal/domain"
	"petledger/internal/importer"
	"petledger/internal/port"
	s3archive "petledger/internal/storage/s3"
	"petledger/internal/telemetry"
)

// ImportUpload is the DTO for an uploaded import file.
type ImportUpload struct {
	FileName    string
	ContentType string
	Body        []byte
}

// ImportValidation is what Validate returns: the session snapshot plus the
// full row-level report.
type ImportValidation struct {
	Session importer.Snapshot `json:"session"`
	Report  *importer.Report  `json:"report"`
}

// ImportService defines the bulk import contract.
type ImportService interface {
	Validate(ctx context.Context, upload ImportUpload) (*ImportValidation, error)
	Submit(ctx context.Context, sessionID string) (*domain.SubmitResult, error)
	Get(ctx context.Context, sessionID string) (*importer.Snapshot, error)
	Report(ctx context.Context, sessionID string) (*importer.Report, string, error)
	ListRuns(ctx context.Context, limit int) ([]domain.ImportRun, error)
}

type importEntry struct {
	session    *importer.Session
	archiveKey string
	createdAt  time.Time
	lastUsed   time.Time
}

type importService struct {
	submitter port.ProductSubmitter
	runs      port.ImportRunRepository
	storage   port.ObjectStorage
	metrics   *telemetry.Metrics
	importCfg config.ImportConfig
	s3Cfg     config.S3Config
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*importEntry
}

// NewImportService creates a new ImportService implementation. runs, storage
// and metrics may be nil.
func NewImportService(
	submitter port.ProductSubmitter,
	runs port.ImportRunRepository,
	storage port.ObjectStorage,
	metrics *telemetry.Metrics,
	importCfg config.ImportConfig,
	s3Cfg config.S3Config,
) ImportService {
	return &importService{
		submitter: submitter,
		runs:      runs,
		storage:   storage,
		metrics:   metrics,
		importCfg: importCfg,
		s3Cfg:     s3Cfg,
		now:       time.Now,
		sessions:  make(map[string]*importEntry),
	}
}

func (s *importService) Validate(ctx context.Context, upload ImportUpload) (*ImportValidation, error) {
	if len(bytes.TrimSpace(upload.Body)) == 0 {
		return nil, domain.ErrEmptyPayload
	}
	if limit := s.s3Cfg.MaxFileBytes(); limit > 0 && int64(len(upload.Body)) > limit {
		return nil, domain.ErrFileTooLarge
	}

	batch, err := importer.ParseFile(upload.FileName, upload.Body)
	if err != nil {
		return nil, err
	}
	if s.importCfg.MaxRows > 0 && batch.Len() > s.importCfg.MaxRows {
		return nil, fmt.Errorf("%w: %d rows, limit %d", domain.ErrTooManyRows, batch.Len(), s.importCfg.MaxRows)
	}

	sess := importer.NewSession(s.submitter, importer.WithSubmitTimeout(s.importCfg.SubmitTimeout))
	if err := sess.SelectFile(upload.FileName, batch); err != nil {
		return nil, err
	}
	report, err := sess.Validate()
	if err != nil {
		return nil, err
	}
	sum := report.Summary()
	s.metrics.ObserveImport(sum.Valid, sum.Invalid, sum.Warned)

	log.Printf("importService.Validate: session %s file %q rows=%d valid=%d invalid=%d warned=%d duplicates=%d",
		sess.ID(), upload.FileName, sum.Total, sum.Valid, sum.Invalid, sum.Warned, sum.Duplicates)

	now := s.now()
	entry := &importEntry{session: sess, createdAt: now, lastUsed: now}
	entry.archiveKey = s.archive(ctx, sess.ID(), upload)

	s.mu.Lock()
	s.sweepLocked(now)
	s.sessions[sess.ID()] = entry
	s.mu.Unlock()

	s.recordRun(ctx, entry)

	return &ImportValidation{Session: sess.Snapshot(), Report: report}, nil
}

// archive stores the raw upload. Failures are logged and the import goes on
// without an archive copy.
func (s *importService) archive(ctx context.Context, sessionID string, upload ImportUpload) string {
	if !s.importCfg.ArchiveUploads || s.storage == nil {
		return ""
	}
	key := s3archive.ImportKey(sessionID, upload.FileName)
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(upload.Body),
		ContentType: contentType,
		Size:        int64(len(upload.Body)),
	})
	if err != nil {
		log.Printf("importService.archive: session %s: %v", sessionID, err)
		return ""
	}
	return key
}

func (s *importService) lookup(sessionID string) (*importEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)
	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	entry.lastUsed = now
	return entry, nil
}

// sweepLocked drops sessions idle for longer than the configured TTL.
// Sessions mid-submission are kept.
func (s *importService) sweepLocked(now time.Time) {
	ttl := s.importCfg.SessionTTL
	if ttl <= 0 {
		return
	}
	for id, e := range s.sessions {
		if now.Sub(e.lastUsed) > ttl && e.session.State() != domain.ImportStateSubmitting {
			delete(s.sessions, id)
		}
	}
}

func (s *importService) Submit(ctx context.Context, sessionID string) (*domain.SubmitResult, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	start := s.now()
	res, err := entry.session.Submit(ctx)
	elapsed := s.now().Sub(start).Seconds()

	switch {
	case err == nil:
		s.metrics.ObserveSubmission("completed", res.Successful, res.Failed, elapsed)
		log.Printf("importService.Submit: session %s completed successful=%d failed=%d",
			sessionID, res.Successful, res.Failed)
	case entry.session.State() == domain.ImportStateFailed:
		s.metrics.ObserveSubmission("failed", 0, 0, elapsed)
		log.Printf("importService.Submit: session %s failed: %v", sessionID, err)
	default:
		return nil, err
	}

	s.recordRun(ctx, entry)
	return res, err
}

func (s *importService) Get(_ context.Context, sessionID string) (*importer.Snapshot, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	snap := entry.session.Snapshot()
	return &snap, nil
}

func (s *importService) Report(_ context.Context, sessionID string) (*importer.Report, string, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, "", err
	}
	rep := entry.session.Report()
	if rep == nil {
		return nil, "", domain.ErrNotValidated
	}
	return rep, entry.session.Snapshot().FileName, nil
}

func (s *importService) ListRuns(ctx context.Context, limit int) ([]domain.ImportRun, error) {
	if s.runs == nil {
		return []domain.ImportRun{}, nil
	}
	return s.runs.ListRecent(ctx, limit)
}

// recordRun writes the session's audit row. It never fails the caller.
func (s *importService) recordRun(ctx context.Context, entry *importEntry) {
	if s.runs == nil {
		return
	}
	snap := entry.session.Snapshot()
	run := &domain.ImportRun{
		ID:           snap.ID,
		FileName:     snap.FileName,
		ArchiveKey:   entry.archiveKey,
		State:        snap.State,
		TotalRows:    snap.Rows,
		ErrorMessage: snap.Error,
		CreatedAt:    entry.createdAt,
	}
	if snap.Summary != nil {
		run.ValidRows = snap.Summary.Valid
		run.InvalidRows = snap.Summary.Invalid
		run.WarnedRows = snap.Summary.Warned
	}
	if snap.Result != nil {
		run.Successful = snap.Result.Successful
		run.Failed = snap.Result.Failed
	}
	if err := s.runs.Upsert(ctx, run); err != nil {
		log.Printf("importService.recordRun: session %s: %v", snap.ID, err)
	}
}
