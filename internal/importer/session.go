package importer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"petledger/internal/domain"
	"petledger/internal/port"
	"petledger/internal/validator/product"
)

// DefaultSubmitTimeout bounds a submission when no timeout is configured.
const DefaultSubmitTimeout = 60 * time.Second

// Session drives one import through
// Idle → FileSelected → Validated → Submitting → Completed | Failed.
// It is safe for concurrent use.
type Session struct {
	id        string
	validator *product.Validator
	submitter port.ProductSubmitter
	timeout   time.Duration

	mu        sync.Mutex
	state     domain.ImportState
	fileName  string
	batch     *Batch
	report    *Report
	result    *domain.SubmitResult
	lastErr   error
	updatedAt time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSubmitTimeout overrides DefaultSubmitTimeout.
func WithSubmitTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithValidator swaps the rule set used by Validate.
func WithValidator(v *product.Validator) SessionOption {
	return func(s *Session) { s.validator = v }
}

// WithID fixes the session id instead of generating one.
func WithID(id string) SessionOption {
	return func(s *Session) { s.id = id }
}

// NewSession returns an idle session that submits through submitter.
func NewSession(submitter port.ProductSubmitter, opts ...SessionOption) *Session {
	s := &Session{
		id:        uuid.New().String(),
		validator: product.New(),
		submitter: submitter,
		timeout:   DefaultSubmitTimeout,
		state:     domain.ImportStateIdle,
		updatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// SelectFile loads a new batch and discards everything from any earlier
// file, including a previous report or submission result. It is refused
// while a submission is in flight.
func (s *Session) SelectFile(name string, b *Batch) error {
	if b == nil {
		return domain.ErrEmptyPayload
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.ImportStateSubmitting {
		return domain.ErrSubmissionInFlight
	}
	s.fileName = name
	s.batch = b
	s.report = nil
	s.result = nil
	s.lastErr = nil
	s.setState(domain.ImportStateFileSelected)
	return nil
}

// Validate classifies the selected batch. It can be called again at any
// point after a file is selected and always starts from a fresh duplicate
// tracker.
func (s *Session) Validate() (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case domain.ImportStateIdle:
		return nil, domain.ErrNotValidated
	case domain.ImportStateSubmitting:
		return nil, domain.ErrSubmissionInFlight
	}
	s.report = ValidateBatch(s.validator, s.batch)
	s.result = nil
	s.lastErr = nil
	s.setState(domain.ImportStateValidated)
	return s.report, nil
}

// Submit hands the valid records to the submitter and reports its counts
// verbatim. A submitter error moves the session to Failed with one
// top-level error; the report is kept so Submit may be retried without
// validating again. The call is bounded by the session timeout and by ctx.
func (s *Session) Submit(ctx context.Context) (*domain.SubmitResult, error) {
	s.mu.Lock()
	switch s.state {
	case domain.ImportStateSubmitting:
		s.mu.Unlock()
		return nil, domain.ErrSubmissionInFlight
	case domain.ImportStateValidated, domain.ImportStateFailed:
	default:
		s.mu.Unlock()
		return nil, domain.ErrNotValidated
	}
	products := s.report.Products()
	if len(products) == 0 {
		s.mu.Unlock()
		return nil, domain.ErrNothingToSubmit
	}
	s.setState(domain.ImportStateSubmitting)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	res, err := s.submitter.SubmitProducts(ctx, products)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = fmt.Errorf("%w: %v", domain.ErrSubmissionFailed, err)
		s.setState(domain.ImportStateFailed)
		return nil, s.lastErr
	}
	if res == nil {
		res = &domain.SubmitResult{}
	}
	s.result = res
	s.lastErr = nil
	s.setState(domain.ImportStateCompleted)
	return res, nil
}

// Reset returns the session to Idle. It is refused while submitting.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.ImportStateSubmitting {
		return domain.ErrSubmissionInFlight
	}
	s.fileName = ""
	s.batch = nil
	s.report = nil
	s.result = nil
	s.lastErr = nil
	s.setState(domain.ImportStateIdle)
	return nil
}

func (s *Session) setState(st domain.ImportState) {
	s.state = st
	s.updatedAt = time.Now().UTC()
}

// Snapshot is a point-in-time copy of a session's observable state.
type Snapshot struct {
	ID        string               `json:"id"`
	State     domain.ImportState   `json:"state"`
	FileName  string               `json:"file_name,omitempty"`
	Rows      int                  `json:"rows"`
	Summary   *Summary             `json:"summary,omitempty"`
	Result    *domain.SubmitResult `json:"result,omitempty"`
	Error     string               `json:"error,omitempty"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:        s.id,
		State:     s.state,
		FileName:  s.fileName,
		UpdatedAt: s.updatedAt,
	}
	if s.batch != nil {
		snap.Rows = s.batch.Len()
	}
	if s.report != nil {
		sum := s.report.Summary()
		snap.Summary = &sum
	}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	if s.lastErr != nil {
		snap.Error = s.lastErr.Error()
	}
	return snap
}

// Report returns the latest validation report, or nil before validation.
func (s *Session) Report() *Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// State returns the current state.
func (s *Session) State() domain.ImportState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Run is the whole flow in one call: select, validate, submit. Nothing is
// submitted when the batch has no valid rows; the report is still returned.
func Run(ctx context.Context, submitter port.ProductSubmitter, text string, opts ...SessionOption) (*Report, *domain.SubmitResult, error) {
	b, err := ParseCSV(text)
	if err != nil {
		return nil, nil, err
	}
	s := NewSession(submitter, opts...)
	if err := s.SelectFile("", b); err != nil {
		return nil, nil, err
	}
	rep, err := s.Validate()
	if err != nil {
		return nil, nil, err
	}
	if len(rep.Valid) == 0 {
		return rep, &domain.SubmitResult{}, nil
	}
	res, err := s.Submit(ctx)
	return rep, res, err
}
