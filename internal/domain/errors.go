package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrInvalidTaxConfig       = errors.New("invalid tax configuration")
	ErrRateOutOfRange         = errors.New("tax rate must be between 0 and 100")
	ErrClassificationRequired = errors.New("classification code is required")
	ErrNoItemsSelected        = errors.New("no items selected")
	ErrInvalidItemID          = errors.New("invalid item id")
	ErrEmptyPayload           = errors.New("import payload is empty")
	ErrTooManyRows            = errors.New("import payload exceeds maximum row count")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrNotValidated           = errors.New("import has not been validated")
	ErrNothingToSubmit        = errors.New("import has no valid records to submit")
	ErrSubmissionInFlight     = errors.New("import submission already in progress")
	ErrSubmissionFailed       = errors.New("import submission failed")
	ErrBulkUpdateRequired     = errors.New("updating several items requires bulk_update")
)
