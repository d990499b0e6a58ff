package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"petledger/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Validation failures carry the wrapped detail so callers see which field
// was rejected.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrRateOutOfRange):
		return http.StatusBadRequest, "RATE_OUT_OF_RANGE", err.Error()
	case errors.Is(err, domain.ErrClassificationRequired):
		return http.StatusBadRequest, "CLASSIFICATION_REQUIRED", err.Error()
	case errors.Is(err, domain.ErrInvalidTaxConfig):
		return http.StatusBadRequest, "INVALID_TAX_CONFIG", err.Error()
	case errors.Is(err, domain.ErrNoItemsSelected):
		return http.StatusBadRequest, "NO_ITEMS_SELECTED", "select at least one item"
	case errors.Is(err, domain.ErrInvalidItemID):
		return http.StatusBadRequest, "INVALID_ITEM_ID", err.Error()
	case errors.Is(err, domain.ErrBulkUpdateRequired):
		return http.StatusBadRequest, "BULK_UPDATE_REQUIRED", "set bulk_update to update several items at once"
	case errors.Is(err, domain.ErrEmptyPayload):
		return http.StatusBadRequest, "EMPTY_PAYLOAD", "import file is empty or has no header row"
	case errors.Is(err, domain.ErrTooManyRows):
		return http.StatusRequestEntityTooLarge, "TOO_MANY_ROWS", err.Error()
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: csv, tsv, txt, xlsx"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrNotValidated):
		return http.StatusConflict, "NOT_VALIDATED", "import has not been validated"
	case errors.Is(err, domain.ErrNothingToSubmit):
		return http.StatusUnprocessableEntity, "NOTHING_TO_SUBMIT", "import has no valid records to submit"
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return http.StatusConflict, "SUBMISSION_IN_PROGRESS", "import submission already in progress"
	case errors.Is(err, domain.ErrSubmissionFailed):
		return http.StatusBadGateway, "SUBMISSION_FAILED", "import submission failed; the batch can be submitted again"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] %s: %v", requestID, code, err)
	}
	RespondError(c, status, code, msg)
}
