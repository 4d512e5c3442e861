// Package error defines domain-specific errors for the reconciliation system.
package error

import "errors"

// Ingestion domain errors.
var (
	// ErrSourceFileMissing is returned when a configured source file does not exist.
	ErrSourceFileMissing = errors.New("source file missing")

	// ErrMalformedHeader is returned when a source file's header row does not
	// contain the expected columns.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrUnknownDocumentType is returned when a PDF is not a recognized
	// statement layout.
	ErrUnknownDocumentType = errors.New("unknown document type")

	// ErrStatementIncomplete is returned when required statement fields could
	// not be extracted.
	ErrStatementIncomplete = errors.New("statement extraction incomplete")

	// ErrFilterRuleInvalid is returned when a filter rule file cannot be parsed.
	ErrFilterRuleInvalid = errors.New("invalid filter rules")
)

// IngestErrorCode defines error codes for ingestion errors.
// Format: ING-XXYYYY where XX is category and YYYY is specific error.
type IngestErrorCode string

const (
	ErrCodeSourceFileMissing   IngestErrorCode = "ING-010001"
	ErrCodeMalformedHeader     IngestErrorCode = "ING-010002"
	ErrCodeUnknownDocumentType IngestErrorCode = "ING-010003"
	ErrCodeStatementIncomplete IngestErrorCode = "ING-010004"
	ErrCodeFilterRuleInvalid   IngestErrorCode = "ING-010005"
)

// IngestError represents an ingestion error with code and message.
type IngestError struct {
	Code    IngestErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *IngestError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *IngestError) Unwrap() error {
	return e.Err
}

// NewIngestError wraps an ingestion sentinel with context. The wrapped
// sentinel stays visible to errors.Is; the code is derived from it.
func NewIngestError(err error, message string) *IngestError {
	return &IngestError{
		Code:    codeFor(err),
		Message: message,
		Err:     err,
	}
}

func codeFor(err error) IngestErrorCode {
	switch err {
	case ErrSourceFileMissing:
		return ErrCodeSourceFileMissing
	case ErrMalformedHeader:
		return ErrCodeMalformedHeader
	case ErrUnknownDocumentType:
		return ErrCodeUnknownDocumentType
	case ErrStatementIncomplete:
		return ErrCodeStatementIncomplete
	case ErrFilterRuleInvalid:
		return ErrCodeFilterRuleInvalid
	default:
		return ""
	}
}
