package sitetrans

import "fmt"

// joinCause renders msg, appending the cause when one is present.
func joinCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return msg + ": " + cause.Error()
}

// TranslationError is the base error type for pipeline failures.
type TranslationError struct {
	Message string
	Cause   error
}

func (e *TranslationError) Error() string { return joinCause(e.Message, e.Cause) }
func (e *TranslationError) Unwrap() error { return e.Cause }

// ProviderError indicates a translation service failure. RateLimited marks
// the service's throttle signal, which the retry loop treats separately from
// generic transient failures; Retryable marks transport-level failures worth
// another attempt. A ProviderError with neither flag set is fatal.
type ProviderError struct {
	Message     string
	Cause       error
	RateLimited bool // service signalled its request-rate limit
	Retryable   bool // transient transport/service failure
}

func (e *ProviderError) Error() string { return joinCause("provider error: "+e.Message, e.Cause) }
func (e *ProviderError) Unwrap() error { return e.Cause }

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string { return joinCause("cache error: "+e.Message, e.Cause) }
func (e *CacheError) Unwrap() error { return e.Cause }

// ProcessorError indicates a document processing failure (read, parse or
// serialize). Path names the document when known.
type ProcessorError struct {
	Message string
	Cause   error
	Path    string
}

func (e *ProcessorError) Error() string {
	msg := "processor error"
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	return joinCause(msg+": "+e.Message, e.Cause)
}

func (e *ProcessorError) Unwrap() error { return e.Cause }

// CountMismatchError indicates the translation service returned a different
// number of translations than texts sent. Reinsertion is positional, so a
// mismatched batch is never applied.
type CountMismatchError struct {
	Expected int
	Got      int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("translation count mismatch: expected %d, got %d", e.Expected, e.Got)
}
