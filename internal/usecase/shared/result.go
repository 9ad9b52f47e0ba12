package shared

// ResultKind classifies the outcome for the transport layer. It is not part
// of the serialized envelope; HTTP handlers use it to pick a status code
// without parsing messages.
type ResultKind int

const (
	KindSuccess ResultKind = iota
	KindInvalid
	KindNotFound
	KindBusinessRule
	KindFatal
)

// Result is the uniform envelope every use case returns. Success carries
// Data, failure carries Errors; Message is always set and human readable.
type Result struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Errors  []string       `json:"errors,omitempty"`
	Message string         `json:"message"`
	Kind    ResultKind     `json:"-"`
}

func OK(data map[string]any, message string) *Result {
	return &Result{
		Success: true,
		Data:    data,
		Message: message,
		Kind:    KindSuccess,
	}
}

// Invalid reports structural validation failures. No mutation was attempted.
func Invalid(errors []string, message string) *Result {
	return &Result{
		Success: false,
		Errors:  errors,
		Message: message,
		Kind:    KindInvalid,
	}
}

// BusinessRule reports a well-formed command that violates an invariant
// (quota, uniqueness, ownership, cycle, disallowed transition).
func BusinessRule(errors []string, message string) *Result {
	return &Result{
		Success: false,
		Errors:  errors,
		Message: message,
		Kind:    KindBusinessRule,
	}
}

func NotFound(message string) *Result {
	return &Result{
		Success: false,
		Errors:  []string{message},
		Message: message,
		Kind:    KindNotFound,
	}
}

// Fatal reports an unexpected failure: one generic message plus the
// original error text for the caller.
func Fatal(err error, message string) *Result {
	return &Result{
		Success: false,
		Errors:  []string{err.Error()},
		Message: message,
		Kind:    KindFatal,
	}
}
