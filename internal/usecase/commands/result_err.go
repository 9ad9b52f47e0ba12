package commands

import (
	"errors"

	"universe-api/internal/infra"
	"universe-api/internal/usecase/shared"
)

// resultError smuggles an already-classified envelope out of a unit of
// work. Returning it aborts and rolls back the transaction; the use case
// then hands the wrapped Result straight to the caller.
type resultError struct {
	result *shared.Result
}

func (e *resultError) Error() string {
	return e.result.Message
}

func businessErr(violations []string, message string) error {
	return &resultError{result: shared.BusinessRule(violations, message)}
}

func notFoundErr(message string) error {
	return &resultError{result: shared.NotFound(message)}
}

// accessErr classifies a failed access check: a missing (or invisible)
// target is not-found, an ownership violation is a business-rule failure.
func accessErr(snap *shared.ResourceSnapshot, violations []string) error {
	if snap == nil {
		return notFoundErr(violations[0])
	}
	return businessErr(violations, "access denied")
}

func isNotFound(err error) bool {
	return infra.IsKind(err, infra.KindNotFound)
}

// duplicateSlugErr classifies a unique-index collision on insert. The
// rules check the slug first, but a concurrent create can still hit the
// constraint; both paths report the same business violation.
func duplicateSlugErr(err error, message string) error {
	if infra.IsKind(err, infra.KindDuplicateKey) {
		return businessErr([]string{"slug already in use"}, message)
	}
	return err
}

// resultFromErr turns a unit-of-work error into the outward envelope.
// Anything that is not a classified resultError is an infrastructure
// failure and maps to a fatal result with the given message.
func resultFromErr(err error, fatalMessage string) *shared.Result {
	var re *resultError
	if errors.As(err, &re) {
		return re.result
	}
	return shared.Fatal(err, fatalMessage)
}
