package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventory/internal/domain"
)

// Postgres SQLSTATE codes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pqCode(err error) (pq.ErrorCode, string) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code, pqErr.Constraint
	}
	return "", ""
}

func isUniqueViolation(err error) bool {
	code, _ := pqCode(err)
	return code == codeUniqueViolation
}

// translate maps constraint violations to domain errors; other errors are returned unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	code, constraint := pqCode(err)
	switch code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrConflict, constraint)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: referenced record does not exist (%s)", domain.ErrInvalidInput, constraint)
	case codeCheckViolation:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, constraint)
	}
	return err
}
