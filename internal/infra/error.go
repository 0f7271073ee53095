package infra

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"lendhub/internal/pkg/errs"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

func WrapRepoErr(kind RepositoryErrorKind, msg string, err error) error {
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound     RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure    RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey RepositoryErrorKind = "DUPLICATE_KEY"
	// KindUnavailable flags an optional table that is absent from the
	// schema; callers degrade instead of failing the whole request.
	KindUnavailable RepositoryErrorKind = "UNAVAILABLE"
)

const (
	pgErrCodeUniqueViolation = "23505"
	pgErrCodeUndefinedTable  = "42P01"
)

// ClassifyErr maps a pgx error to a RepositoryError with the matching
// kind. msg names the operation that failed.
func ClassifyErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return WrapRepoErr(KindNotFound, msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return WrapRepoErr(KindDuplicateKey, msg, err)
		case pgErrCodeUndefinedTable:
			slog.Warn("optional table missing, degrading", "operation", msg, "table_hint", pgErr.Message)
			return WrapRepoErr(KindUnavailable, msg, err)
		}
	}
	return WrapRepoErr(KindDBFailure, msg, err)
}
