package aggregates

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/lcamargo/catalog-backend/internal/domain/aggregates"
)

func TestMapErrorNil(t *testing.T) {
	t.Parallel()
	if got := MapError("op", nil); got != nil {
		t.Fatalf("want nil, got=%v", got)
	}
}

func TestMapErrorPassesThroughDomainErrors(t *testing.T) {
	t.Parallel()
	src := domainagg.NewError(domainagg.CodeNotFound, "Catalog.Video.Update", "video not found", nil)
	if got := MapError("other.op", src); got != src {
		t.Fatalf("domain error must pass through unchanged, got=%v", got)
	}
}

func TestMapErrorSentinels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want domainagg.ErrorCode
	}{
		{"validation", ValidationError("bad input"), domainagg.CodeValidation},
		{"invariant", InvariantError("broken rule"), domainagg.CodeInvariantViolation},
		{"conflict", ConflictError("duplicate"), domainagg.CodeConflict},
		{"storage", StorageError("put failed", errors.New("io")), domainagg.CodeInternal},
		{"record_not_found", gorm.ErrRecordNotFound, domainagg.CodeNotFound},
		{"canceled", context.Canceled, domainagg.CodeRetryable},
		{"deadline", context.DeadlineExceeded, domainagg.CodeRetryable},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := MapError("op", tc.err)
			if code := domainagg.CodeOf(got); code != tc.want {
				t.Fatalf("code: want=%q got=%q", tc.want, code)
			}
		})
	}
}

func TestMapErrorPostgresCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		pgCode string
		want   domainagg.ErrorCode
	}{
		{"23505", domainagg.CodeConflict},
		{"23503", domainagg.CodePreconditionFailed},
		{"40001", domainagg.CodeRetryable},
		{"40P01", domainagg.CodeRetryable},
		{"55P03", domainagg.CodeRetryable},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.pgCode, func(t *testing.T) {
			t.Parallel()
			err := &pgconn.PgError{Code: tc.pgCode, Message: "pg failure"}
			got := MapError("op", err)
			if code := domainagg.CodeOf(got); code != tc.want {
				t.Fatalf("code: want=%q got=%q", tc.want, code)
			}
		})
	}
}

func TestMapErrorMessageFallbacks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		msg  string
		want domainagg.ErrorCode
	}{
		{"sqlite_fk", "FOREIGN KEY constraint failed", domainagg.CodePreconditionFailed},
		{"duplicate", "duplicate key value violates unique constraint", domainagg.CodeConflict},
		{"deadlock", "deadlock detected", domainagg.CodeRetryable},
		{"unknown", "something odd happened", domainagg.CodeInternal},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := MapError("op", errors.New(tc.msg))
			if code := domainagg.CodeOf(got); code != tc.want {
				t.Fatalf("code: want=%q got=%q", tc.want, code)
			}
		})
	}
}

func TestMapErrorPreservesCause(t *testing.T) {
	t.Parallel()

	cause := &pgconn.PgError{Code: "23503", Message: "fk"}
	got := MapError("op", cause)

	var pgErr *pgconn.PgError
	if !errors.As(got, &pgErr) {
		t.Fatalf("cause lost: %v", got)
	}
}
