package response

import (
	"net/http"
	"testing"

	domainagg "github.com/lcamargo/catalog-backend/internal/domain/aggregates"
)

func TestStatusForCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code domainagg.ErrorCode
		want int
	}{
		{domainagg.CodeValidation, http.StatusUnprocessableEntity},
		{domainagg.CodeInvariantViolation, http.StatusUnprocessableEntity},
		{domainagg.CodePreconditionFailed, http.StatusUnprocessableEntity},
		{domainagg.CodeNotFound, http.StatusNotFound},
		{domainagg.CodeConflict, http.StatusConflict},
		{domainagg.CodeRetryable, http.StatusServiceUnavailable},
		{domainagg.CodeInternal, http.StatusInternalServerError},
		{domainagg.ErrorCode(""), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.code); got != tc.want {
			t.Fatalf("statusFor(%q): want=%d got=%d", tc.code, tc.want, got)
		}
	}
}
