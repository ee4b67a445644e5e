package aggregates

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lcamargo/catalog-backend/internal/platform/dbctx"
)

type spyHooks struct {
	mu        sync.Mutex
	observed  []string
	conflicts int
	retries   int
}

func (s *spyHooks) ObserveOperation(name, status string, _ time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observed = append(s.observed, name+"/"+status)
}

func (s *spyHooks) IncConflict(string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conflicts++
}

func (s *spyHooks) IncRetry(string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retries++
}

type stubRunner struct{}

func (stubRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	return fn(dbctx.Context{Ctx: ctx})
}

func TestExecuteWriteSuccessStatus(t *testing.T) {
	t.Parallel()

	hooks := &spyHooks{}
	deps := BaseDeps{Runner: stubRunner{}, Hooks: hooks}

	err := executeWrite(context.Background(), deps, "Test.Op", func(dbctx.Context) error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hooks.observed) != 1 || hooks.observed[0] != "Test.Op/success" {
		t.Fatalf("unexpected observations: %v", hooks.observed)
	}
}

func TestExecuteWriteConflictAccounting(t *testing.T) {
	t.Parallel()

	hooks := &spyHooks{}
	deps := BaseDeps{Runner: stubRunner{}, Hooks: hooks}

	err := executeWrite(context.Background(), deps, "Test.Op", func(dbctx.Context) error {
		return ConflictError("duplicate name")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if hooks.conflicts != 1 {
		t.Fatalf("conflicts: want=1 got=%d", hooks.conflicts)
	}
	if len(hooks.observed) != 1 || hooks.observed[0] != "Test.Op/conflict" {
		t.Fatalf("unexpected observations: %v", hooks.observed)
	}
}

func TestExecuteWriteRetryAccounting(t *testing.T) {
	t.Parallel()

	hooks := &spyHooks{}
	deps := BaseDeps{Runner: stubRunner{}, Hooks: hooks}

	err := executeWrite(context.Background(), deps, "Test.Op", func(dbctx.Context) error {
		return context.DeadlineExceeded
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if hooks.retries != 1 {
		t.Fatalf("retries: want=1 got=%d", hooks.retries)
	}
}

func TestExecuteWriteDefaultsOpName(t *testing.T) {
	t.Parallel()

	hooks := &spyHooks{}
	deps := BaseDeps{Runner: stubRunner{}, Hooks: hooks}

	if err := executeWrite(context.Background(), deps, "  ", func(dbctx.Context) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hooks.observed) != 1 || hooks.observed[0] != "aggregate.write/success" {
		t.Fatalf("unexpected observations: %v", hooks.observed)
	}
}
