package executor

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/danieljhkim/sbplan/internal/backend"
	"github.com/danieljhkim/sbplan/internal/catalog"
	"github.com/danieljhkim/sbplan/internal/clock"
	"github.com/danieljhkim/sbplan/internal/planner"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func testPlan(entries ...planner.Entry) *planner.Plan {
	return &planner.Plan{Action: entries[len(entries)-1].Action, Entries: entries}
}

func e(name string, action planner.Action, included bool) planner.Entry {
	return planner.Entry{Package: catalog.Package{Name: name}, Action: action, Included: included}
}

func newTestExecutor(b backend.Backend) *Executor {
	clk := clock.NewFakeClock(epoch)
	clk.Step = time.Second
	return New(b, clk)
}

func TestRun_DispatchesByAction(t *testing.T) {
	fake := backend.NewFake()
	plan := testPlan(
		e("a", planner.ActionInstall, true),
		e("b", planner.ActionUpgrade, true),
		e("c", planner.ActionReinstall, true),
		e("d", planner.ActionReinstall, false),
		e("e", planner.ActionRemove, true),
		e("target", planner.ActionInstall, true),
	)

	result, err := newTestExecutor(fake).Run(context.Background(), plan, Hooks{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []backend.Call{
		{Op: backend.OpInstall, Package: "a"},
		{Op: backend.OpUpgrade, Package: "b"},
		{Op: backend.OpInstall, Package: "c"},
		{Op: backend.OpRemove, Package: "e"},
		{Op: backend.OpInstall, Package: "target"},
	}
	if !reflect.DeepEqual(fake.Calls, want) {
		t.Errorf("calls = %+v, want %+v", fake.Calls, want)
	}
	if result.Outcome != OutcomeCompleted {
		t.Errorf("Outcome = %s, want %s", result.Outcome, OutcomeCompleted)
	}
	if len(result.Entries) != 5 {
		t.Errorf("got %d entry results, skipped entries must not appear", len(result.Entries))
	}
	if len(result.Succeeded()) != 5 || len(result.Failed()) != 0 {
		t.Errorf("Succeeded/Failed = %d/%d", len(result.Succeeded()), len(result.Failed()))
	}
}

func TestRun_MissingBackendIsFatal(t *testing.T) {
	fake := backend.NewFake().Fail("Y", backend.StatusMissing)
	plan := testPlan(
		e("X", planner.ActionInstall, true),
		e("Y", planner.ActionInstall, true),
		e("Z", planner.ActionInstall, true),
	)

	decided := false
	result, err := newTestExecutor(fake).Run(context.Background(), plan, Hooks{
		Decide: func(Failure) Decision {
			decided = true
			return Continue
		},
	})

	if !errors.Is(err, ErrBackendMissing) {
		t.Fatalf("Run() error = %v, want ErrBackendMissing", err)
	}
	if decided {
		t.Error("a missing backend must not ask for a decision")
	}
	if result.Outcome != OutcomeAbortedMissingBackend {
		t.Errorf("Outcome = %s", result.Outcome)
	}
	if len(result.Succeeded()) != 1 || result.Succeeded()[0].Entry.Name() != "X" {
		t.Errorf("Succeeded() = %+v, want only X", result.Succeeded())
	}
	if result.Unattempted != 1 {
		t.Errorf("Unattempted = %d, want 1", result.Unattempted)
	}
	if got := fake.Names(); !reflect.DeepEqual(got, []string{"X", "Y"}) {
		t.Errorf("attempted %v, want [X Y]", got)
	}
}

func TestRun_SoftFailureDecision(t *testing.T) {
	tests := []struct {
		name            string
		decision        Decision
		wantErr         error
		wantOutcome     Outcome
		wantUnattempted int
		wantCalls       []string
	}{
		{
			name:            "abort",
			decision:        Abort,
			wantErr:         ErrAborted,
			wantOutcome:     OutcomeAbortedEarly,
			wantUnattempted: 1,
			wantCalls:       []string{"X"},
		},
		{
			name:        "continue",
			decision:    Continue,
			wantOutcome: OutcomeCompleted,
			wantCalls:   []string{"X", "Y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := backend.NewFake().Fail("X", backend.StatusFailed)
			plan := testPlan(
				e("X", planner.ActionInstall, true),
				e("Y", planner.ActionInstall, true),
			)

			var failures []Failure
			result, err := newTestExecutor(fake).Run(context.Background(), plan, Hooks{
				Decide: func(f Failure) Decision {
					failures = append(failures, f)
					return tt.decision
				},
			})

			if tt.wantErr == nil && err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if result.Outcome != tt.wantOutcome {
				t.Errorf("Outcome = %s, want %s", result.Outcome, tt.wantOutcome)
			}
			if result.Unattempted != tt.wantUnattempted {
				t.Errorf("Unattempted = %d, want %d", result.Unattempted, tt.wantUnattempted)
			}
			if !reflect.DeepEqual(fake.Names(), tt.wantCalls) {
				t.Errorf("attempted %v, want %v", fake.Names(), tt.wantCalls)
			}
			if len(failures) != 1 || failures[0].Entry.Name() != "X" || failures[0].Remaining != 1 {
				t.Errorf("failures = %+v", failures)
			}
		})
	}
}

func TestRun_AbortErrorCarriesOperation(t *testing.T) {
	fake := backend.NewFake().Fail("X", backend.ExitStatus(2))
	plan := testPlan(e("X", planner.ActionUpgrade, true), e("Y", planner.ActionUpgrade, true))

	_, err := newTestExecutor(fake).Run(context.Background(), plan, Hooks{})

	var opErr *OperationFailedError
	if !errors.As(err, &opErr) {
		t.Fatalf("Run() error = %v, want *OperationFailedError", err)
	}
	if opErr.Package != "X" || opErr.Action != planner.ActionUpgrade || opErr.Status != 2 {
		t.Errorf("OperationFailedError = %+v", opErr)
	}
	if !errors.Is(err, ErrOperationFailed) || !errors.Is(err, ErrAborted) {
		t.Errorf("error %v should match ErrAborted and ErrOperationFailed", err)
	}
}

func TestRun_LastEntryFailureFinishesWithoutPrompt(t *testing.T) {
	fake := backend.NewFake().Fail("target", backend.StatusFailed)
	plan := testPlan(
		e("dep", planner.ActionInstall, true),
		e("skipped", planner.ActionReinstall, false),
		e("target", planner.ActionInstall, true),
	)

	result, err := newTestExecutor(fake).Run(context.Background(), plan, Hooks{
		Decide: func(Failure) Decision {
			t.Error("Decide must not be called when nothing is left to attempt")
			return Abort
		},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Outcome != OutcomeCompleted {
		t.Errorf("Outcome = %s", result.Outcome)
	}
	failed := result.Failed()
	if len(failed) != 1 || failed[0].Entry.Name() != "target" || failed[0].Status != backend.StatusFailed {
		t.Errorf("Failed() = %+v", failed)
	}
}

func TestRun_NilDecideAborts(t *testing.T) {
	fake := backend.NewFake().Fail("a", backend.StatusFailed)
	plan := testPlan(
		e("a", planner.ActionInstall, true),
		e("b", planner.ActionInstall, true),
		e("c", planner.ActionInstall, true),
	)

	result, err := newTestExecutor(fake).Run(context.Background(), plan, Hooks{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("Run() error = %v, want ErrAborted", err)
	}
	if result.Unattempted != 2 {
		t.Errorf("Unattempted = %d, want 2", result.Unattempted)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	fake := backend.NewFake()
	plan := testPlan(e("a", planner.ActionInstall, true), e("b", planner.ActionInstall, true))

	ctx, cancel := context.WithCancel(context.Background())
	hooks := Hooks{
		OnFinish: func(EntryResult) { cancel() },
	}

	result, err := newTestExecutor(fake).Run(ctx, plan, hooks)
	if !errors.Is(err, ErrAborted) || !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Outcome != OutcomeAbortedEarly || result.Unattempted != 1 {
		t.Errorf("result = %+v", result)
	}
	if !reflect.DeepEqual(fake.Names(), []string{"a"}) {
		t.Errorf("attempted %v", fake.Names())
	}
}

// cancellingBackend cancels the run from inside an install, as an interrupt
// arriving while a build is in progress would.
type cancellingBackend struct {
	*backend.Fake
	cancel    context.CancelFunc
	sawCancel bool
}

func (b *cancellingBackend) Install(ctx context.Context, pkg *catalog.Package) backend.ExitStatus {
	b.cancel()
	if ctx.Err() != nil {
		b.sawCancel = true
	}
	return b.Fake.Install(ctx, pkg)
}

func TestRun_CancelDuringEntry(t *testing.T) {
	tests := []struct {
		name   string
		status backend.ExitStatus
	}{
		{"operation succeeds", backend.StatusOK},
		{"operation fails", backend.StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			b := &cancellingBackend{Fake: backend.NewFake().Fail("a", tt.status), cancel: cancel}
			plan := testPlan(e("a", planner.ActionInstall, true), e("b", planner.ActionInstall, true))

			result, err := newTestExecutor(b).Run(ctx, plan, Hooks{
				Decide: func(Failure) Decision {
					t.Error("Decide must not be called after the run was cancelled")
					return Continue
				},
			})

			if !errors.Is(err, ErrAborted) || !errors.Is(err, context.Canceled) {
				t.Fatalf("Run() error = %v", err)
			}
			if b.sawCancel {
				t.Error("backend call received a cancelled context")
			}
			if result.Outcome != OutcomeAbortedEarly || result.Unattempted != 1 {
				t.Errorf("result = %+v", result)
			}
			if len(result.Entries) != 1 || result.Entries[0].Status != tt.status {
				t.Errorf("entries = %+v", result.Entries)
			}
			if !reflect.DeepEqual(b.Names(), []string{"a"}) {
				t.Errorf("attempted %v", b.Names())
			}
		})
	}
}

func TestRun_CancelDoesNotKillShellCommand(t *testing.T) {
	sh := backend.NewShell(backend.ShellConfig{
		Manager:  "test",
		Commands: backend.Commands{Install: "sleep 0.3; true"},
		Stdin:    strings.NewReader(""),
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	})
	plan := testPlan(e("a", planner.ActionInstall, true), e("b", planner.ActionInstall, true))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	timer := time.AfterFunc(50*time.Millisecond, cancel)
	defer timer.Stop()

	decided := false
	result, err := New(sh, &clock.RealClock{}).Run(ctx, plan, Hooks{
		Decide: func(Failure) Decision {
			decided = true
			return Continue
		},
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v", err)
	}
	if decided {
		t.Error("Decide was called for a cancelled run")
	}
	if len(result.Entries) != 1 || !result.Entries[0].Success() {
		t.Errorf("entries = %+v, want one successful entry", result.Entries)
	}
	if result.Outcome != OutcomeAbortedEarly || result.Unattempted != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestRun_HooksAndTiming(t *testing.T) {
	fake := backend.NewFake()
	plan := testPlan(
		e("a", planner.ActionInstall, true),
		e("b", planner.ActionInstall, false),
		e("c", planner.ActionInstall, true),
	)

	type start struct {
		n, total int
		name     string
	}
	var starts []start
	var finished []EntryResult

	result, err := newTestExecutor(fake).Run(context.Background(), plan, Hooks{
		OnStart: func(n, total int, entry planner.Entry) {
			starts = append(starts, start{n, total, entry.Name()})
		},
		OnFinish: func(r EntryResult) { finished = append(finished, r) },
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantStarts := []start{{1, 2, "a"}, {2, 2, "c"}}
	if !reflect.DeepEqual(starts, wantStarts) {
		t.Errorf("starts = %+v, want %+v", starts, wantStarts)
	}
	if !reflect.DeepEqual(finished, result.Entries) {
		t.Errorf("OnFinish results differ from Result.Entries")
	}

	if !result.Entries[0].StartedAt.Equal(epoch) {
		t.Errorf("first StartedAt = %v, want %v", result.Entries[0].StartedAt, epoch)
	}
	if !result.Entries[1].StartedAt.Equal(epoch.Add(time.Second)) {
		t.Errorf("second StartedAt = %v", result.Entries[1].StartedAt)
	}
	for _, r := range result.Entries {
		if r.Duration != time.Second {
			t.Errorf("%s Duration = %v, want 1s", r.Entry.Name(), r.Duration)
		}
	}
}
