package task

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestRun_ProgressThenOutcome(t *testing.T) {
	const total = 5

	tk := Run(context.Background(), KindExportDir, func(ctx context.Context, r Reporter) error {
		for i := 1; i <= total; i++ {
			r.Report(Progress{Completed: i, Total: total, Message: fmt.Sprintf("Saved %d of %d classes", i, total)})
		}
		return nil
	})

	var events []Progress
	outcome := tk.Wait(func(p Progress) {
		events = append(events, p)
	})

	if !outcome.Success() {
		t.Fatalf("unexpected failure: %v", outcome.Err)
	}
	if len(events) != total {
		t.Fatalf("expected %d events, got %d", total, len(events))
	}
	for i, p := range events {
		if p.Completed != i+1 {
			t.Errorf("event %d: Completed = %d, want %d", i, p.Completed, i+1)
		}
		if p.Total != total {
			t.Errorf("event %d: Total = %d, want %d", i, p.Total, total)
		}
		if p.Completed > p.Total {
			t.Errorf("event %d: Completed %d exceeds Total %d", i, p.Completed, p.Total)
		}
	}
}

func TestRun_FailureAfterKEntries(t *testing.T) {
	const k = 3
	boom := errors.New("disk full")

	tk := Run(context.Background(), KindExportArchive, func(ctx context.Context, r Reporter) error {
		for i := 1; i <= k; i++ {
			r.Report(Progress{Completed: i, Total: 10})
		}
		return boom
	})

	count := 0
	outcome := tk.Wait(func(Progress) { count++ })

	if outcome.Success() {
		t.Fatal("expected failure outcome")
	}
	if !errors.Is(outcome.Err, boom) {
		t.Errorf("outcome error = %v, want %v", outcome.Err, boom)
	}
	if count != k {
		t.Errorf("expected exactly %d events before failure, got %d", k, count)
	}
}

func TestRun_EventsCloseBeforeOutcome(t *testing.T) {
	tk := Run(context.Background(), KindDecompile, func(ctx context.Context, r Reporter) error {
		r.Report(Progress{Message: "working"})
		return nil
	})

	// The outcome must not be observable until the events channel closed.
	for range tk.Events() {
	}
	select {
	case o, ok := <-tk.Done():
		if !ok {
			t.Fatal("done channel closed without an outcome")
		}
		if !o.Success() {
			t.Errorf("unexpected failure: %v", o.Err)
		}
	case <-time.After(time.Second):
		t.Fatal("no outcome after events drained")
	}

	// Exactly one outcome: the channel is closed afterwards.
	if _, ok := <-tk.Done(); ok {
		t.Error("expected done channel to be closed after the outcome")
	}
}

func TestRun_PanicBecomesFailure(t *testing.T) {
	tk := Run(context.Background(), KindDecompile, func(ctx context.Context, r Reporter) error {
		panic("engine exploded")
	})

	outcome := tk.Wait(nil)
	if outcome.Success() {
		t.Fatal("expected panic to surface as failure")
	}
	if got := outcome.Err.Error(); got == "" {
		t.Error("expected a descriptive error message")
	}
}

func TestRun_ContextVisibleToBody(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tk := Run(ctx, KindExportDir, func(ctx context.Context, r Reporter) error {
		return ctx.Err()
	})

	outcome := tk.Wait(nil)
	if !errors.Is(outcome.Err, context.Canceled) {
		t.Errorf("outcome error = %v, want context.Canceled", outcome.Err)
	}
}

func TestKind_String(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{KindDecompile, "decompile"},
		{KindExportDir, "export-dir"},
		{KindExportArchive, "export-archive"},
		{Kind(99), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}
