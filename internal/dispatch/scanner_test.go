package dispatch_test

import (
	"context"
	"testing"
	"time"

	"tasknotify/internal/directory"
	"tasknotify/internal/dispatch"
	"tasknotify/internal/logging"
	"tasknotify/internal/store"
	"tasknotify/internal/testsupport"
)

func newScanner(t *testing.T) (*store.Store, *recordingGateway, *dispatch.Scanner) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	gateway := &recordingGateway{failTokens: map[string]bool{}}
	resolver := directory.NewResolver(st, logging.NewNop())
	dispatcher := dispatch.New(resolver, gateway, pipelineOpts, logging.NewNop())
	scanner := dispatch.NewScanner(cfg, st, dispatcher, logging.NewNop())
	return st, gateway, scanner
}

func TestTickSendsDueSoonReminder(t *testing.T) {
	st, gateway, scanner := newScanner(t)
	now := time.Now().UTC()
	due := now.Add(40 * time.Minute)

	testsupport.SeedTask(t, st, store.Task{ID: "t1", Title: "Write report", AssignedTo: "alice", CreatedBy: "carol", DueDate: &due})
	testsupport.SeedUser(t, st, "alice", "TOK1")

	summary := scanner.Tick(context.Background(), now)
	if summary.Matched != 1 || summary.Sent != 1 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %#v", summary)
	}

	sent := gateway.messages()
	if len(sent) != 1 {
		t.Fatalf("expected exactly one message, got %d", len(sent))
	}
	msg := sent[0]
	if msg.Token != "TOK1" {
		t.Errorf("token = %q, want TOK1", msg.Token)
	}
	if msg.Data["taskId"] != "t1" || msg.Data["type"] != "due_soon" {
		t.Errorf("unexpected data: %#v", msg.Data)
	}
	if msg.Body != `Task "Write report" is due in about 1 hour!` {
		t.Errorf("unexpected body: %q", msg.Body)
	}
}

func TestTickWindowBoundaries(t *testing.T) {
	st, gateway, scanner := newScanner(t)
	now := time.Now().UTC()
	testsupport.SeedUser(t, st, "alice", "TOK1")

	past := now.Add(-5 * time.Minute)
	exactlyNow := now
	inWindow := now.Add(time.Hour)
	beyond := now.Add(time.Hour + time.Minute)

	testsupport.SeedTask(t, st, store.Task{ID: "past", Title: "Past", AssignedTo: "alice", CreatedBy: "bob", DueDate: &past})
	testsupport.SeedTask(t, st, store.Task{ID: "now", Title: "Now", AssignedTo: "alice", CreatedBy: "bob", DueDate: &exactlyNow})
	testsupport.SeedTask(t, st, store.Task{ID: "edge", Title: "Edge", AssignedTo: "alice", CreatedBy: "bob", DueDate: &inWindow})
	testsupport.SeedTask(t, st, store.Task{ID: "far", Title: "Far", AssignedTo: "alice", CreatedBy: "bob", DueDate: &beyond})
	testsupport.SeedTask(t, st, store.Task{ID: "undated", Title: "Undated", AssignedTo: "alice", CreatedBy: "bob"})

	summary := scanner.Tick(context.Background(), now)
	if summary.Scanned != 5 {
		t.Fatalf("expected 5 scanned, got %d", summary.Scanned)
	}
	if summary.Matched != 1 || summary.Sent != 1 {
		t.Fatalf("expected only the window-edge task to match, got %#v", summary)
	}
	sent := gateway.messages()
	if len(sent) != 1 || sent[0].Data["taskId"] != "edge" {
		t.Fatalf("unexpected deliveries: %#v", sent)
	}
}

func TestTickSkipsCompletedTasks(t *testing.T) {
	st, gateway, scanner := newScanner(t)
	now := time.Now().UTC()
	due := now.Add(30 * time.Minute)

	testsupport.SeedTask(t, st, store.Task{ID: "done", Title: "Done", AssignedTo: "alice", CreatedBy: "bob", Completed: true, DueDate: &due})
	testsupport.SeedUser(t, st, "alice", "TOK1")

	summary := scanner.Tick(context.Background(), now)
	if summary.Matched != 0 || len(gateway.messages()) != 0 {
		t.Fatalf("completed task must not be reminded: %#v", summary)
	}
}

func TestTickIsolatesFailures(t *testing.T) {
	st, gateway, scanner := newScanner(t)
	now := time.Now().UTC()
	dueA := now.Add(20 * time.Minute)
	dueB := now.Add(25 * time.Minute)
	dueC := now.Add(30 * time.Minute)

	testsupport.SeedTask(t, st, store.Task{ID: "a", Title: "A", AssignedTo: "failing", CreatedBy: "bob", DueDate: &dueA})
	testsupport.SeedTask(t, st, store.Task{ID: "b", Title: "B", AssignedTo: "tokenless", CreatedBy: "bob", DueDate: &dueB})
	testsupport.SeedTask(t, st, store.Task{ID: "c", Title: "C", AssignedTo: "alice", CreatedBy: "bob", DueDate: &dueC})
	testsupport.SeedUser(t, st, "failing", "BAD")
	testsupport.SeedUser(t, st, "tokenless", "")
	testsupport.SeedUser(t, st, "alice", "TOK1")
	gateway.failTokens["BAD"] = true

	summary := scanner.Tick(context.Background(), now)
	if summary.Matched != 3 {
		t.Fatalf("expected 3 matched, got %#v", summary)
	}
	if summary.Sent != 1 || summary.Skipped != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected outcome split: %#v", summary)
	}

	sent := gateway.messages()
	if len(sent) != 1 || sent[0].Data["taskId"] != "c" {
		t.Fatalf("expected only task c delivered, got %#v", sent)
	}
}

func TestTickRepeatsWhileInWindow(t *testing.T) {
	st, gateway, scanner := newScanner(t)
	now := time.Now().UTC()
	due := now.Add(50 * time.Minute)

	testsupport.SeedTask(t, st, store.Task{ID: "t1", Title: "Sticky", AssignedTo: "alice", CreatedBy: "bob", DueDate: &due})
	testsupport.SeedUser(t, st, "alice", "TOK1")

	// Two ticks both observe the task inside the window; each observing
	// tick sends its own reminder.
	scanner.Tick(context.Background(), now)
	scanner.Tick(context.Background(), now.Add(30*time.Minute))

	if got := len(gateway.messages()); got != 2 {
		t.Fatalf("expected a reminder per tick, got %d", got)
	}
}

func TestLastSummaryTracksTicks(t *testing.T) {
	_, _, scanner := newScanner(t)

	if _, ok := scanner.LastSummary(); ok {
		t.Fatal("expected no summary before first tick")
	}
	scanner.Tick(context.Background(), time.Now())
	if _, ok := scanner.LastSummary(); !ok {
		t.Fatal("expected summary after tick")
	}
}

func TestDueWithin(t *testing.T) {
	now := time.Now().UTC()
	in := now.Add(30 * time.Minute)
	out := now.Add(2 * time.Hour)
	tasks := []*store.Task{
		{ID: "in", DueDate: &in},
		{ID: "out", DueDate: &out},
		{ID: "undated"},
		nil,
	}
	due := dispatch.DueWithin(tasks, now, dispatch.DueWindow)
	if len(due) != 1 || due[0].ID != "in" {
		t.Fatalf("unexpected filter result: %#v", due)
	}
}
