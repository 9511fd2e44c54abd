package notify_test

import (
	"testing"

	"tasknotify/internal/notify"
	"tasknotify/internal/store"
)

var testOpts = notify.Options{
	ChannelID:   "high_importance_channel",
	ClickAction: "FLUTTER_NOTIFICATION_CLICK",
	Icon:        "ic_launcher",
}

func TestBuildTemplates(t *testing.T) {
	task := &store.Task{ID: "t1", Title: "Write report", AssignedTo: "alice", CreatedBy: "carol"}

	tests := []struct {
		kind      notify.Kind
		wantTitle string
		wantBody  string
		wantColor string
		wantType  string
	}{
		{
			kind:      notify.KindNewTask,
			wantTitle: "New Task!",
			wantBody:  `Assigned task: "Write report"`,
			wantColor: "#1E88E5",
			wantType:  "new_task",
		},
		{
			kind:      notify.KindDueSoon,
			wantTitle: "Due Soon!",
			wantBody:  `Task "Write report" is due in about 1 hour!`,
			wantColor: "#FF5722",
			wantType:  "due_soon",
		},
		{
			kind:      notify.KindTaskCompleted,
			wantTitle: "Task Completed!",
			wantBody:  `Task "Write report" was completed by alice`,
			wantColor: "#4CAF50",
			wantType:  "task_completed",
		},
	}

	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			msg, err := notify.Build(tc.kind, task, testOpts)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if msg.Title != tc.wantTitle {
				t.Errorf("title = %q, want %q", msg.Title, tc.wantTitle)
			}
			if msg.Body != tc.wantBody {
				t.Errorf("body = %q, want %q", msg.Body, tc.wantBody)
			}
			if msg.Data["taskId"] != "t1" || msg.Data["type"] != tc.wantType {
				t.Errorf("unexpected data map: %#v", msg.Data)
			}
			if msg.Android.Color != tc.wantColor {
				t.Errorf("color = %q, want %q", msg.Android.Color, tc.wantColor)
			}
			if msg.Android.Priority != "high" || msg.Android.Sound != "default" {
				t.Errorf("unexpected android hints: %#v", msg.Android)
			}
			if msg.Android.ChannelID != testOpts.ChannelID || msg.Android.ClickAction != testOpts.ClickAction {
				t.Errorf("options not applied: %#v", msg.Android)
			}
			if msg.APNS.Badge != 1 || msg.APNS.Sound != "default" {
				t.Errorf("unexpected apns hints: %#v", msg.APNS)
			}
			if msg.Token != "" {
				t.Errorf("builder must not assign a token, got %q", msg.Token)
			}
		})
	}
}

func TestBuildRejectsUnknownKind(t *testing.T) {
	if _, err := notify.Build(notify.Kind("mystery"), &store.Task{ID: "t1"}, testOpts); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestBuildRejectsNilTask(t *testing.T) {
	if _, err := notify.Build(notify.KindNewTask, nil, testOpts); err == nil {
		t.Fatal("expected error for nil task")
	}
}

func TestKindValid(t *testing.T) {
	for _, kind := range []notify.Kind{notify.KindNewTask, notify.KindDueSoon, notify.KindTaskCompleted} {
		if !kind.Valid() {
			t.Errorf("expected %s to be valid", kind)
		}
	}
	if notify.Kind("mystery").Valid() {
		t.Error("unexpected valid unknown kind")
	}
}

func TestRecipientRule(t *testing.T) {
	task := &store.Task{ID: "t1", AssignedTo: "alice", CreatedBy: "carol"}

	for kind, want := range map[notify.Kind]string{
		notify.KindNewTask:       "alice",
		notify.KindDueSoon:       "alice",
		notify.KindTaskCompleted: "carol",
	} {
		got, err := kind.Recipient(task)
		if err != nil {
			t.Fatalf("Recipient(%s) failed: %v", kind, err)
		}
		if got != want {
			t.Errorf("Recipient(%s) = %q, want %q", kind, got, want)
		}
	}

	if _, err := notify.Kind("mystery").Recipient(task); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
