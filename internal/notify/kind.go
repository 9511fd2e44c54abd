package notify

import (
	"fmt"

	"tasknotify/internal/store"
)

// Kind identifies which lifecycle event a notification describes. The value
// doubles as the data.type tag the mobile client routes on.
type Kind string

const (
	KindNewTask       Kind = "new_task"
	KindDueSoon       Kind = "due_soon"
	KindTaskCompleted Kind = "task_completed"
)

// Valid reports whether k is a known notification kind.
func (k Kind) Valid() bool {
	switch k {
	case KindNewTask, KindDueSoon, KindTaskCompleted:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// Recipient returns the username the notification for this kind addresses:
// the assignee for new-task and due-soon, the task creator for completion.
func (k Kind) Recipient(task *store.Task) (string, error) {
	if task == nil {
		return "", fmt.Errorf("recipient for %s: nil task", k)
	}
	switch k {
	case KindNewTask, KindDueSoon:
		return task.AssignedTo, nil
	case KindTaskCompleted:
		return task.CreatedBy, nil
	default:
		return "", fmt.Errorf("unknown notification kind %q", string(k))
	}
}
