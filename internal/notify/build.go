package notify

import (
	"fmt"

	"tasknotify/internal/store"
)

const (
	priorityHigh = "high"
	soundDefault = "default"
	badgeCount   = 1

	colorNewTask       = "#1E88E5"
	colorDueSoon       = "#FF5722"
	colorTaskCompleted = "#4CAF50"
)

// Build renders the notification message for a kind and task snapshot. It is
// a pure transform: no I/O, no lookups. The recipient token is assigned by
// the dispatcher after resolution.
func Build(kind Kind, task *store.Task, opts Options) (Message, error) {
	if task == nil {
		return Message{}, fmt.Errorf("build %s: nil task", kind)
	}

	var title, body, color string
	switch kind {
	case KindNewTask:
		title = "New Task!"
		body = fmt.Sprintf("Assigned task: %q", task.Title)
		color = colorNewTask
	case KindDueSoon:
		title = "Due Soon!"
		body = fmt.Sprintf("Task %q is due in about 1 hour!", task.Title)
		color = colorDueSoon
	case KindTaskCompleted:
		title = "Task Completed!"
		body = fmt.Sprintf("Task %q was completed by %s", task.Title, task.AssignedTo)
		color = colorTaskCompleted
	default:
		return Message{}, fmt.Errorf("unknown notification kind %q", string(kind))
	}

	return Message{
		Title: title,
		Body:  body,
		Data: map[string]string{
			"taskId": task.ID,
			"type":   string(kind),
		},
		Android: AndroidConfig{
			Priority:    priorityHigh,
			ChannelID:   opts.ChannelID,
			ClickAction: opts.ClickAction,
			Sound:       soundDefault,
			Color:       color,
			Icon:        opts.Icon,
		},
		APNS: APNSConfig{
			Badge: badgeCount,
			Sound: soundDefault,
		},
	}, nil
}
