package model

import "fmt"

type TaskStatus string

const (
	StatusBacklog    TaskStatus = "backlog"
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusBlocked    TaskStatus = "blocked"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
)

// validTransitions is the directed status graph. It is intentionally
// asymmetric: blocked can only reach review through todo or in_progress.
var validTransitions = map[TaskStatus][]TaskStatus{
	StatusBacklog:    {StatusTodo, StatusInProgress, StatusBlocked},
	StatusTodo:       {StatusInProgress, StatusBlocked, StatusDone},
	StatusInProgress: {StatusReview, StatusBlocked, StatusTodo},
	StatusBlocked:    {StatusTodo, StatusInProgress},
	StatusReview:     {StatusDone, StatusInProgress, StatusBlocked},
	StatusDone:       {StatusTodo, StatusInProgress},
}

// CanTransition reports whether a task may change status from current to
// target. Same-status updates are always allowed.
func CanTransition(current, target TaskStatus) bool {
	if current == target {
		return true
	}
	for _, allowed := range validTransitions[current] {
		if allowed == target {
			return true
		}
	}
	return false
}

// InvalidTransitionError is returned when a requested status change is not an
// edge of the transition graph.
type InvalidTransitionError struct {
	From TaskStatus
	To   TaskStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusBlocked, StatusReview, StatusDone:
		return true
	}
	return false
}
