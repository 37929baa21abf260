package domain

import "strings"

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

type EventType string

const (
	EventPlanning      EventType = "planning"
	EventReview        EventType = "review"
	EventRetrospective EventType = "retrospective"
	EventStandup       EventType = "standup"
	EventDemo          EventType = "demo"
	EventMilestone     EventType = "milestone"
	EventOther         EventType = "other"
)

type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleEditor MemberRole = "editor"
	RoleViewer MemberRole = "viewer"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[TaskStatus]bool{
	TaskTodo: true, TaskInProgress: true, TaskReview: true, TaskDone: true,
}

// ValidEventTypes is the canonical set of accepted event type strings.
var ValidEventTypes = map[EventType]bool{
	EventPlanning: true, EventReview: true, EventRetrospective: true,
	EventStandup: true, EventDemo: true, EventMilestone: true, EventOther: true,
}

// NormalizeTaskStatus maps model/UI spellings ("To Do", "In Progress") onto
// canonical status values. Unknown input falls back to todo.
func NormalizeTaskStatus(s string) TaskStatus {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "_")) {
	case "todo", "to_do":
		return TaskTodo
	case "in_progress", "inprogress", "doing":
		return TaskInProgress
	case "review", "in_review":
		return TaskReview
	case "done", "completed":
		return TaskDone
	default:
		return TaskTodo
	}
}

// NormalizeTaskPriority maps model/UI spellings ("High", "MEDIUM") onto
// canonical priority values. Unknown input falls back to medium.
func NormalizeTaskPriority(s string) TaskPriority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "urgent", "critical":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// NormalizeEventType maps free-form meeting type strings onto canonical
// event types. Unknown input falls back to other.
func NormalizeEventType(s string) EventType {
	t := EventType(strings.ToLower(strings.TrimSpace(s)))
	if ValidEventTypes[t] {
		return t
	}
	return EventOther
}
