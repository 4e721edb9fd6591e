package domain

// EventType enumerates the board events emitted once per committed
// mutation. Events are never queued or replayed; a session that was not
// connected at emission time never sees them.
type EventType string

const (
	EventTaskCreated    EventType = "TASK_CREATED"
	EventTaskUpdated    EventType = "TASK_UPDATED"
	EventTaskMoved      EventType = "TASK_MOVED"
	EventTaskAssigned   EventType = "TASK_ASSIGNED"
	EventTaskDeleted    EventType = "TASK_DELETED"
	EventCommentCreated EventType = "COMMENT_CREATED"
)
