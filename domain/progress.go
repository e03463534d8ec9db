package domain

// TaskProgress tracks progress of a single long-running task
type TaskProgress interface {
	// Increment adds n to the current progress
	Increment(n int)

	// Describe updates the current item description
	Describe(description string)

	// Complete marks the task as finished
	Complete()
}

// ProgressManager creates progress tasks for long-running operations
type ProgressManager interface {
	// StartTask creates a new progress task with a total count
	StartTask(description string, total int) TaskProgress

	// IsInteractive reports whether progress output is visible
	IsInteractive() bool

	// Close cleans up all tasks
	Close()
}
