package task

// assigneeTransitions is the status graph an assignee may walk. Admin
// capabilities (creation, deletion, reassignment, free-form edits and
// cancellation) are a separate permission, not part of this table.
var assigneeTransitions = map[Status][]Status{
	StatusPending: {StatusRunning},
	StatusRunning: {StatusPaused, StatusCompleted},
	StatusPaused:  {StatusRunning, StatusCompleted},
}

// IsTerminal reports whether a status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition validates an assignee-requested status change.
// Terminal states refuse everything with ErrTaskTerminal; anything
// else outside the table fails with ErrInvalidTransition.
func CanTransition(from, to Status) error {
	if from.IsTerminal() {
		return ErrTaskTerminal
	}
	for _, allowed := range assigneeTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return ErrInvalidTransition
}
