package campaign

type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusSending   Status = "sending"
	StatusPaused    Status = "paused"
	StatusSent      Status = "sent"
	StatusCancelled Status = "cancelled"
)

var Statuses = []Status{
	StatusDraft, StatusScheduled, StatusSending,
	StatusPaused, StatusSent, StatusCancelled,
}

func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if string(v) == s {
			return true
		}
	}
	return false
}

// Action is a requested lifecycle transition.
type Action string

const (
	ActionSend     Action = "send"
	ActionSchedule Action = "schedule"
	ActionPause    Action = "pause"
	ActionResume   Action = "resume"
	ActionCancel   Action = "cancel"
	// ActionComplete is driven by the delivery subsystem, not by users.
	ActionComplete Action = "complete"
)

// transitions is the full lifecycle table. Any (status, action) pair not
// present here is rejected; sent and cancelled are terminal.
var transitions = map[Status]map[Action]Status{
	StatusDraft: {
		ActionSend:     StatusSending,
		ActionSchedule: StatusScheduled,
		ActionCancel:   StatusCancelled,
	},
	StatusScheduled: {
		ActionSend:     StatusSending,
		ActionSchedule: StatusScheduled,
		ActionPause:    StatusPaused,
		ActionCancel:   StatusCancelled,
	},
	StatusSending: {
		ActionPause:    StatusPaused,
		ActionComplete: StatusSent,
	},
	StatusPaused: {
		ActionSend:   StatusSending,
		ActionResume: StatusScheduled,
		ActionCancel: StatusCancelled,
	},
}

// NextStatus reports the target status for applying action in the current
// status, and whether the transition is allowed at all.
func NextStatus(current Status, action Action) (Status, bool) {
	next, ok := transitions[current][action]
	return next, ok
}

func (s Status) IsTerminal() bool {
	return s == StatusSent || s == StatusCancelled
}

func (s Status) CanBeSent() bool {
	return s == StatusDraft || s == StatusScheduled || s == StatusPaused
}

func (s Status) CanBePaused() bool {
	return s == StatusSending || s == StatusScheduled
}

func (s Status) CanBeCancelled() bool {
	return s == StatusDraft || s == StatusScheduled || s == StatusPaused
}

func (s Status) IsSending() bool {
	return s == StatusSending
}

func (s Status) IsSent() bool {
	return s == StatusSent
}
