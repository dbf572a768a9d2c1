package upload

import "github.com/miy4x/shigezane-admin/internal/client/models"

// State is the position of an upload task in its lifecycle:
// Idle -> Compressing -> AcquiringCredential -> Uploading -> Done, with
// Failed reachable from any step. Done and Failed are terminal.
type State int

const (
	Idle State = iota
	Compressing
	AcquiringCredential
	Uploading
	Done
	Failed
)

var stateNames = [...]string{"idle", "compressing", "acquiring credential", "uploading", "done", "failed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Verb renders the state for error messages.
func (s State) Verb() string {
	switch s {
	case AcquiringCredential:
		return "acquiring credential"
	case Uploading:
		return "writing to storage"
	case Compressing:
		return "compressing"
	}
	return s.String()
}

func (s State) Terminal() bool { return s == Done || s == Failed }

// StateFunc observes task transitions. Gallery uploads call it from
// several goroutines.
type StateFunc func(field models.ImageField, s State)

// Task is one image upload.
type Task struct {
	Field  models.ImageField
	File   File
	Budget Budget

	State State
	URL   string
	Err   error
}

func NewTask(field models.ImageField, f File) *Task {
	return &Task{Field: field, File: f, Budget: BudgetFor(field.Role)}
}
