package editor

// Action names the operation a confirmation gate dispatches when the user
// confirms.
type Action int

// Gate actions.
const (
	ActionNone Action = iota
	ActionRetrieve
)

func (a Action) String() string {
	switch a {
	case ActionRetrieve:
		return "retrieve"
	default:
		return "none"
	}
}

// Gate is a two-state confirmation protocol: Idle, or Pending with a
// message and an action token. The zero value is Idle.
//
// Only one confirmation is pending at a time. A Request while Pending
// replaces the staged message and action.
type Gate struct {
	pending bool
	message string
	action  Action
}

// Request moves the gate to Pending with message and action.
func (g *Gate) Request(message string, action Action) {
	g.pending = true
	g.message = message
	g.action = action
}

// Confirm moves the gate to Idle and returns the staged action. The action
// is handed out once; confirming an Idle gate returns ActionNone.
func (g *Gate) Confirm() Action {
	if !g.pending {
		return ActionNone
	}
	action := g.action
	*g = Gate{}
	return action
}

// Cancel moves the gate to Idle without dispatching anything.
func (g *Gate) Cancel() {
	*g = Gate{}
}

// Pending reports whether a confirmation is staged.
func (g Gate) Pending() bool { return g.pending }

// Message returns the staged message, or "" when Idle.
func (g Gate) Message() string { return g.message }
