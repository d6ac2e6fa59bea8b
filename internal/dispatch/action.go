package dispatch

// Action identifies one of the user-invocable commands.
type Action string

const (
	// ActionBuild builds a cell image from the active file.
	ActionBuild Action = "build"
	// ActionRun builds the active file, runs an instance and follows its logs.
	ActionRun Action = "run"
)

// Actions returns every action in a stable order.
func Actions() []Action {
	return []Action{ActionBuild, ActionRun}
}

// String returns the action identifier.
func (a Action) String() string {
	return string(a)
}

// TerminalTitle returns the title of the terminal the action sends to.
func (a Action) TerminalTitle() string {
	switch a {
	case ActionBuild:
		return "Cellery Build"
	case ActionRun:
		return "Cellery Run"
	default:
		return "Cellery"
	}
}

// FailureMessage returns the generic message shown when the action's
// preconditions are not met.
func (a Action) FailureMessage() string {
	return "Something went wrong while running cellery " + string(a)
}

// Prompt texts shown to the user.
const (
	CellNamePrompt     = "Enter the cell name"
	InstanceNamePrompt = "Enter the cell instance name"
)
