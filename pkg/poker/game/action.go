package game

import "fmt"

// Action is a player decision submitted to a hand
type Action int

// action constants
const (
	ActionFold Action = iota
	ActionCheck
	ActionCall
	ActionBet
	ActionRaise
	ActionAllIn
)

// String returns the wire identifier for the action
func (a Action) String() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionBet:
		return "bet"
	case ActionRaise:
		return "raise"
	case ActionAllIn:
		return "all-in"
	default:
		panic(fmt.Sprintf("unknown action: %d", a))
	}
}

// ActionFromString returns the action for a wire identifier
func ActionFromString(name string) (Action, error) {
	for _, a := range []Action{ActionFold, ActionCheck, ActionCall, ActionBet, ActionRaise, ActionAllIn} {
		if a.String() == name {
			return a, nil
		}
	}

	return 0, fmt.Errorf("unknown action: %s", name)
}
