package searcher

import "errors"

var (
	// ErrInvalidState is returned when selection is attempted on a node without children
	ErrInvalidState = errors.New("invalid search state")
	// ErrNoLegalMoves is returned when a search is started on a position with no legal actions
	ErrNoLegalMoves = errors.New("no legal moves")
	// ErrContractViolation is returned when an Evaluator's output does not match the position
	ErrContractViolation = errors.New("evaluator contract violation")
)
