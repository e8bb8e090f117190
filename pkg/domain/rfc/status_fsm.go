package rfc

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// State constants for statekit integration.
// These must remain as untyped string constants for statekit.StateID
// compatibility. Values are kept in sync with the Status constants.
const (
	StateDraft      = "draft"
	StateInReview   = "in_review"
	StateApproved   = "approved"
	StateRejected   = "rejected"
	StateSuperseded = "superseded"
)

// init validates at startup that FSM state constants match Status values.
func init() {
	stateMap := map[string]Status{
		StateDraft:      StatusDraft,
		StateInReview:   StatusInReview,
		StateApproved:   StatusApproved,
		StateRejected:   StatusRejected,
		StateSuperseded: StatusSuperseded,
	}
	for fsmState, status := range stateMap {
		if fsmState != string(status) {
			panic(fmt.Sprintf("FSM state %q does not match Status %q - constants are out of sync", fsmState, status))
		}
	}
}

// DocumentContext carries state data through the machine.
type DocumentContext struct {
	RFCID string
}

// StatusMachine wraps a statekit interpreter over the RFC status lifecycle.
// The validTransitions table in status.go stays the source of truth; the
// machine mirrors it event for event.
type StatusMachine struct {
	interpreter *statekit.Interpreter[DocumentContext]
}

// NewStatusMachine builds a machine positioned at initialState.
func NewStatusMachine(initialState string, rfcID string) (*StatusMachine, error) {
	builder := statekit.NewMachine[DocumentContext]("rfc-status").
		WithInitial(statekit.StateID(initialState)).
		WithContext(DocumentContext{RFCID: rfcID})

	builder.State(StateDraft).
		On("submit").Target(StateInReview).
		On("reject").Target(StateRejected).
		Done()

	builder.State(StateInReview).
		On("approve").Target(StateApproved).
		On("reject").Target(StateRejected).
		On("revise").Target(StateDraft).
		Done()

	builder.State(StateApproved).
		On("supersede").Target(StateSuperseded).
		Done()

	builder.State(StateRejected).
		On("reopen").Target(StateDraft).
		Done()

	builder.State(StateSuperseded).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &StatusMachine{interpreter: interpreter}, nil
}

// Transition attempts to fire an event. In statekit, if no transition matches
// the current state the state stays the same, which we report as an error.
func (sm *StatusMachine) Transition(event string) error {
	before := sm.Current()
	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := sm.Current()

	if before != after {
		return nil
	}
	return fmt.Errorf("the action '%s' is not allowed while the RFC is in the '%s' state", event, before)
}

// Current returns the current machine state.
func (sm *StatusMachine) Current() string {
	return string(sm.interpreter.State().Value)
}

// CurrentStatus returns the current state as a Status value object.
func (sm *StatusMachine) CurrentStatus() Status {
	return Status(sm.Current())
}

// IsTerminal returns true if no event can leave the current state.
func (sm *StatusMachine) IsTerminal() bool {
	return sm.CurrentStatus().IsTerminal()
}
