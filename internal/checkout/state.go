package checkout

// State tracks a session's progress through the checkout handoff.
//
// Idle -> Snapshotting -> Processing -> Settled, with an immediate return
// to Idle when checkout is invoked on an empty cart. Settled is modeled
// as the reset back to Idle with a fresh ledger, so a session only ever
// observes the first three states.
type State string

const (
	StateIdle         State = "idle"
	StateSnapshotting State = "snapshotting"
	StateProcessing   State = "processing"
)
