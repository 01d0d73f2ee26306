package bridge

// State bundles the process-scoped mutable pieces of the bridge: the trigger
// queue, the poll dedup cursor, and the OAuth credential. Constructed once
// at startup and injected into every handler and worker, so the mutual
// exclusion boundary stays explicit and testable.
type State struct {
	Queue       *EventQueue
	Cursor      *DedupCursor
	Credentials *CredentialStore
}

func NewState() *State {
	return &State{
		Queue:       NewEventQueue(),
		Cursor:      NewDedupCursor(),
		Credentials: NewCredentialStore(),
	}
}
