package tui

import "time"

// StoreChangedMsg signals that the shared store mutated and the view
// must be recomputed. Sent from the store's change subscription.
type StoreChangedMsg struct{}

// tickMsg is sent on regular intervals to drive spinner animation.
type tickMsg time.Time
