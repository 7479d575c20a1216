// Package event normalizes inbound hierarchy notifications into canonical
// events. The notification shape is not contractually fixed: envelopes,
// key names and nesting depths vary across notifier versions, so extraction
// is a tolerant cascade that never fails, only yields fewer events.
package event

// KindPrefix is the event-kind namespace this service reacts to.
const KindPrefix = "feature."

// Canonical is one normalized (entity id, event kind) pair extracted from a
// notification. Produced transiently; never persisted.
type Canonical struct {
	EntityID string `json:"entityId"`
	Kind     string `json:"kind"`

	// Raw is the sub-event the pair was extracted from. Diagnostic only.
	Raw map[string]any `json:"-"`
}
