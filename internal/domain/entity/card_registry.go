// Package entity defines domain entities for cardver.
package entity

// CardRegistration is the record a card announces when its artifact loads,
// mirroring one entry of the host's window.customCards list.
type CardRegistration struct {
	Type             string
	Name             string
	Description      string
	Version          string
	Preview          bool
	DocumentationURL string
}

// CardRegistry collects card registrations produced by loading artifacts.
// It is append-only and owned by whoever loaded the artifact.
type CardRegistry struct {
	entries []CardRegistration
}

// NewCardRegistry creates an empty registry.
func NewCardRegistry() *CardRegistry {
	return &CardRegistry{}
}

// Register appends a registration.
func (r *CardRegistry) Register(c CardRegistration) {
	r.entries = append(r.entries, c)
}

// Find returns the first registration whose type equals cardType.
func (r *CardRegistry) Find(cardType string) (CardRegistration, bool) {
	if r == nil {
		return CardRegistration{}, false
	}
	for _, c := range r.entries {
		if c.Type == cardType {
			return c, true
		}
	}
	return CardRegistration{}, false
}

// All returns a copy of every registration in insertion order.
func (r *CardRegistry) All() []CardRegistration {
	if r == nil {
		return nil
	}
	out := make([]CardRegistration, len(r.entries))
	copy(out, r.entries)
	return out
}

// Types returns the registered card types in insertion order.
func (r *CardRegistry) Types() []string {
	if r == nil {
		return nil
	}
	types := make([]string, 0, len(r.entries))
	for _, c := range r.entries {
		types = append(types, c.Type)
	}
	return types
}

// Len returns the number of registrations.
func (r *CardRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}
