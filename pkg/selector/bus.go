package selector

// Part identifies which piece of a selector an interaction landed on.
type Part int

const (
	PartNone    Part = iota // Somewhere outside any selector
	PartTrigger             // The collapsed selector button
	PartSearch              // The search input of an open dropdown
	PartList                // The currency list of an open dropdown
)

// Interaction is a pointer or focus event somewhere in the view.
type Interaction struct {
	Owner string // Selector id the event landed in, "" when outside all of them
	Part  Part
}

// Outside returns an interaction that landed on no selector.
func Outside() Interaction {
	return Interaction{}
}

// Bus fans view interactions out to open dropdowns. Subscriptions are scoped:
// each one is released by the func returned from Subscribe.
//
// A Bus belongs to a single view loop and is not safe for concurrent use.
type Bus struct {
	next      int
	listeners map[int]func(Interaction)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[int]func(Interaction))}
}

// Subscribe registers fn and returns its release func. Release is idempotent.
func (b *Bus) Subscribe(fn func(Interaction)) func() {
	id := b.next
	b.next++
	b.listeners[id] = fn

	return func() {
		delete(b.listeners, id)
	}
}

// Publish delivers ev to every current listener. Listeners may release
// themselves while being notified.
func (b *Bus) Publish(ev Interaction) {
	pending := make([]func(Interaction), 0, len(b.listeners))
	for _, fn := range b.listeners {
		pending = append(pending, fn)
	}

	for _, fn := range pending {
		fn(ev)
	}
}

// Listeners returns the number of live subscriptions.
func (b *Bus) Listeners() int {
	return len(b.listeners)
}
