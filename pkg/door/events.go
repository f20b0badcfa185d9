package door

// EventKind distinguishes door notifications.
type EventKind uint8

const (
	// EventGeometryUpdated follows every successful rebuild.
	EventGeometryUpdated EventKind = iota + 1
	// EventMaterialUpdated follows a colour change. Geometry is untouched.
	EventMaterialUpdated
)

func (k EventKind) String() string {
	switch k {
	case EventGeometryUpdated:
		return "geometryUpdated"
	case EventMaterialUpdated:
		return "materialUpdated"
	}
	return "unknown"
}

// Event is delivered to listeners synchronously, after the door's lock has
// been released, so listeners may read the door.
type Event struct {
	Kind EventKind
	Door *Door
}

// Listener receives door events.
type Listener func(Event)

// ListenerID identifies a subscription.
type ListenerID uint64

type subscription struct {
	id ListenerID
	fn Listener
}

// Subscribe registers fn and returns a handle for Unsubscribe.
func (d *Door) Subscribe(fn Listener) ListenerID {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextListener++
	d.listeners = append(d.listeners, subscription{id: d.nextListener, fn: fn})
	return d.nextListener
}

// Unsubscribe removes a subscription. It reports whether id was registered.
func (d *Door) Unsubscribe(id ListenerID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, s := range d.listeners {
		if s.id == id {
			d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// emit delivers ev to a snapshot of the listeners. Must not be called with
// the lock held.
func (d *Door) emit(kinds ...EventKind) {
	d.mu.RLock()
	subs := d.listeners
	d.mu.RUnlock()
	for _, kind := range kinds {
		ev := Event{Kind: kind, Door: d}
		for _, s := range subs {
			s.fn(ev)
		}
	}
}
