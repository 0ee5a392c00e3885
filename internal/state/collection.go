package state

import "sync"

// Collection is the authoritative in-memory store of all notes for one
// session, indexed by id. Enumeration follows insertion order. All mutation
// of note fields goes through Update so readers on other goroutines (the
// autosave ticker) always see a consistent snapshot.
type Collection struct {
	mu    sync.RWMutex
	notes map[string]*Note
	order []string
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{notes: make(map[string]*Note)}
}

// Add inserts a note under its id. Callers must supply fresh ids;
// re-adding an existing id is undefined.
func (c *Collection) Add(n *Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes[n.ID] = n
	c.order = append(c.order, n.ID)
}

// Remove deletes the note with the given id. Removing an absent id is a
// no-op, not an error.
func (c *Collection) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.notes[id]; !ok {
		return
	}
	delete(c.notes, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Get returns the note with the given id.
func (c *Collection) Get(id string) (*Note, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.notes[id]
	return n, ok
}

// Update applies fn to the note with the given id under the write lock.
// It reports whether the note was found.
func (c *Collection) Update(id string, fn func(*Note)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.notes[id]
	if !ok {
		return false
	}
	fn(n)
	return true
}

// Notes returns all notes in insertion order.
func (c *Collection) Notes() []*Note {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Note, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.notes[id])
	}
	return out
}

// Len returns the number of notes.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.notes)
}

// Records returns the persisted form of every note, in insertion order.
func (c *Collection) Records() []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Record, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.notes[id].Record())
	}
	return out
}

// Load replaces the collection's contents with the given records.
func (c *Collection) Load(records []Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = make(map[string]*Note, len(records))
	c.order = c.order[:0]
	for _, r := range records {
		n := NoteFromRecord(r)
		c.notes[n.ID] = n
		c.order = append(c.order, n.ID)
	}
}
