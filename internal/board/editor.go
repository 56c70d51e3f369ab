package board

// Editor tracks the in-place edit toggles of Unassigned cards. Each card has
// an independent heading and content toggle; a toggle in edit state carries
// the buffer that Save commits.
type Editor struct {
	board   *Board
	editing map[editKey]string
}

type editKey struct {
	card  string
	field Field
}

func NewEditor(b *Board) *Editor {
	return &Editor{board: b, editing: make(map[editKey]string)}
}

// Begin puts the field of an Unassigned card into edit state and seeds the
// buffer with the current value. Beginning an already open toggle keeps its
// buffer.
func (e *Editor) Begin(cardID string, field Field) (string, bool) {
	c, ok := e.unassignedCard(cardID)
	if !ok || !field.Valid() {
		return "", false
	}
	k := editKey{cardID, field}
	if buf, open := e.editing[k]; open {
		return buf, true
	}
	var value string
	switch field {
	case FieldHeading:
		value = c.Heading
	case FieldContent:
		value = c.Content
	}
	e.editing[k] = value
	return value, true
}

// Update replaces the buffer of an open toggle.
func (e *Editor) Update(cardID string, field Field, value string) bool {
	k := editKey{cardID, field}
	if _, open := e.editing[k]; !open {
		return false
	}
	e.editing[k] = value
	return true
}

// Save commits the buffer to the card and returns the toggle to view state.
func (e *Editor) Save(cardID string, field Field) bool {
	k := editKey{cardID, field}
	buf, open := e.editing[k]
	if !open {
		return false
	}
	delete(e.editing, k)
	area, index, ok := e.board.Locate(cardID)
	if !ok {
		return false
	}
	return e.board.EditCard(area, index, field, buf)
}

// Editing reports whether the field toggle is in edit state, and its buffer.
func (e *Editor) Editing(cardID string, field Field) (string, bool) {
	buf, open := e.editing[editKey{cardID, field}]
	return buf, open
}

// Draggable reports whether a card may be dragged: not while either of its
// fields is being edited.
func (e *Editor) Draggable(cardID string) bool {
	_, h := e.editing[editKey{cardID, FieldHeading}]
	_, c := e.editing[editKey{cardID, FieldContent}]
	return !h && !c
}

// Prune drops toggles of cards that are gone or no longer in Unassigned.
func (e *Editor) Prune() {
	for k := range e.editing {
		if _, ok := e.unassignedCard(k.card); !ok {
			delete(e.editing, k)
		}
	}
}

func (e *Editor) unassignedCard(cardID string) (Card, bool) {
	area, index, ok := e.board.Locate(cardID)
	if !ok || !IsEditable(area) {
		return Card{}, false
	}
	return e.board.areas[area][index], true
}

// EditState is a saved copy of the open toggles.
type EditState map[editKey]string

// Checkpoint copies the open toggles so a failed commit can be undone.
func (e *Editor) Checkpoint() EditState {
	st := make(EditState, len(e.editing))
	for k, v := range e.editing {
		st[k] = v
	}
	return st
}

// Restore replaces the open toggles with a checkpoint.
func (e *Editor) Restore(st EditState) {
	e.editing = make(map[editKey]string, len(st))
	for k, v := range st {
		e.editing[k] = v
	}
}
