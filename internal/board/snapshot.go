package board

import (
	"strings"

	"github.com/google/uuid"
)

// Snapshot is the serialised form of a board. Areas keep their display order.
type Snapshot struct {
	Areas []AreaSnapshot `json:"areas"`
}

type AreaSnapshot struct {
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// Snapshot returns a deep copy of the board in display order.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{Areas: make([]AreaSnapshot, 0, len(b.order))}
	for _, name := range b.order {
		s.Areas = append(s.Areas, AreaSnapshot{Name: name, Cards: b.Cards(name)})
	}
	return s
}

// FromSnapshot rebuilds a board. Blank and duplicate area names are dropped,
// Unassigned is created if missing and cards without an id, or with an id
// already taken, get a fresh one.
func FromSnapshot(s Snapshot) *Board {
	b := New()
	seen := make(map[string]bool, len(s.Areas))
	ids := make(map[string]bool)
	for _, a := range s.Areas {
		if strings.TrimSpace(a.Name) == "" || seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		b.AddArea(a.Name)
		cards := make([]Card, 0, len(a.Cards))
		for _, c := range a.Cards {
			if c.ID == "" || ids[c.ID] {
				c.ID = uuid.NewString()
			}
			ids[c.ID] = true
			cards = append(cards, c)
		}
		b.areas[a.Name] = cards
	}
	return b
}
