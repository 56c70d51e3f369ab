// Package board holds the resource board state: an ordered set of named
// areas, each owning an ordered list of cards.
package board

import (
	"strings"

	"github.com/google/uuid"
)

// Unassigned is the staging area new cards land in. It always exists and is
// the only area whose cards can be edited or deleted.
const Unassigned = "Unassigned"

// Field names a card attribute that can be edited in place.
type Field string

const (
	FieldHeading Field = "heading"
	FieldContent Field = "content"
)

// Valid reports whether f is an editable card field.
func (f Field) Valid() bool {
	return f == FieldHeading || f == FieldContent
}

type Card struct {
	ID      string `json:"id"`
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// Board maps area names to card lists. Area order is creation order, with
// Unassigned first. The zero value is not usable; call New.
type Board struct {
	order []string
	areas map[string][]Card
}

func New() *Board {
	return &Board{
		order: []string{Unassigned},
		areas: map[string][]Card{Unassigned: {}},
	}
}

// IsEditable reports whether cards in area may be edited or deleted.
func IsEditable(area string) bool {
	return area == Unassigned
}

// Areas returns the area names in display order.
func (b *Board) Areas() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// HasArea reports whether name is a key of the board.
func (b *Board) HasArea(name string) bool {
	_, ok := b.areas[name]
	return ok
}

// Cards returns a copy of the cards in area, or nil if the area is unknown.
func (b *Board) Cards(area string) []Card {
	cards, ok := b.areas[area]
	if !ok {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

func (b *Board) Len(area string) int {
	return len(b.areas[area])
}

// Locate returns the area and index of the card with the given id.
func (b *Board) Locate(id string) (area string, index int, ok bool) {
	for _, name := range b.order {
		for i, c := range b.areas[name] {
			if c.ID == id {
				return name, i, true
			}
		}
	}
	return "", -1, false
}

// AddArea inserts an empty area. Blank or already used names are ignored.
func (b *Board) AddArea(name string) bool {
	if strings.TrimSpace(name) == "" || b.HasArea(name) {
		return false
	}
	b.order = append(b.order, name)
	b.areas[name] = []Card{}
	return true
}

// AddCard appends a new card to Unassigned. A blank heading is ignored.
func (b *Board) AddCard(heading, content string) (Card, bool) {
	if strings.TrimSpace(heading) == "" {
		return Card{}, false
	}
	c := Card{ID: uuid.NewString(), Heading: heading, Content: content}
	b.areas[Unassigned] = append(b.areas[Unassigned], c)
	return c, true
}

// EditCard replaces one field of the card at index. Only Unassigned cards
// can be edited.
func (b *Board) EditCard(area string, index int, field Field, value string) bool {
	if !IsEditable(area) || !field.Valid() || !b.inRange(area, index) {
		return false
	}
	c := &b.areas[area][index]
	switch field {
	case FieldHeading:
		c.Heading = value
	case FieldContent:
		c.Content = value
	}
	return true
}

// DeleteCard removes the card at index. Only Unassigned cards can be deleted.
func (b *Board) DeleteCard(area string, index int) bool {
	if !IsEditable(area) || !b.inRange(area, index) {
		return false
	}
	cards := b.areas[area]
	b.areas[area] = append(cards[:index:index], cards[index+1:]...)
	return true
}

// MoveCard removes the card at index from source and appends it to target.
func (b *Board) MoveCard(source string, index int, target string) bool {
	if source == target || !b.HasArea(target) || !b.inRange(source, index) {
		return false
	}
	cards := b.areas[source]
	moved := cards[index]
	b.areas[source] = append(cards[:index:index], cards[index+1:]...)
	b.areas[target] = append(b.areas[target], moved)
	return true
}

func (b *Board) inRange(area string, index int) bool {
	cards, ok := b.areas[area]
	return ok && index >= 0 && index < len(cards)
}
