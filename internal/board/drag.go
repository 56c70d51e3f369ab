package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DragMIMEType is the transfer type the browser stores the payload under.
const DragMIMEType = "text/plain"

// DragPayload identifies the card being dragged by its position.
type DragPayload struct {
	Index  int    `json:"index"`
	Source string `json:"source"`
}

func EncodeDragPayload(p DragPayload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("error encoding drag payload: %w", err)
	}
	return string(data), nil
}

func DecodeDragPayload(data []byte) (DragPayload, error) {
	var p DragPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return DragPayload{}, fmt.Errorf("error decoding drag payload: %w", err)
	}
	if strings.TrimSpace(p.Source) == "" {
		return DragPayload{}, errors.New("drag payload has no source area")
	}
	if p.Index < 0 {
		return DragPayload{}, fmt.Errorf("drag payload has negative index %d", p.Index)
	}
	return p, nil
}

// Drop decodes a payload dropped on target and moves the card. A payload
// that cannot be decoded leaves the board untouched.
func (b *Board) Drop(target string, data []byte) (bool, error) {
	p, err := DecodeDragPayload(data)
	if err != nil {
		return false, err
	}
	return b.MoveCard(p.Source, p.Index, target), nil
}
