package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gmllt/resboard/internal/board"
)

type areaRequest struct {
	Name string `json:"name"`
}

type cardRequest struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// cardRef addresses a card by position. The area travels in the body so any
// area name is reachable.
type cardRef struct {
	Area  string `json:"area"`
	Index int    `json:"index"`
}

type editRequest struct {
	cardRef
	Field board.Field `json:"field"`
	Value string      `json:"value"`
}

// dropRequest carries the target area and the drag payload as the browser
// stored it.
type dropRequest struct {
	Target  string `json:"target"`
	Payload string `json:"payload"`
}

type bufferRequest struct {
	Value string `json:"value"`
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeBoardLocked(w)
}

func (s *Server) handleAddArea(w http.ResponseWriter, r *http.Request) {
	var req areaRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.apply(w, r, func() bool {
		if !s.board.AddArea(req.Name) {
			s.log.Debugf("Area rejected: %q", req.Name)
			return false
		}
		s.log.Infof("Area created: %q", req.Name)
		return true
	})
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.apply(w, r, func() bool {
		c, ok := s.board.AddCard(req.Heading, req.Content)
		if !ok {
			s.log.Debugf("Card rejected: blank heading")
			return false
		}
		s.log.Infof("Card created: %s %q", c.ID, c.Heading)
		return true
	})
}

func (s *Server) handleEditCard(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.apply(w, r, func() bool {
		if !s.board.EditCard(req.Area, req.Index, req.Field, req.Value) {
			s.log.Debugf("Edit rejected: %q[%d].%s", req.Area, req.Index, req.Field)
			return false
		}
		s.log.Infof("Card updated: %q[%d].%s", req.Area, req.Index, req.Field)
		return true
	})
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	var req cardRef
	if !s.decode(w, r, &req) {
		return
	}
	s.apply(w, r, func() bool {
		if !s.board.DeleteCard(req.Area, req.Index) {
			s.log.Debugf("Delete rejected: %q[%d]", req.Area, req.Index)
			return false
		}
		s.log.Infof("Card deleted: %q[%d]", req.Area, req.Index)
		return true
	})
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.apply(w, r, func() bool {
		moved, err := s.board.Drop(req.Target, []byte(req.Payload))
		if err != nil {
			s.log.Debugf("Drop ignored: %v", err)
			return false
		}
		if moved {
			s.log.Infof("Card moved to %q", req.Target)
		}
		return moved
	})
}

func (s *Server) handleBeginEdit(w http.ResponseWriter, r *http.Request) {
	id, field := cardField(r)
	s.apply(w, r, func() bool {
		if _, ok := s.editor.Begin(id, field); !ok {
			s.log.Debugf("Edit toggle rejected: %s.%s", id, field)
		}
		return false
	})
}

func (s *Server) handleUpdateBuffer(w http.ResponseWriter, r *http.Request) {
	id, field := cardField(r)
	var req bufferRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.apply(w, r, func() bool {
		s.editor.Update(id, field, req.Value)
		return false
	})
}

func (s *Server) handleSaveEdit(w http.ResponseWriter, r *http.Request) {
	id, field := cardField(r)
	s.apply(w, r, func() bool {
		if !s.editor.Save(id, field) {
			s.log.Debugf("Save rejected: %s.%s", id, field)
			return false
		}
		s.log.Infof("Card updated: %s.%s", id, field)
		return true
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.log.Warnf("Error decoding %s %s: %v", r.Method, r.URL.Path, err)
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

func cardField(r *http.Request) (string, board.Field) {
	vars := mux.Vars(r)
	return vars["id"], board.Field(vars["field"])
}
