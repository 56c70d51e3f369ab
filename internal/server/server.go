// Package server exposes the board over HTTP: a JSON API for every board
// action and the embedded browser page that drives it.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/gmllt/resboard/internal/board"
	"github.com/gmllt/resboard/internal/store"
)

//go:embed static
var staticFiles embed.FS

// Server owns the live board. Every request touching it holds mu, so a user
// action is applied and persisted as one step.
type Server struct {
	mu     sync.Mutex
	board  *board.Board
	editor *board.Editor
	store  store.Store
	log    *zap.SugaredLogger
	router *mux.Router
}

// New loads the board from st and builds the router.
func New(ctx context.Context, st store.Store, log *zap.SugaredLogger) (*Server, error) {
	b, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	s := &Server{
		board:  b,
		editor: board.NewEditor(b),
		store:  st,
		log:    log,
	}
	s.router = s.routes()
	log.Infof("Board loaded: %d areas", len(b.Areas()))
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/board", s.handleGetBoard).Methods(http.MethodGet)
	api.HandleFunc("/areas", s.handleAddArea).Methods(http.MethodPost)
	api.HandleFunc("/cards", s.handleAddCard).Methods(http.MethodPost)
	api.HandleFunc("/cards", s.handleEditCard).Methods(http.MethodPut)
	api.HandleFunc("/cards", s.handleDeleteCard).Methods(http.MethodDelete)
	api.HandleFunc("/drop", s.handleDrop).Methods(http.MethodPost)
	api.HandleFunc("/cards/{id}/{field:heading|content}/edit", s.handleBeginEdit).Methods(http.MethodPost)
	api.HandleFunc("/cards/{id}/{field:heading|content}/buffer", s.handleUpdateBuffer).Methods(http.MethodPut)
	api.HandleFunc("/cards/{id}/{field:heading|content}/save", s.handleSaveEdit).Methods(http.MethodPost)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	r.PathPrefix("/").Handler(http.FileServer(http.FS(static)))
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Infof("[%s] %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// apply runs fn under the board lock. When fn reports a change the board is
// saved; a failed save restores the previous board and edit toggles. The
// response is always the current board, so rejected actions are silent.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, fn func() bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.board.Snapshot()
	edits := s.editor.Checkpoint()
	if fn() {
		s.editor.Prune()
		if err := s.store.Save(r.Context(), s.board); err != nil {
			s.log.Errorf("Error saving board: %v", err)
			*s.board = *board.FromSnapshot(before)
			s.editor.Restore(edits)
			http.Error(w, "Failed to save board", http.StatusInternalServerError)
			return
		}
	}
	s.writeBoardLocked(w)
}

func (s *Server) writeBoardLocked(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.viewLocked()); err != nil {
		s.log.Errorf("Error encoding board: %v", err)
	}
}

type boardView struct {
	DragType string     `json:"dragType"`
	Areas    []areaView `json:"areas"`
}

type areaView struct {
	Name     string     `json:"name"`
	Editable bool       `json:"editable"`
	Cards    []cardView `json:"cards"`
}

type cardView struct {
	board.Card
	Draggable   bool                   `json:"draggable"`
	DragPayload string                 `json:"dragPayload"`
	Editing     map[board.Field]string `json:"editing,omitempty"`
}

func (s *Server) viewLocked() boardView {
	v := boardView{DragType: board.DragMIMEType, Areas: []areaView{}}
	for _, name := range s.board.Areas() {
		av := areaView{Name: name, Editable: board.IsEditable(name), Cards: []cardView{}}
		for i, c := range s.board.Cards(name) {
			cv := cardView{Card: c, Draggable: s.editor.Draggable(c.ID)}
			payload, err := board.EncodeDragPayload(board.DragPayload{Index: i, Source: name})
			if err != nil {
				s.log.Errorf("Error encoding drag payload: %v", err)
			}
			cv.DragPayload = payload
			for _, f := range []board.Field{board.FieldHeading, board.FieldContent} {
				if buf, open := s.editor.Editing(c.ID, f); open {
					if cv.Editing == nil {
						cv.Editing = map[board.Field]string{}
					}
					cv.Editing[f] = buf
				}
			}
			av.Cards = append(av.Cards, cv)
		}
		v.Areas = append(v.Areas, av)
	}
	return v
}
