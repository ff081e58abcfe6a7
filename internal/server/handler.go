// Package server exposes a session over a small local JSON API.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/papapumpkin/scripturesteps/internal/catalog"
	"github.com/papapumpkin/scripturesteps/internal/logging"
	"github.com/papapumpkin/scripturesteps/internal/progress"
	"github.com/papapumpkin/scripturesteps/internal/reflection"
	"github.com/papapumpkin/scripturesteps/internal/stats"
	"github.com/papapumpkin/scripturesteps/internal/tracker"
)

var validate = validator.New()

// Handler holds dependencies shared by the API endpoints.
type Handler struct {
	Session   *tracker.Session
	Reflector *reflection.Reflector
	MaxVerses int
	Log       *zap.Logger
}

// NewHandler constructs a Handler. A nil reflector always answers with
// the fallback text.
func NewHandler(s *tracker.Session, rf *reflection.Reflector, maxVerses int, logger *zap.Logger) *Handler {
	logger = logging.OrNop(logger)
	if rf == nil {
		rf = reflection.New(reflection.Config{}, logger)
	}
	return &Handler{
		Session:   s,
		Reflector: rf,
		MaxVerses: maxVerses,
		Log:       logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
	Books  int    `json:"books"`
}

type dateRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type placeRequest struct {
	BookID  string `json:"bookId" validate:"required"`
	Chapter int    `json:"chapter" validate:"min=1"`
	Verse   int    `json:"verse" validate:"min=1"`
}

type bookView struct {
	catalog.Book
	Status         string `json:"status"`
	Completed      []int  `json:"completedChapters"`
	Favorite       bool   `json:"favorite"`
	Favorites      []int  `json:"favoritedChapters"`
	CompletionDate string `json:"completionDate,omitempty"`
}

type favoritesView struct {
	Books    []catalog.Book        `json:"books"`
	Chapters []favoriteChapterView `json:"chapters"`
}

type favoriteChapterView struct {
	BookID   string `json:"bookId"`
	Name     string `json:"name"`
	Chapters []int  `json:"chapters"`
}

type reflectionResponse struct {
	Text string `json:"text"`
}

// ServeHealth handles GET /health.
func (h *Handler) ServeHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Books: h.Session.Catalog().Len()})
}

// ServeBooks handles GET /api/books?search=&testament=.
func (h *Handler) ServeBooks(w http.ResponseWriter, r *http.Request) {
	t, err := catalog.ParseTestament(r.URL.Query().Get("testament"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rec := h.Session.Record()
	books := h.Session.Catalog().Filter(r.URL.Query().Get("search"), t)
	out := make([]bookView, 0, len(books))
	for _, b := range books {
		out = append(out, h.viewBook(rec, b))
	}
	writeJSON(w, http.StatusOK, out)
}

// ServeBook handles GET /api/books/{id}.
func (h *Handler) ServeBook(w http.ResponseWriter, r *http.Request) {
	b, ok := h.book(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.viewBook(h.Session.Record(), b))
}

// ServeProgress handles GET /api/progress with the canonical record.
func (h *Handler) ServeProgress(w http.ResponseWriter, _ *http.Request) {
	data, err := progress.Encode(h.Session.Record())
	if err != nil {
		h.Log.Error("encoding progress", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// ServeSummary handles GET /api/summary.
func (h *Handler) ServeSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Session.Summary())
}

// ServeFavorites handles GET /api/favorites.
func (h *Handler) ServeFavorites(w http.ResponseWriter, _ *http.Request) {
	idx := progress.Favorites(h.Session.Record(), h.Session.Catalog())
	out := favoritesView{
		Books:    idx.Books,
		Chapters: make([]favoriteChapterView, 0, len(idx.Chapters)),
	}
	if out.Books == nil {
		out.Books = []catalog.Book{}
	}
	for _, fc := range idx.Chapters {
		out.Chapters = append(out.Chapters, favoriteChapterView{BookID: fc.Book.ID, Name: fc.Book.Name, Chapters: fc.Chapters})
	}
	writeJSON(w, http.StatusOK, out)
}

// ServeReflection handles GET /api/reflection. It always answers 200.
func (h *Handler) ServeReflection(w http.ResponseWriter, r *http.Request) {
	s := h.Session.Summary()
	text := h.Reflector.Request(r.Context(), s.CompletedBooks, s.TotalBooks, s.LastCompleted)
	writeJSON(w, http.StatusOK, reflectionResponse{Text: text})
}

// HandleToggleBook handles POST /api/books/{id}/toggle.
func (h *Handler) HandleToggleBook(w http.ResponseWriter, r *http.Request) {
	b, ok := h.book(w, r)
	if !ok {
		return
	}
	rec, err := h.Session.ToggleBook(r.Context(), b.ID)
	h.respondBook(w, rec, b, err)
}

// HandleToggleChapter handles POST /api/books/{id}/chapters/{n}/toggle.
func (h *Handler) HandleToggleChapter(w http.ResponseWriter, r *http.Request) {
	b, ch, ok := h.chapter(w, r)
	if !ok {
		return
	}
	rec, err := h.Session.ToggleChapter(r.Context(), b.ID, ch)
	h.respondBook(w, rec, b, err)
}

// HandleFavoriteBook handles POST /api/books/{id}/favorite.
func (h *Handler) HandleFavoriteBook(w http.ResponseWriter, r *http.Request) {
	b, ok := h.book(w, r)
	if !ok {
		return
	}
	rec, err := h.Session.ToggleFavoriteBook(r.Context(), b.ID)
	h.respondBook(w, rec, b, err)
}

// HandleFavoriteChapter handles POST /api/books/{id}/chapters/{n}/favorite.
func (h *Handler) HandleFavoriteChapter(w http.ResponseWriter, r *http.Request) {
	b, ch, ok := h.chapter(w, r)
	if !ok {
		return
	}
	rec, err := h.Session.ToggleFavoriteChapter(r.Context(), b.ID, ch)
	h.respondBook(w, rec, b, err)
}

// HandleSetDate handles PUT /api/books/{id}/date with {"date":"YYYY-MM-DD"}.
// An empty date clears it.
func (h *Handler) HandleSetDate(w http.ResponseWriter, r *http.Request) {
	b, ok := h.book(w, r)
	if !ok {
		return
	}
	var req dateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rec, err := h.Session.SetCompletionDate(r.Context(), b.ID, req.Date)
	h.respondBook(w, rec, b, err)
}

// HandleSetPlace handles PUT /api/place. Chapter and verse are clamped to
// the book.
func (h *Handler) HandleSetPlace(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	b, err := h.Session.Catalog().Resolve(req.BookID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	place := progress.ClampPlace(b, req.Chapter, req.Verse, h.MaxVerses)
	rec, err := h.Session.SetCurrentPlace(r.Context(), place)
	if err != nil {
		h.saveFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec.CurrentPlace)
}

// HandleClearPlace handles DELETE /api/place.
func (h *Handler) HandleClearPlace(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Session.ClearCurrentPlace(r.Context()); err != nil {
		h.saveFailed(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleReset handles DELETE /api/progress?confirm=yes.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	confirm := tracker.ConfirmFunc(func(string) (bool, error) {
		return r.URL.Query().Get("confirm") == "yes", nil
	})
	_, err := h.Session.Reset(r.Context(), confirm)
	switch {
	case errors.Is(err, tracker.ErrResetDeclined):
		writeError(w, http.StatusPreconditionRequired, errors.New("reset requires confirm=yes"))
	case err != nil:
		h.saveFailed(w, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) book(w http.ResponseWriter, r *http.Request) (catalog.Book, bool) {
	b, err := h.Session.Catalog().Resolve(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return catalog.Book{}, false
	}
	return b, true
}

func (h *Handler) chapter(w http.ResponseWriter, r *http.Request) (catalog.Book, int, bool) {
	b, ok := h.book(w, r)
	if !ok {
		return b, 0, false
	}
	ch, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || ch < 1 || ch > b.Chapters {
		writeError(w, http.StatusBadRequest, errors.New("chapter out of range"))
		return b, 0, false
	}
	return b, ch, true
}

func (h *Handler) respondBook(w http.ResponseWriter, rec progress.Record, b catalog.Book, err error) {
	if err != nil {
		h.saveFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.viewBook(rec, b))
}

// saveFailed reports a persistence error. The session has already adopted
// the new state.
func (h *Handler) saveFailed(w http.ResponseWriter, err error) {
	h.Log.Error("api: saving progress failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, err)
}

func (h *Handler) viewBook(rec progress.Record, b catalog.Book) bookView {
	v := bookView{
		Book:      b,
		Status:    stats.Classify(rec, b).String(),
		Completed: rec.Completed(b.ID),
		Favorite:  rec.IsBookFavorite(b.ID),
		Favorites: rec.FavoritedChapters[b.ID],
	}
	if v.Completed == nil {
		v.Completed = []int{}
	}
	if v.Favorites == nil {
		v.Favorites = []int{}
	}
	v.CompletionDate, _ = rec.CompletionDate(b.ID)
	return v
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	if err := validate.Struct(v); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
