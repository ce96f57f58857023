package httpdelivery

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/service"
)

// sessionPrefix keeps browser sessions apart from other transports sharing the storage.
const sessionPrefix = "web:"

// QuizService is the part of the quiz service the HTTP API drives.
type QuizService interface {
	StartSession(ctx context.Context, key string) (entities.Question, error)
	Answer(ctx context.Context, key string, questionID uint64, word string) (entities.AnswerResult, error)
	Next(ctx context.Context, key string) (entities.Question, error)
	End(ctx context.Context, key string)
}

// CatalogStatus reports the load state of the word list.
type CatalogStatus interface {
	Snapshot() (service.CatalogState, []entities.WordEntry, error)
}

type Handler struct {
	quiz          QuizService
	catalog       CatalogStatus
	tmpl          *template.Template
	static        http.FileSystem
	feedbackDelay time.Duration
	logger        *zap.Logger
	newID         func() string
}

func NewHandler(
	quiz QuizService,
	catalog CatalogStatus,
	tmpl *template.Template,
	static http.FileSystem,
	feedbackDelay time.Duration,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		quiz:          quiz,
		catalog:       catalog,
		tmpl:          tmpl,
		static:        static,
		feedbackDelay: feedbackDelay,
		logger:        logger,
		newID:         uuid.NewString,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(h.static)))
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("POST /api/sessions", h.handleStart)
	mux.HandleFunc("POST /api/sessions/{id}/answer", h.handleAnswer)
	mux.HandleFunc("POST /api/sessions/{id}/next", h.handleNext)
	mux.HandleFunc("DELETE /api/sessions/{id}", h.handleEnd)
}

// Routes returns the API and page routes wrapped in request logging.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	h.Register(mux)
	return RequestLogger(h.logger, mux)
}

// ---- Page ----

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := map[string]any{
		"FeedbackDelayMs": h.feedbackDelay.Milliseconds(),
	}
	if err := h.tmpl.ExecuteTemplate(w, "index.tmpl", data); err != nil {
		h.logger.Error("failed to render page", zap.Error(err))
		http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
	}
}

// ---- Health ----

type healthResp struct {
	State string `json:"state"`
	Words int    `json:"words"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	state, words, err := h.catalog.Snapshot()
	resp := healthResp{State: string(state), Words: len(words)}
	status := http.StatusOK
	switch state {
	case service.CatalogLoading:
		status = http.StatusServiceUnavailable
	case service.CatalogFailed:
		status = http.StatusInternalServerError
		if err != nil {
			resp.Error = err.Error()
		}
	}
	writeJSON(w, status, resp)
}

// ---- Sessions ----

type questionResp struct {
	ID      uint64   `json:"id"`
	Meaning string   `json:"meaning"`
	Options []string `json:"options"`
}

func toQuestionResp(q entities.Question) questionResp {
	return questionResp{
		ID:      q.ID,
		Meaning: q.Meaning(),
		Options: q.OptionWords(),
	}
}

type startResp struct {
	SessionID string       `json:"sessionId"`
	Question  questionResp `json:"question"`
}

type errorResp struct {
	State string `json:"state,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	id := h.newID()
	q, err := h.quiz.StartSession(r.Context(), sessionPrefix+id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, startResp{SessionID: id, Question: toQuestionResp(q)})
}

type answerReq struct {
	QuestionID uint64 `json:"questionId"`
	Word       string `json:"word"`
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
		return
	}

	res, err := h.quiz.Answer(r.Context(), sessionPrefix+r.PathValue("id"), req.QuestionID, req.Word)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type nextResp struct {
	Question questionResp `json:"question"`
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	q, err := h.quiz.Next(r.Context(), sessionPrefix+r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nextResp{Question: toQuestionResp(q)})
}

func (h *Handler) handleEnd(w http.ResponseWriter, r *http.Request) {
	h.quiz.End(r.Context(), sessionPrefix+r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps service errors to status codes. Anything that is not a
// loading or missing-session condition is a failed word list.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entities.ErrWordsLoading):
		writeJSON(w, http.StatusServiceUnavailable, errorResp{State: string(service.CatalogLoading)})
	case errors.Is(err, entities.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorResp{Error: err.Error()})
	default:
		h.logger.Error("quiz request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp{
			State: string(service.CatalogFailed),
			Error: err.Error(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
