package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/app"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/httpjson"
)

// SessionHandler est la surface d'événements UI de la session.
type SessionHandler struct {
	session *app.SyncLoop
	history HistoryReader
}

func NewSessionHandler(session *app.SyncLoop, history HistoryReader) *SessionHandler {
	return &SessionHandler{session: session, history: history}
}

func (h *SessionHandler) Routes(r chi.Router) {
	r.Get("/session", h.get)
	r.Post("/session/hash", h.navigate)
	r.Post("/session/commands", h.command)
	r.Post("/session/items/{index}/check", h.setChecked(true))
	r.Post("/session/items/{index}/uncheck", h.setChecked(false))
	r.Post("/session/items/{index}/watch", h.watch)
	r.Post("/session/select-all", h.selectAll)
	r.Post("/session/reverse-selection", h.reverse)
	r.Post("/session/copy-selected", h.copySelected)
}

type sessionResponse struct {
	app.SessionDTO
	HistoryLength int `json:"historyLength,omitempty"`
}

func (h *SessionHandler) snapshot() sessionResponse {
	out := sessionResponse{SessionDTO: h.session.Snapshot()}
	if h.history != nil {
		out.HistoryLength = len(h.history.History())
	}
	return out
}

func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.snapshot())
}

type navigateRequest struct {
	Hash string `json:"hash"`
}

func (h *SessionHandler) navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.session.Navigate(r.Context(), req.Hash); err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, h.snapshot())
}

func (h *SessionHandler) command(w http.ResponseWriter, r *http.Request) {
	var cmd app.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.session.Dispatch(r.Context(), cmd); err != nil {
		if app.ErrorCode(err) == app.CodeInternalError {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, h.snapshot())
}

func parseIndex(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrIndexOutOfRange, raw)
	}
	return i, nil
}

func (h *SessionHandler) setChecked(checked bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		i, err := parseIndex(r)
		if err == nil {
			err = h.session.SetChecked(i, checked)
		}
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		httpjson.Write(w, http.StatusAccepted, h.snapshot())
	}
}

func (h *SessionHandler) selectAll(w http.ResponseWriter, r *http.Request) {
	h.session.SelectAll()
	httpjson.Write(w, http.StatusAccepted, h.snapshot())
}

func (h *SessionHandler) reverse(w http.ResponseWriter, r *http.Request) {
	h.session.ReverseSelection()
	httpjson.Write(w, http.StatusAccepted, h.snapshot())
}

func (h *SessionHandler) copySelected(w http.ResponseWriter, r *http.Request) {
	if err := h.session.CopySelected(r.Context()); err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, h.snapshot())
}

func (h *SessionHandler) watch(w http.ResponseWriter, r *http.Request) {
	i, err := parseIndex(r)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	watched, err := h.session.ToggleWatched(r.Context(), i)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"index": i, "watched": watched})
}
