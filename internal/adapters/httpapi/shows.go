package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/app"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/httpjson"
)

type ShowsHandler struct {
	cache *app.FeedCache
}

func NewShowsHandler(cache *app.FeedCache) *ShowsHandler {
	return &ShowsHandler{cache: cache}
}

func (h *ShowsHandler) Routes(r chi.Router) {
	r.Get("/shows", h.list)
	r.Get("/shows/{name}/episodes", h.episodes)
}

type showLink struct {
	Name string `json:"name"`
	Feed string `json:"feed,omitempty"`
	Hash string `json:"hash"`
}

// list renvoie les liens de navigation: "#" (retour à vide) puis une entrée par série.
func (h *ShowsHandler) list(w http.ResponseWriter, r *http.Request) {
	shows := h.cache.Shows().Shows()
	out := make([]showLink, 0, len(shows)+1)
	out = append(out, showLink{Name: "", Hash: "#"})
	for _, s := range shows {
		out = append(out, showLink{Name: s.Name, Feed: s.FeedURL, Hash: app.EncodeHash(s.Name, nil)})
	}
	httpjson.Write(w, http.StatusOK, out)
}

func (h *ShowsHandler) episodes(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	eps, err := h.cache.Get(r.Context(), name)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if eps == nil {
		eps = []domain.Episode{}
	}
	httpjson.Write(w, http.StatusOK, eps)
}
