package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/ports"
)

// HistoryMode choisit comment "tout sélectionner" / "inverser" écrivent le hash.
type HistoryMode string

const (
	HistoryReplace HistoryMode = "replace"
	HistoryPush    HistoryMode = "push"
)

func ParseHistoryMode(s string) (HistoryMode, error) {
	switch HistoryMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", HistoryReplace:
		return HistoryReplace, nil
	case HistoryPush:
		return HistoryPush, nil
	default:
		return "", fmt.Errorf("invalid history mode %q (want replace|push)", s)
	}
}

// ChangeFunc décide si le nombre d'items cochés justifie une réconciliation.
type ChangeFunc func(prevCount, count int) bool

// CountChanged est le prédicat par défaut: sortie rapide si le compte est stable.
func CountChanged(prevCount, count int) bool { return prevCount != count }

type SyncOptions struct {
	TickInterval time.Duration
	BulkHistory  HistoryMode
	Changed      ChangeFunc
}

func DefaultSyncOptions() SyncOptions {
	return SyncOptions{
		TickInterval: 250 * time.Millisecond,
		BulkHistory:  HistoryReplace,
		Changed:      CountChanged,
	}
}

// SyncLoop est la session de navigation: elle possède le tracker de
// sélection et aligne page, mémoire et fragment d'URL.
//
// Toutes les mutations passent sous mu, ce qui rend atomique la séquence
// clearAll + repeuplement vis-à-vis des ticks. Le fetch d'une série se fait
// hors verrou; son résultat est ignoré si la série active a changé entre-temps.
type SyncLoop struct {
	id        string
	logger    zerolog.Logger
	cache     *FeedCache
	watched   *WatchedStore
	page      ports.Page
	location  ports.Location
	clipboard ports.Clipboard
	bus       ports.EventBus
	opts      SyncOptions

	mu         sync.Mutex
	state      domain.SessionState
	show       string
	message    string
	generation uint64
	tracker    *SelectionTracker
	lastCount  int
	dirty      bool
	pushNext   bool
	payload    string
}

func NewSyncLoop(logger zerolog.Logger, cache *FeedCache, watched *WatchedStore, page ports.Page, location ports.Location, clipboard ports.Clipboard, bus ports.EventBus, opts SyncOptions) *SyncLoop {
	def := DefaultSyncOptions()
	if opts.TickInterval <= 0 {
		opts.TickInterval = def.TickInterval
	}
	if opts.BulkHistory == "" {
		opts.BulkHistory = def.BulkHistory
	}
	if opts.Changed == nil {
		opts.Changed = def.Changed
	}
	id := xid.New().String()
	return &SyncLoop{
		id:        id,
		logger:    logger.With().Str("session", id).Logger(),
		cache:     cache,
		watched:   watched,
		page:      page,
		location:  location,
		clipboard: clipboard,
		bus:       bus,
		opts:      opts,
		state:     domain.StateIdle,
		tracker:   NewSelectionTracker(),
	}
}

func (s *SyncLoop) ID() string { return s.id }

// Run exécute les ticks de réconciliation jusqu'à l'annulation de ctx.
// Un tick en échec est journalisé; le suivant repart normalement.
func (s *SyncLoop) Run(ctx context.Context) {
	ticker := time.NewTicker(s.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("sync loop stopped")
			return
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("reconciliation tick failed")
			}
		}
	}
}

// Navigate simule un clic sur un lien de série: nouvelle entrée d'historique puis hashchange.
// L'écriture du hash et le passage en Loading se font sous le même verrou:
// un tick concurrent ne réécrit jamais le hash de l'ancienne série.
func (s *SyncLoop) Navigate(ctx context.Context, hash string) error {
	if !strings.HasPrefix(hash, "#") {
		hash = "#" + hash
	}
	s.mu.Lock()
	s.location.PushHash(hash)
	return s.loadLocked(ctx)
}

// Load traite un hashchange (ou le chargement initial): décode le hash,
// récupère la série via le cache, peuple la page puis passe en Ready.
func (s *SyncLoop) Load(ctx context.Context) error {
	s.mu.Lock()
	return s.loadLocked(ctx)
}

// loadLocked est appelé sous mu et le libère; il le relâche pendant le fetch.
func (s *SyncLoop) loadLocked(ctx context.Context) error {
	st := DecodeHash(s.location.Hash())

	s.generation++
	gen := s.generation
	s.tracker.ClearAll()
	s.payload = ""
	s.lastCount = 0
	s.dirty = false
	s.pushNext = false

	if st.Show == "" {
		s.state = domain.StateIdle
		s.show = ""
		s.setMessageLocked("")
		s.publishLocked("session.loaded", nil)
		s.mu.Unlock()
		return nil
	}

	name := st.Show
	if show, ok := s.cache.Shows().Lookup(st.Show); ok {
		name = show.Name
	}
	s.state = domain.StateLoading
	s.show = name
	s.setMessageLocked(fmt.Sprintf("loading [%s] ..", name))
	s.mu.Unlock()

	eps, err := s.cache.Get(ctx, name)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logger.Debug().Str("show", name).Msg("stale load discarded")
		return nil
	}
	if err != nil {
		s.state = domain.StateIdle
		s.show = ""
		s.setMessageLocked(failureMessage(name, err))
		s.publishLocked("session.failed", map[string]string{"show": name, "code": ErrorCode(err), "error": err.Error()})
		s.logger.Warn().Err(err).Str("show", name).Msg("load failed")
		return err
	}

	s.message = ""
	s.page.Render(name, eps)
	for i, ep := range eps {
		if s.watched != nil && s.watched.IsWatched(ep.Title) {
			s.page.SetWatched(i, true)
		}
	}
	for _, idx := range st.Selected {
		if idx < len(eps) {
			s.page.SetChecked(idx, true)
		}
	}
	s.state = domain.StateReady

	if err := s.reconcileLocked(); err != nil {
		return err
	}
	s.logger.Info().Str("show", name).Int("episodes", len(eps)).Int("selected", s.tracker.Len()).Msg("show loaded")
	s.publishLocked("session.loaded", nil)
	return nil
}

// Tick est une itération de la boucle de réconciliation. Hors Ready
// (chargement en cours, aucune série) elle ne fait rien.
func (s *SyncLoop) Tick(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.StateReady {
		return nil
	}
	count := s.checkedCountLocked()
	if !s.dirty && !s.opts.Changed(s.lastCount, count) {
		return nil
	}
	return s.reconcileLocked()
}

// SetChecked est l'événement item-checked-changed: seule la page change,
// le tracker suivra au prochain tick.
func (s *SyncLoop) SetChecked(index int, checked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= s.page.Len() {
		return fmt.Errorf("%w: %d", domain.ErrIndexOutOfRange, index)
	}
	s.page.SetChecked(index, checked)
	s.dirty = true
	return nil
}

func (s *SyncLoop) SelectAll() {
	s.bulkUpdate(func(bool) bool { return true })
}

func (s *SyncLoop) ReverseSelection() {
	s.bulkUpdate(func(checked bool) bool { return !checked })
}

func (s *SyncLoop) bulkUpdate(next func(checked bool) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.page.Len()
	for i := 0; i < n; i++ {
		s.page.SetChecked(i, next(s.page.Checked(i)))
	}
	// Le compte peut rester identique (inversion de 1 sur 2): on force le tick.
	s.dirty = true
	if s.opts.BulkHistory == HistoryPush {
		s.pushNext = true
	}
}

// CopySelected écrit le presse-papier courant. Un échec est journalisé et
// renvoyé comme *domain.ClipboardWriteError; il n'affecte pas la session.
func (s *SyncLoop) CopySelected(ctx context.Context) error {
	s.mu.Lock()
	payload := s.payload
	s.mu.Unlock()

	if s.clipboard == nil {
		return &domain.ClipboardWriteError{Err: errors.New("no clipboard configured")}
	}
	if err := s.clipboard.WriteText(ctx, payload); err != nil {
		s.logger.Warn().Err(err).Msg("copy to clipboard failed")
		return &domain.ClipboardWriteError{Err: err}
	}
	s.logger.Info().Int("bytes", len(payload)).Msg("copied to clipboard")

	s.mu.Lock()
	s.publishLocked("session.copied", map[string]int{"bytes": len(payload)})
	s.mu.Unlock()
	return nil
}

// ToggleWatched inverse le drapeau "vu" de l'item et le persiste.
// Indépendant de la sélection.
func (s *SyncLoop) ToggleWatched(ctx context.Context, index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	eps, ok := s.cache.Lookup(s.show)
	if s.state != domain.StateReady || !ok || index < 0 || index >= len(eps) || index >= s.page.Len() {
		return false, fmt.Errorf("%w: %d", domain.ErrIndexOutOfRange, index)
	}
	watched := !s.page.Watched(index)
	s.page.SetWatched(index, watched)
	s.publishLocked("session.watched", map[string]any{"index": index, "title": eps[index].Title, "watched": watched})

	if s.watched == nil {
		return watched, nil
	}
	if err := s.watched.SetWatched(ctx, eps[index].Title, watched); err != nil {
		s.logger.Warn().Err(err).Str("title", eps[index].Title).Msg("persist watched failed")
		return watched, err
	}
	return watched, nil
}

// reconcileLocked reconstruit le tracker depuis la page, réécrit le hash et
// le presse-papier. Appelé sous mu, en état Ready.
func (s *SyncLoop) reconcileLocked() error {
	eps, ok := s.cache.Lookup(s.show)
	if !ok {
		return fmt.Errorf("feed cache has no entry for %q", s.show)
	}

	indices := s.checkedIndicesLocked()
	s.lastCount = len(indices)
	s.dirty = false

	s.tracker.ClearAll()
	for _, idx := range indices {
		if idx < len(eps) {
			s.tracker.Select(idx, eps[idx])
		}
	}

	hash := EncodeHash(s.show, s.tracker.Indices())
	if hash != s.location.Hash() {
		if s.pushNext {
			s.location.PushHash(hash)
		} else {
			s.location.ReplaceHash(hash)
		}
	}
	s.pushNext = false

	var b strings.Builder
	for _, e := range s.tracker.Entries() {
		b.WriteString(e.Episode.URL)
		b.WriteByte('\n')
	}
	s.payload = b.String()

	s.logger.Debug().Str("hash", hash).Int("selected", s.tracker.Len()).Msg("selection reconciled")
	s.publishLocked("session.selection", nil)
	return nil
}

func (s *SyncLoop) checkedIndicesLocked() []int {
	var out []int
	n := s.page.Len()
	for i := 0; i < n; i++ {
		if s.page.Checked(i) {
			out = append(out, i)
		}
	}
	return out
}

func (s *SyncLoop) checkedCountLocked() int {
	c := 0
	n := s.page.Len()
	for i := 0; i < n; i++ {
		if s.page.Checked(i) {
			c++
		}
	}
	return c
}

func (s *SyncLoop) setMessageLocked(msg string) {
	s.message = msg
	s.page.ShowMessage(msg)
}

func failureMessage(show string, err error) string {
	var unknown *domain.UnknownShowError
	if errors.As(err, &unknown) {
		return fmt.Sprintf("no such show [%s]", show)
	}
	return fmt.Sprintf("failed to load [%s]", show)
}

type sessionEvent struct {
	Session string              `json:"session"`
	State   domain.SessionState `json:"state"`
	Show    string              `json:"show"`
	Hash    string              `json:"hash"`
	Data    any                 `json:"data,omitempty"`
}

func (s *SyncLoop) publishLocked(topic string, data any) {
	if s.bus == nil {
		return
	}
	b, err := json.Marshal(sessionEvent{
		Session: s.id,
		State:   s.state,
		Show:    s.show,
		Hash:    s.location.Hash(),
		Data:    data,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("topic", topic).Msg("encode session event failed")
		return
	}
	s.bus.Publish(topic, b)
}
