package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/ports"
)

// WatchedEpisodeKey est la clé durable qui contient le tableau JSON des titres vus.
const WatchedEpisodeKey = "watched_episode"

// WatchedStore est l'ensemble persistant des titres marqués "vu".
// Chaque mutation réécrit l'ensemble complet (pas de batch).
type WatchedStore struct {
	logger zerolog.Logger
	kv     ports.KeyValueStore

	mu     sync.Mutex
	titles map[string]struct{}
	order  []string
}

// LoadWatchedStore lit l'ensemble persisté. Stockage vide, illisible ou en
// erreur: on démarre sur un ensemble vide, sans échouer.
func LoadWatchedStore(ctx context.Context, logger zerolog.Logger, kv ports.KeyValueStore) *WatchedStore {
	s := &WatchedStore{logger: logger, kv: kv, titles: map[string]struct{}{}}

	b, err := kv.Get(ctx, WatchedEpisodeKey)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			logger.Warn().Err(&domain.StorageError{Op: "get", Key: WatchedEpisodeKey, Err: err}).Msg("watched set unreadable, starting empty")
		}
		return s
	}

	var titles []string
	if err := json.Unmarshal(b, &titles); err != nil {
		logger.Warn().Err(err).Msg("watched set corrupted, starting empty")
		return s
	}
	for _, t := range titles {
		if _, dup := s.titles[t]; dup {
			continue
		}
		s.titles[t] = struct{}{}
		s.order = append(s.order, t)
	}
	logger.Debug().Int("titles", len(s.order)).Msg("watched set loaded")
	return s
}

func (s *WatchedStore) IsWatched(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.titles[title]
	return ok
}

// SetWatched est idempotent: un état inchangé n'écrit rien.
// En cas d'échec d'écriture l'état mémoire est conservé et une
// *domain.StorageError est renvoyée.
func (s *WatchedStore) SetWatched(ctx context.Context, title string, watched bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, has := s.titles[title]
	if has == watched {
		return nil
	}
	if watched {
		s.titles[title] = struct{}{}
		s.order = append(s.order, title)
	} else {
		delete(s.titles, title)
		kept := s.order[:0]
		for _, t := range s.order {
			if t != title {
				kept = append(kept, t)
			}
		}
		s.order = kept
	}

	b, err := json.Marshal(s.snapshotLocked())
	if err != nil {
		return &domain.StorageError{Op: "encode", Key: WatchedEpisodeKey, Err: err}
	}
	if err := s.kv.Put(ctx, WatchedEpisodeKey, b); err != nil {
		return &domain.StorageError{Op: "put", Key: WatchedEpisodeKey, Err: err}
	}
	return nil
}

func (s *WatchedStore) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *WatchedStore) snapshotLocked() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
