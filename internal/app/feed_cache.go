package app

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/ports"
)

// FeedCache associe une série à sa liste d'épisodes parsée.
// Premier accès: un seul fetch (les appels concurrents pour la même série
// partagent le même vol); accès suivants: mémoire. Les échecs ne sont jamais
// mis en cache.
type FeedCache struct {
	logger  zerolog.Logger
	shows   *ShowRegistry
	source  ports.FeedSource
	limiter *semaphore.Weighted

	mu      sync.RWMutex
	entries map[string][]domain.Episode
	flights singleflight.Group
}

func NewFeedCache(logger zerolog.Logger, shows *ShowRegistry, source ports.FeedSource) *FeedCache {
	return &FeedCache{
		logger:  logger,
		shows:   shows,
		source:  source,
		entries: map[string][]domain.Episode{},
	}
}

// WithMaxFetches borne les fetchs réseau simultanés (toutes séries confondues).
// n <= 0 retire la borne.
func (c *FeedCache) WithMaxFetches(n int) *FeedCache {
	if n <= 0 {
		c.limiter = nil
		return c
	}
	c.limiter = semaphore.NewWeighted(int64(n))
	return c
}

func (c *FeedCache) Shows() *ShowRegistry { return c.shows }

// Get renvoie les épisodes de la série, en les récupérant au premier appel.
// Annuler ctx libère l'appelant mais n'interrompt pas le fetch en vol.
func (c *FeedCache) Get(ctx context.Context, name string) ([]domain.Episode, error) {
	show, ok := c.shows.Lookup(name)
	if !ok {
		return nil, &domain.UnknownShowError{Name: name}
	}
	if eps, ok := c.Lookup(show.Name); ok {
		return eps, nil
	}

	ch := c.flights.DoChan(show.Name, func() (any, error) {
		return c.fetch(context.WithoutCancel(ctx), show)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]domain.Episode)), nil
	}
}

// Lookup lit le cache sans jamais déclencher de fetch.
func (c *FeedCache) Lookup(name string) ([]domain.Episode, bool) {
	show, ok := c.shows.Lookup(name)
	if !ok {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	eps, ok := c.entries[show.Name]
	if !ok {
		return nil, false
	}
	return slices.Clone(eps), true
}

// Prefetch remplit le cache pour toutes les séries du registre.
// Chaque série est tentée; la première erreur rencontrée est renvoyée.
func (c *FeedCache) Prefetch(ctx context.Context) error {
	var g errgroup.Group
	for _, s := range c.shows.Shows() {
		g.Go(func() error {
			eps, err := c.Get(ctx, s.Name)
			if err != nil {
				c.logger.Warn().Err(err).Str("show", s.Name).Msg("prefetch failed")
				return err
			}
			c.logger.Debug().Str("show", s.Name).Int("episodes", len(eps)).Msg("prefetched")
			return nil
		})
	}
	return g.Wait()
}

func (c *FeedCache) fetch(ctx context.Context, show domain.Show) ([]domain.Episode, error) {
	// Un vol précédent a pu se terminer entre Lookup et DoChan.
	c.mu.RLock()
	cached, ok := c.entries[show.Name]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	if c.limiter != nil {
		if err := c.limiter.Acquire(ctx, 1); err != nil {
			return nil, &domain.FetchError{Show: show.Name, URL: show.FeedURL, Err: err}
		}
		defer c.limiter.Release(1)
	}

	c.logger.Info().Str("show", show.Name).Str("feed", show.FeedURL).Msg("fetching feed")
	eps, err := c.source.Episodes(ctx, show.FeedURL)
	if err != nil {
		return nil, tagShow(show, err)
	}

	c.mu.Lock()
	c.entries[show.Name] = eps
	c.mu.Unlock()
	c.logger.Info().Str("show", show.Name).Int("episodes", len(eps)).Msg("feed cached")
	return eps, nil
}

func tagShow(show domain.Show, err error) error {
	var parse *domain.FeedParseError
	if errors.As(err, &parse) {
		if parse.Show == "" {
			parse.Show = show.Name
		}
		return parse
	}
	var fetch *domain.FetchError
	if errors.As(err, &fetch) {
		if fetch.Show == "" {
			fetch.Show = show.Name
		}
		return fetch
	}
	return &domain.FetchError{Show: show.Name, URL: show.FeedURL, Err: err}
}
