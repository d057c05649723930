package app

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"
)

// ShowRegistry est la liste (immutable) des séries proposées par l'UI.
type ShowRegistry struct {
	shows  []domain.Show
	byName map[string]domain.Show
}

func NewShowRegistry(shows []domain.Show) (*ShowRegistry, error) {
	r := &ShowRegistry{byName: make(map[string]domain.Show, len(shows))}
	for _, s := range shows {
		s.Name = normalizeShowName(s.Name)
		s.FeedURL = strings.TrimSpace(s.FeedURL)
		if s.Name == "" {
			return nil, fmt.Errorf("show without name (feed %q)", s.FeedURL)
		}
		if s.FeedURL == "" {
			return nil, fmt.Errorf("show %q: missing feed url", s.Name)
		}
		if domain.HasReservedChars(s.Name) {
			return nil, fmt.Errorf("show %q: name contains one of %q", s.Name, domain.ReservedNameChars)
		}
		if _, dup := r.byName[s.Name]; dup {
			return nil, fmt.Errorf("show %q declared twice", s.Name)
		}
		r.byName[s.Name] = s
		r.shows = append(r.shows, s)
	}
	return r, nil
}

func (r *ShowRegistry) Lookup(name string) (domain.Show, bool) {
	s, ok := r.byName[normalizeShowName(name)]
	return s, ok
}

func (r *ShowRegistry) Shows() []domain.Show {
	return append([]domain.Show(nil), r.shows...)
}

// Un hash saisi à la main peut arriver en forme décomposée (NFD).
func normalizeShowName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
