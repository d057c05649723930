// Package page fournit une page en mémoire: liste d'items cochables,
// zone de message et fragment d'URL avec historique.
package page

import (
	"sync"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"
)

type item struct {
	episode domain.Episode
	checked bool
	watched bool
}

// Page implémente ports.Page et ports.Location.
type Page struct {
	mu      sync.Mutex
	show    string
	message string
	items   []item
	history []string
}

// New démarre avec un fragment initial (peut être vide).
func New(initialHash string) *Page {
	return &Page{history: []string{initialHash}}
}

func (p *Page) ShowMessage(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = msg
	p.show = ""
	p.items = nil
}

func (p *Page) Render(show string, episodes []domain.Episode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = ""
	p.show = show
	p.items = make([]item, len(episodes))
	for i, ep := range episodes {
		p.items[i] = item{episode: ep}
	}
}

func (p *Page) Message() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.message
}

func (p *Page) Show() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.show
}

func (p *Page) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

func (p *Page) Checked(index int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= len(p.items) {
		return false
	}
	return p.items[index].checked
}

func (p *Page) SetChecked(index int, checked bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= len(p.items) {
		return
	}
	p.items[index].checked = checked
}

func (p *Page) Watched(index int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= len(p.items) {
		return false
	}
	return p.items[index].watched
}

func (p *Page) SetWatched(index int, watched bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= len(p.items) {
		return
	}
	p.items[index].watched = watched
}

func (p *Page) Hash() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.history[len(p.history)-1]
}

func (p *Page) ReplaceHash(hash string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history[len(p.history)-1] = hash
}

func (p *Page) PushHash(hash string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history = append(p.history, hash)
}

// History renvoie toutes les entrées, la plus récente en dernier.
func (p *Page) History() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.history...)
}
