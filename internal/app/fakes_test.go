package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/ports"
)

const (
	frierenFeed = "https://feeds.test/frieren.xml"
	jujutsuFeed = "https://feeds.test/jujutsu.xml"
)

func testShows() []domain.Show {
	return []domain.Show{
		{Name: "soso no frieren", FeedURL: frierenFeed},
		{Name: "jujutsu kaisen", FeedURL: jujutsuFeed},
	}
}

func testRegistry() *ShowRegistry {
	r, err := NewShowRegistry(testShows())
	if err != nil {
		panic(err)
	}
	return r
}

func makeEpisodes(prefix string, n int) []domain.Episode {
	base := time.Date(2023, 9, 29, 0, 0, 0, 0, time.UTC)
	out := make([]domain.Episode, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Episode{
			Title:        fmt.Sprintf("%s %02d", prefix, i+1),
			PublishedAt:  base.Add(time.Duration(i) * 7 * 24 * time.Hour),
			Reference:    fmt.Sprintf("https://example.test/%s/%d", prefix, i+1),
			ResourceType: "application/x-bittorrent",
			URL:          fmt.Sprintf("magnet:?xt=urn:btih:%s%02d", prefix, i+1),
		})
	}
	return out
}

// fakeSource compte les appels et peut bloquer un flux jusqu'à release.
type fakeSource struct {
	mu      sync.Mutex
	feeds   map[string][]domain.Episode
	errs    map[string]error
	calls   map[string]int
	gates   map[string]chan struct{}
	started chan string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		feeds:   map[string][]domain.Episode{},
		errs:    map[string]error{},
		calls:   map[string]int{},
		gates:   map[string]chan struct{}{},
		started: make(chan string, 16),
	}
}

func (f *fakeSource) gate(url string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[url] = ch
	return ch
}

func (f *fakeSource) setErr(url string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.errs, url)
		return
	}
	f.errs[url] = err
}

func (f *fakeSource) Calls(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func (f *fakeSource) Episodes(ctx context.Context, url string) ([]domain.Episode, error) {
	f.mu.Lock()
	f.calls[url]++
	gate := f.gates[url]
	f.mu.Unlock()

	select {
	case f.started <- url:
	default:
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	eps, ok := f.feeds[url]
	if !ok {
		return nil, &domain.FetchError{URL: url, Err: errors.New("404 Not Found")}
	}
	return append([]domain.Episode(nil), eps...), nil
}

type memKV struct {
	mu     sync.Mutex
	data   map[string][]byte
	puts   int
	putErr error
	getErr error
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	b, ok := m.data[key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *memKV) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

type fakeItem struct {
	episode domain.Episode
	checked bool
	watched bool
}

// fakePage joue le rôle du DOM et de location.
type fakePage struct {
	mu      sync.Mutex
	message string
	show    string
	items   []fakeItem
	hash    string
	pushes  int
	replace int
}

func (p *fakePage) ShowMessage(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = msg
	p.show = ""
	p.items = nil
}

func (p *fakePage) Render(show string, episodes []domain.Episode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = ""
	p.show = show
	p.items = make([]fakeItem, len(episodes))
	for i, ep := range episodes {
		p.items[i] = fakeItem{episode: ep}
	}
}

func (p *fakePage) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

func (p *fakePage) Checked(i int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return i >= 0 && i < len(p.items) && p.items[i].checked
}

func (p *fakePage) SetChecked(i int, checked bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i >= 0 && i < len(p.items) {
		p.items[i].checked = checked
	}
}

func (p *fakePage) Watched(i int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return i >= 0 && i < len(p.items) && p.items[i].watched
}

func (p *fakePage) SetWatched(i int, watched bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i >= 0 && i < len(p.items) {
		p.items[i].watched = watched
	}
}

func (p *fakePage) Hash() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hash
}

func (p *fakePage) ReplaceHash(h string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hash = h
	p.replace++
}

func (p *fakePage) PushHash(h string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hash = h
	p.pushes++
}

func (p *fakePage) setHash(h string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hash = h
}

func (p *fakePage) renderedShow() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.show
}

type fakeClipboard struct {
	mu     sync.Mutex
	text   string
	writes int
	err    error
}

func (c *fakeClipboard) WriteText(ctx context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.writes++
	c.text = text
	return nil
}
