package memorybus

import (
	"strings"
	"sync"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/ports"
)

const subscriberBuffer = 64

// Bus est un pub/sub en mémoire. Un abonné trop lent perd des événements
// plutôt que de bloquer la session.
type Bus struct {
	mu     sync.Mutex
	subs   map[chan ports.Event]string
	closed bool
}

func New() *Bus {
	return &Bus{subs: make(map[chan ports.Event]string)}
}

func (b *Bus) Publish(topic string, payload []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	evt := ports.Event{Topic: topic, Payload: payload}
	for ch, prefix := range b.subs {
		if !strings.HasPrefix(topic, prefix) {
			continue
		}
		select {
		case ch <- evt:
		default:
		}
	}
}

func (b *Bus) Subscribe() (<-chan ports.Event, func()) {
	return b.SubscribePrefix("")
}

// SubscribePrefix ne reçoit que les topics commençant par prefix.
func (b *Bus) SubscribePrefix(prefix string) (<-chan ports.Event, func()) {
	ch := make(chan ports.Event, subscriberBuffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[ch] = prefix

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Close ferme tous les abonnements; les Publish suivants sont ignorés.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		close(ch)
	}
	clear(b.subs)
}
