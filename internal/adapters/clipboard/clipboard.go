package clipboard

import (
	"context"
	"sync"

	"github.com/atotto/clipboard"
)

// System écrit dans le presse-papiers de la machine (xclip/xsel, pbcopy, ...).
type System struct{}

func (System) WriteText(_ context.Context, text string) error {
	return clipboard.WriteAll(text)
}

// Available indique si un presse-papiers système est utilisable.
func Available() bool {
	return !clipboard.Unsupported
}

// Memory garde le dernier texte écrit; utile en headless et en test.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
	return nil
}

func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}
