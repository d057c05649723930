package ports

import (
	"context"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"
)

// FeedSource récupère et parse le flux d'une série.
// Erreurs attendues: *domain.FetchError (réseau/HTTP) ou *domain.FeedParseError.
type FeedSource interface {
	Episodes(ctx context.Context, feedURL string) ([]domain.Episode, error)
}
