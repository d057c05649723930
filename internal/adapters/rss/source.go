package rss

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"
)

const maxFeedBytes = 8 << 20

// Source récupère un flux RSS en HTTP et le convertit en épisodes,
// dans l'ordre du document.
type Source struct {
	Client    *http.Client
	UserAgent string
}

func NewSource(timeout time.Duration) *Source {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Source{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: "epb-server",
	}
}

func (s *Source) Episodes(ctx context.Context, feedURL string) ([]domain.Episode, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: feedURL, Err: err}
	}
	req.Header.Set("User-Agent", s.UserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.1")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: feedURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, &domain.FetchError{URL: feedURL, Err: fmt.Errorf("http error: %s", resp.Status)}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, &domain.FetchError{URL: feedURL, Err: err}
	}
	return Parse(string(b))
}

// Parse convertit un document RSS. Un item sans title, link, pubDate ou
// enclosure rend tout le flux invalide.
func Parse(doc string) ([]domain.Episode, error) {
	feed, err := gofeed.NewParser().ParseString(doc)
	if err != nil {
		return nil, &domain.FeedParseError{Err: err}
	}

	out := make([]domain.Episode, 0, len(feed.Items))
	for i, it := range feed.Items {
		ep, err := toEpisode(it)
		if err != nil {
			return nil, &domain.FeedParseError{Err: fmt.Errorf("item %d: %w", i, err)}
		}
		out = append(out, ep)
	}
	return out, nil
}

func toEpisode(it *gofeed.Item) (domain.Episode, error) {
	title := strings.TrimSpace(it.Title)
	if title == "" {
		return domain.Episode{}, errors.New("missing title")
	}
	link := strings.TrimSpace(it.Link)
	if link == "" {
		return domain.Episode{}, errors.New("missing link")
	}
	if strings.TrimSpace(it.Published) == "" {
		return domain.Episode{}, errors.New("missing pubDate")
	}
	if it.PublishedParsed == nil {
		return domain.Episode{}, fmt.Errorf("invalid pubDate %q", it.Published)
	}
	if len(it.Enclosures) == 0 || it.Enclosures[0] == nil || strings.TrimSpace(it.Enclosures[0].URL) == "" {
		return domain.Episode{}, errors.New("missing enclosure")
	}
	enc := it.Enclosures[0]
	return domain.Episode{
		Title:        title,
		PublishedAt:  it.PublishedParsed.UTC(),
		Reference:    link,
		ResourceType: strings.TrimSpace(enc.Type),
		URL:          strings.TrimSpace(enc.URL),
		Description:  strings.TrimSpace(it.Description),
	}, nil
}
