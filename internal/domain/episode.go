package domain

import "time"

// Episode est un item parsé d'un flux. Sa position (index) dans la séquence
// du flux est son identifiant au sein de la série.
type Episode struct {
	Title        string    `json:"title"`
	PublishedAt  time.Time `json:"publishAt"`
	Reference    string    `json:"reference"`
	ResourceType string    `json:"resourceType"`
	URL          string    `json:"url"`
	Description  string    `json:"description,omitempty"`
}

// HashState est l'état dérivé porté par le fragment d'URL.
type HashState struct {
	Show     string
	Selected []int
}

// SessionState est l'état de la machine de synchronisation pour la série active.
type SessionState string

const (
	StateIdle    SessionState = "idle"
	StateLoading SessionState = "loading"
	StateReady   SessionState = "ready"
)
