package ports

import (
	"context"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"
)

// Page est la surface d'affichage (le DOM). Le rendu réel est hors périmètre:
// la boucle de synchro n'a besoin que de lire/écrire les états cochés et vus.
type Page interface {
	// ShowMessage remplace le contenu par un message (chaîne vide = contenu vide).
	ShowMessage(msg string)
	// Render remplace le contenu par un item par épisode, tous décochés.
	Render(show string, episodes []domain.Episode)
	Len() int
	Checked(index int) bool
	SetChecked(index int, checked bool)
	Watched(index int) bool
	SetWatched(index int, watched bool)
}

// Location expose le fragment d'URL de la page.
type Location interface {
	Hash() string
	// ReplaceHash réécrit le fragment sans nouvelle entrée d'historique.
	ReplaceHash(hash string)
	// PushHash ajoute une entrée d'historique.
	PushHash(hash string)
}

type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}
