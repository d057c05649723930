package domain

import "strings"

// Show est une série avec un flux RSS associé. Le nom sert d'identifiant
// (unique dans le registre) et apparaît dans le fragment d'URL.
type Show struct {
	Name    string `json:"name" yaml:"name"`
	FeedURL string `json:"feed" yaml:"feed"`
}

// DefaultShows est le registre embarqué, utilisé sans fichier de séries.
func DefaultShows() []Show {
	return []Show{
		{Name: "soso no frieren", FeedURL: "https://raw.githubusercontent.com/PIK4/gh-action-test/main/rss/soso_no_frieren.rss.xml"},
		{Name: "jujutsu kaisen", FeedURL: "https://raw.githubusercontent.com/PIK4/gh-action-test/main/rss/jujutsu_kaisen.rss.xml"},
		{Name: "spy x framily s02", FeedURL: "https://raw.githubusercontent.com/PIK4/gh-action-test/main/rss/spy_family_s02.rss.xml"},
	}
}

// ReservedNameChars liste les séquences qui cassent l'encodage du fragment.
var ReservedNameChars = []string{"#", "::", "-", "_"}

// HasReservedChars indique si le nom ne survivrait pas à un aller-retour dans le hash.
func HasReservedChars(name string) bool {
	for _, r := range ReservedNameChars {
		if strings.Contains(name, r) {
			return true
		}
	}
	return false
}
