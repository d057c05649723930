package app

import (
	"strconv"
	"strings"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"
)

const hashSelectionSep = "::"

// EncodeHash construit le fragment "#<show_avec_underscores>[::i-j-k]".
// Les noms contenant '#', "::", '-' ou '_' ne survivent pas à l'aller-retour.
func EncodeHash(show string, selected []int) string {
	var b strings.Builder
	b.WriteByte('#')
	b.WriteString(strings.ReplaceAll(show, " ", "_"))
	if len(selected) == 0 {
		return b.String()
	}
	b.WriteString(hashSelectionSep)
	for i, idx := range selected {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteString(strconv.Itoa(idx))
	}
	return b.String()
}

// DecodeHash est l'inverse d'EncodeHash. Un fragment vide donne ("", aucun index).
// Les jetons non numériques et les doublons sont ignorés; l'ordre d'apparition est conservé.
func DecodeHash(fragment string) domain.HashState {
	fragment = strings.TrimPrefix(fragment, "#")
	if fragment == "" {
		return domain.HashState{}
	}

	name, selection, hasSelection := strings.Cut(fragment, hashSelectionSep)
	st := domain.HashState{Show: strings.ReplaceAll(name, "_", " ")}
	if !hasSelection || selection == "" {
		return st
	}

	seen := map[int]struct{}{}
	for _, tok := range strings.Split(selection, "-") {
		if !isDigits(tok) {
			continue
		}
		idx, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		st.Selected = append(st.Selected, idx)
	}
	return st
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
