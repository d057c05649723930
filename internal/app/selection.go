package app

import "github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"

// SelectionEntry est une ligne du tracker: index dans le flux + épisode.
type SelectionEntry struct {
	Index   int
	Episode domain.Episode
}

// SelectionTracker mémorise les épisodes sélectionnés de la série affichée,
// dans l'ordre d'insertion. Il est reconstruit depuis la page à chaque
// réconciliation; il n'est jamais la source de vérité.
//
// Pas thread-safe: la SyncLoop le protège.
type SelectionTracker struct {
	order   []int
	byIndex map[int]domain.Episode
}

func NewSelectionTracker() *SelectionTracker {
	return &SelectionTracker{byIndex: map[int]domain.Episode{}}
}

func (t *SelectionTracker) Select(index int, ep domain.Episode) {
	if _, ok := t.byIndex[index]; ok {
		return
	}
	t.byIndex[index] = ep
	t.order = append(t.order, index)
}

func (t *SelectionTracker) Deselect(index int) {
	if _, ok := t.byIndex[index]; !ok {
		return
	}
	delete(t.byIndex, index)
	for i, idx := range t.order {
		if idx == index {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func (t *SelectionTracker) ClearAll() {
	t.order = nil
	clear(t.byIndex)
}

func (t *SelectionTracker) Len() int { return len(t.order) }

func (t *SelectionTracker) Has(index int) bool {
	_, ok := t.byIndex[index]
	return ok
}

func (t *SelectionTracker) Entries() []SelectionEntry {
	out := make([]SelectionEntry, 0, len(t.order))
	for _, idx := range t.order {
		out = append(out, SelectionEntry{Index: idx, Episode: t.byIndex[idx]})
	}
	return out
}

func (t *SelectionTracker) Indices() []int {
	return append([]int(nil), t.order...)
}
