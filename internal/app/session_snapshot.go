package app

import (
	"context"
	"fmt"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"
)

type ItemDTO struct {
	Index        int    `json:"index"`
	Title        string `json:"title"`
	ResourceType string `json:"resourceType"`
	URL          string `json:"url"`
	Checked      bool   `json:"checked"`
	Watched      bool   `json:"watched"`
}

type SessionDTO struct {
	ID        string              `json:"id"`
	State     domain.SessionState `json:"state"`
	Show      string              `json:"show"`
	Hash      string              `json:"hash"`
	Message   string              `json:"message,omitempty"`
	Selected  []int               `json:"selected"`
	Clipboard string              `json:"clipboard"`
	Items     []ItemDTO           `json:"items"`
}

// Snapshot décrit la session telle que l'afficherait la page.
func (s *SyncLoop) Snapshot() SessionDTO {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := SessionDTO{
		ID:        s.id,
		State:     s.state,
		Show:      s.show,
		Hash:      s.location.Hash(),
		Message:   s.message,
		Selected:  s.tracker.Indices(),
		Clipboard: s.payload,
		Items:     []ItemDTO{},
	}
	if out.Selected == nil {
		out.Selected = []int{}
	}
	if s.state != domain.StateReady {
		return out
	}
	eps, _ := s.cache.Lookup(s.show)
	for i := 0; i < s.page.Len() && i < len(eps); i++ {
		out.Items = append(out.Items, ItemDTO{
			Index:        i,
			Title:        eps[i].Title,
			ResourceType: eps[i].ResourceType,
			URL:          eps[i].URL,
			Checked:      s.page.Checked(i),
			Watched:      s.page.Watched(i),
		})
	}
	return out
}

// Noms des commandes émises par la surface UI.
const (
	CmdShowChanged        = "show-changed"
	CmdItemCheckedChanged = "item-checked-changed"
	CmdSelectAll          = "select-all"
	CmdReverseSelection   = "reverse-selection"
	CmdCopySelected       = "copy-selected"
	CmdWatchToggled       = "watch-toggled"
)

type Command struct {
	Name    string `json:"name"`
	Show    string `json:"show,omitempty"`
	Index   int    `json:"index,omitempty"`
	Checked bool   `json:"checked,omitempty"`
}

// Dispatch route une commande UI vers l'opération correspondante.
func (s *SyncLoop) Dispatch(ctx context.Context, cmd Command) error {
	switch cmd.Name {
	case CmdShowChanged:
		return s.Navigate(ctx, EncodeHash(cmd.Show, nil))
	case CmdItemCheckedChanged:
		return s.SetChecked(cmd.Index, cmd.Checked)
	case CmdSelectAll:
		s.SelectAll()
		return nil
	case CmdReverseSelection:
		s.ReverseSelection()
		return nil
	case CmdCopySelected:
		return s.CopySelected(ctx)
	case CmdWatchToggled:
		_, err := s.ToggleWatched(ctx, cmd.Index)
		return err
	default:
		return fmt.Errorf("unknown command %q", cmd.Name)
	}
}
