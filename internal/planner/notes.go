package planner

import (
	"fmt"
	"slices"
	"strings"

	"github.com/josephgoksu/dayplan/models"
)

const promotedTitleRunes = 60

// Notes returns all notes in the order they were written.
func (p *Planner) Notes() []models.Note {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneNotes(p.state.Notes)
}

// AddNote stores a note. Either a title or a text is required.
func (p *Planner) AddNote(title, category, text string) (models.Note, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	note := models.Note{
		Title:    strings.TrimSpace(title),
		Category: strings.TrimSpace(category),
		Text:     strings.TrimSpace(text),
	}
	if note.Title == "" && note.Text == "" {
		return models.Note{}, fmt.Errorf("%w: a note needs a title or text", ErrValidation)
	}
	note.ID = p.newID()
	note.CreatedAt = p.clock.Now()

	err := p.mutate(func(s *State) ([]string, error) {
		s.Notes = append(s.Notes, note)
		return []string{KeyNotes}, nil
	})
	if err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// DeleteNote removes a note; unknown ids are ignored.
func (p *Planner) DeleteNote(id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	deleted := false
	err := p.mutate(func(s *State) ([]string, error) {
		i := slices.IndexFunc(s.Notes, func(n models.Note) bool { return n.ID == id })
		if i < 0 {
			return nil, nil
		}
		s.Notes = slices.Delete(s.Notes, i, i+1)
		deleted = true
		return []string{KeyNotes}, nil
	})
	return deleted, err
}

// PromoteNote prefills a task draft from a note. The note is kept and no task
// is created.
func (p *Planner) PromoteNote(id string) (models.TaskDraft, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := slices.IndexFunc(p.state.Notes, func(n models.Note) bool { return n.ID == id })
	if i < 0 {
		return models.TaskDraft{}, false
	}
	n := p.state.Notes[i]
	title := n.Title
	if title == "" {
		title = truncateRunes(n.Text, promotedTitleRunes)
	}
	return models.TaskDraft{Title: title, Category: n.Category}, true
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
