package models

import "time"

// Note is a free-form scribble. Notes never turn into tasks on their own;
// promoting one yields a TaskDraft.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title,omitempty" yaml:"title,omitempty"`
	Category  string    `json:"category,omitempty" yaml:"category,omitempty"`
	Text      string    `json:"text,omitempty" yaml:"text,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}
