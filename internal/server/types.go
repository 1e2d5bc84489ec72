package server

// MoveRequest is the payload for POST /api/plan/{id}/move.
type MoveRequest struct {
	Index *int `json:"index"`
}

// NoteRequest is the payload for POST /api/notes.
type NoteRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

// DetailRequest is the payload for the detail-form save. It is accepted on
// PATCH /api/tasks/{id} when the "detail" query flag is set.
type DetailRequest struct {
	Title       string `json:"title"`
	Deadline    string `json:"deadline"`
	Description string `json:"description"`
}
