package websocket

import "github.com/mockdrill/mockdrill-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionAutosave Action = "autosave"
	ActionSubmit   Action = "submit"
	ActionPing     Action = "ping"
)

// Request is the single client message shape. Submit and ping carry only
// the action; autosave adds the question and selection. An empty selected
// list clears the answer.
type Request struct {
	Action     Action `json:"action"`
	QuestionID string `json:"question_id,omitempty"`
	Selected   []int  `json:"selected,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError     Event = "error"
	EventSaved     Event = "saved"
	EventSubmitted Event = "submitted"
	EventPong      Event = "pong"
)

type SavedResponse struct {
	Event  Event  `json:"event"`
	Status string `json:"status"`
}

type SubmittedResponse struct {
	Event  Event                `json:"event"`
	Result *model.AttemptResult `json:"result"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
