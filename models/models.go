package models

// SummaryRequest is the body of POST /api/summarize. Limit is a pointer so
// an absent value can be told apart from an explicit zero.
type SummaryRequest struct {
	Text  string `json:"text"`
	Limit *int   `json:"limit"`
}

// SummaryResponse carries the bullet summary and the character counts of the
// input and of the summary.
type SummaryResponse struct {
	Summary        string `json:"summary"`
	OriginalLength int    `json:"original_length"`
	SummaryLength  int    `json:"summary_length"`
}

// PromptRequest is the body of POST /api/generate-prompt.
type PromptRequest struct {
	Input string `json:"input"`
}

// StreamEvent is one server-sent event of the meta-prompt stream. Exactly one
// of the fields is set: Text for a fragment, Done or Error for the terminal
// event.
type StreamEvent struct {
	Text  string `json:"text,omitempty"`
	Done  bool   `json:"done,omitempty"`
	Error string `json:"error,omitempty"`
}

func TextEvent(text string) StreamEvent {
	return StreamEvent{Text: text}
}

func DoneEvent() StreamEvent {
	return StreamEvent{Done: true}
}

func ErrorEvent(message string) StreamEvent {
	return StreamEvent{Error: message}
}

// Terminal reports whether the event ends a stream.
func (e StreamEvent) Terminal() bool {
	return e.Done || e.Error != ""
}

// PathRequest is the body of POST /list-directory and POST /read-file.
type PathRequest struct {
	Path string `json:"path"`
}

type EntryType string

const (
	EntryTypeFile      EntryType = "file"
	EntryTypeDirectory EntryType = "directory"
)

// DirectoryEntry describes one immediate child of a listed directory.
type DirectoryEntry struct {
	Name string    `json:"name"`
	Path string    `json:"path"`
	Type EntryType `json:"type"`
}

type ListDirectoryResponse struct {
	Items []DirectoryEntry `json:"items"`
}

type ReadFileResponse struct {
	Content string `json:"content"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RateLimitResponse is returned with 429.
type RateLimitResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retry_after"`
}
