package dto

// ChatRequest is a free-form prompt for the assistant.
// @Description Request body for the AI assistant
type ChatRequest struct {
	Prompt string `json:"prompt"`
}

type ChatResponse struct {
	Message string `json:"message"`
}

// DocumentChatRequest asks a question about previously extracted text.
// @Description Request body for chatting about a document
type DocumentChatRequest struct {
	Message      string `json:"message"`
	DocumentText string `json:"documentText"`
}

type DocumentChatResponse struct {
	Response string `json:"response"`
	Status   string `json:"status"`
}

// RoadmapRequest names the subject and level of a learning roadmap.
// @Description Request body for generating a roadmap
type RoadmapRequest struct {
	Domain     string `json:"domain"`
	Difficulty string `json:"difficulty"`
}

type RoadmapResponse struct {
	Roadmap string `json:"roadmap"`
	HTML    string `json:"html"`
	Status  string `json:"status"`
}

// NotesRequest selects the notes source. Only the field matching
// InputType is read.
// @Description Request body for generating study notes
type NotesRequest struct {
	InputType string `json:"inputType" validate:"required,oneof=topic text url pdf"`
	Topic     string `json:"topic"`
	Text      string `json:"text"`
	URL       string `json:"url"`
}

type NotesResponse struct {
	Notes string `json:"notes"`
	HTML  string `json:"html"`
}
