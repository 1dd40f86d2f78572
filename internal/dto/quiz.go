package dto

import "saathi/internal/domain"

// QuizGenerateRequest asks for questions about free text.
// @Description Request body for generating a quiz from text
type QuizGenerateRequest struct {
	Text         string `json:"text"`
	NumQuestions int    `json:"numQuestions"`
}

// QuizURLRequest asks for questions about the body text of a web page.
// @Description Request body for generating a quiz from a URL
type QuizURLRequest struct {
	URL          string `json:"url"`
	NumQuestions int    `json:"numQuestions"`
}

// QuizResponse carries the raw model output and the parsed questions.
// @Description Generated quiz
type QuizResponse struct {
	Questions string                `json:"questions"`
	Items     []domain.QuizQuestion `json:"items"`
}

// GradeRequest pairs each question with the chosen answer by index.
// @Description Request body for grading a quiz
type GradeRequest struct {
	Questions  []domain.QuizQuestion `json:"questions"`
	Answers    []string              `json:"answers"`
	SourceType string                `json:"sourceType" validate:"omitempty,oneof=text url pdf"`
}

// ExtractTextResponse is returned by the PDF and URL text extraction endpoints.
type ExtractTextResponse struct {
	Text string `json:"text"`
}

// ExtractURLRequest names the page to extract.
type ExtractURLRequest struct {
	URL string `json:"url"`
}
