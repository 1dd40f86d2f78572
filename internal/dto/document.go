package dto

import "saathi/internal/analysis"

// AnalyzeDocumentResponse wraps the heuristic analysis of an uploaded file.
type AnalyzeDocumentResponse struct {
	Analysis analysis.DocumentAnalysis `json:"analysis"`
}

// CalculatorRequest evaluates Expression, or applies MemoryOp to Display
// when MemoryOp is set.
// @Description Request body for the scientific calculator
type CalculatorRequest struct {
	Expression string   `json:"expression"`
	AngleMode  string   `json:"angleMode" validate:"omitempty,oneof=deg rad"`
	MemoryOp   string   `json:"memoryOp" validate:"omitempty,oneof=MC MR M+ M-"`
	Memory     *float64 `json:"memory"`
}

type CalculatorResponse struct {
	Expression string  `json:"expression"`
	Result     string  `json:"result"`
	Memory     float64 `json:"memory"`
	AngleMode  string  `json:"angleMode"`
}

type HistoryResponse struct {
	History []string `json:"history"`
	Memory  float64  `json:"memory"`
}
