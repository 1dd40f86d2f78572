package domain

import (
	"context"
	"time"
)

// MaterialKind names the tool that produced a study material.
type MaterialKind string

const (
	MaterialQuiz     MaterialKind = "quiz"
	MaterialNotes    MaterialKind = "notes"
	MaterialRoadmap  MaterialKind = "roadmap"
	MaterialAnalysis MaterialKind = "analysis"
)

// StudyMaterial is a generated artefact saved to a signed-in user's library.
type StudyMaterial struct {
	ID        string
	UserID    string
	Kind      MaterialKind
	Title     string
	Input     string
	Content   string
	CreatedAt time.Time
}

type MaterialRepository interface {
	Save(ctx context.Context, m *StudyMaterial) error
	ListByUser(ctx context.Context, userID string, kind MaterialKind, limit, offset int64) ([]StudyMaterial, error)
	GetByID(ctx context.Context, userID, id string) (*StudyMaterial, error)
	Delete(ctx context.Context, userID, id string) error
}
