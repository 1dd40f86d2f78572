package domain

import "context"

// GenerateOptions tunes a single generation call.
type GenerateOptions struct {
	Model       string
	Temperature *float64
}

type GenerateOption func(*GenerateOptions)

// WithModel overrides the adapter's default model for one call.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

func WithTemperature(t float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = &t
	}
}

// ApplyGenerateOptions folds opts into a GenerateOptions value.
func ApplyGenerateOptions(opts ...GenerateOption) GenerateOptions {
	var o GenerateOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// TextGenerator is the port to a generative-AI backend.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts ...GenerateOption) (string, error)
}
