package service

import "context"

// LLMService is the single contract the orchestration layer has with a
// text-generation provider. Implementations return the raw model text;
// callers own parsing and fallback content.
type LLMService interface {
	GenerateResponse(ctx context.Context, userPrompt, systemPrompt string) (string, error)
}

// EmbeddingService produces a vector for similarity search over role
// profiles. Only the Gemini provider implements it.
type EmbeddingService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}
