package ai

import (
	"context"
	"errors"

	"nutrisense/entities"
)

// RecommendationType selects which prompt template is sent to the model.
type RecommendationType string

const (
	TaskSummary    RecommendationType = "summary"
	TaskCrops      RecommendationType = "crops"
	TaskFertilizer RecommendationType = "fertilizer"
	TaskIrrigation RecommendationType = "irrigation"
)

var (
	// ErrNotConfigured means no API key is present; callers should fail fast
	// without any network attempt.
	ErrNotConfigured = errors.New("ai: no API key configured")

	// ErrUnavailable means every retry attempt failed.
	ErrUnavailable = errors.New("ai: service unavailable")
)

type Client interface {
	// Recommend formats the measurement into the task's prompt template and
	// returns the model's free-text reply. model overrides the default when
	// non-empty.
	Recommend(ctx context.Context, soil entities.SoilData, task RecommendationType, location, model string) (string, error)

	// ModelUsed reports which model a request with the given override runs on.
	ModelUsed(override string) string

	// Configured reports whether Recommend can reach a model at all. False
	// means every call will fail with ErrNotConfigured.
	Configured() bool
}
