package ai

import (
	"context"
	"fmt"

	"nutrisense/entities"
)

type mockClient struct{}

// NewMock returns a client that answers locally. Used for development
// without a key and in handler tests.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) Configured() bool { return true }

func (m *mockClient) ModelUsed(override string) string {
	if override != "" {
		return override
	}
	return "mock"
}

func (m *mockClient) Recommend(_ context.Context, soil entities.SoilData, task RecommendationType, location, _ string) (string, error) {
	switch task {
	case TaskCrops:
		return "1. Wheat 2. Chickpea 3. Mustard 4. Sorghum 5. Pearl millet (mock)", nil
	case TaskFertilizer:
		return fmt.Sprintf("Apply balanced NPK based on N %.0f / P %.0f / K %.0f mg/kg (mock)",
			soil.Nitrogen, soil.Phosphorus, soil.Potassium), nil
	case TaskIrrigation:
		return fmt.Sprintf("Irrigate when moisture drops below 25%% (currently %.1f%%) (mock)", soil.Moisture), nil
	default:
		if location != "" {
			return fmt.Sprintf("Soil at %s is workable; monitor pH %.1f (mock)", location, soil.PH), nil
		}
		return fmt.Sprintf("Soil is workable; monitor pH %.1f (mock)", soil.PH), nil
	}
}
