package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/domain"
)

// mockProvider implements the Provider interface for local development and
// tests. It answers every prompt with a fixed seven-day plan wrapped in
// prose, which exercises the JSON extraction path end to end.
type mockProvider struct{}

// NewMockProvider creates a new mock generation provider.
func NewMockProvider() *mockProvider {
	return &mockProvider{}
}

// Name returns the provider identifier.
func (p *mockProvider) Name() ProviderName {
	return ProviderMock
}

// IsAvailable returns true as mock is always available.
func (p *mockProvider) IsAvailable() bool {
	return true
}

// Model returns the mock model identifier.
func (p *mockProvider) Model() string {
	return "mock"
}

var mockDishes = map[string][]string{
	domain.MealBreakfast:    {"Poha", "Idli Sambar", "Upma", "Aloo Paratha", "Masala Dosa", "Besan Chilla", "Puri Bhaji"},
	domain.MealMorningSnack: {"Fruit Chaat", "Sprouts Salad", "Buttermilk", "Roasted Chana", "Banana Shake", "Dhokla", "Makhana"},
	domain.MealLunch:        {"Dal Rice", "Rajma Chawal", "Chole Rice", "Veg Pulao", "Kadhi Chawal", "Sambar Rice", "Paneer Pulao"},
	domain.MealEveningSnack: {"Bhel Puri", "Veg Sandwich", "Corn Chaat", "Banana Chips", "Pakora", "Khandvi", "Sev Puri"},
	domain.MealDinner:       {"Roti Sabzi", "Paneer Butter Masala", "Khichdi", "Veg Biryani", "Palak Paneer", "Dal Tadka", "Mix Veg Curry"},
}

// Complete returns a deterministic full-week plan for every prompt.
func (p *mockProvider) Complete(_ context.Context, _ string) (string, error) {
	var sb strings.Builder

	sb.WriteString("Here is a balanced weekly plan for you.\n\n{")

	for i, day := range domain.Weekdays {
		if i > 0 {
			sb.WriteString(",")
		}

		sb.WriteString(fmt.Sprintf("%q:{", day))

		for j, mealType := range domain.MealTypes {
			if j > 0 {
				sb.WriteString(",")
			}

			sb.WriteString(fmt.Sprintf("%q:%q", mealType, mockDishes[mealType][i]))
		}

		sb.WriteString("}")
	}

	sb.WriteString("}\n\nEnjoy your meals!")

	return sb.String(), nil
}

// Close is a no-op for the mock provider.
func (p *mockProvider) Close() error {
	return nil
}

// Ensure mockProvider implements Provider interface.
var _ Provider = (*mockProvider)(nil)
