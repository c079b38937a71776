package wbs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate_VillaFixedSequence(t *testing.T) {
	stages := Template("Residential", "Villa", 1, 1)
	require.Len(t, stages, 8)
	assert.Equal(t, "Pre-Construction", stages[0].Name)
	assert.Equal(t, "Final Handover", stages[7].Name)
	assert.True(t, stages[1].WeatherSensitive)  // Foundation
	assert.False(t, stages[3].WeatherSensitive) // Rough MEP
}

func TestTemplate_VillaIgnoresFloorsAndTowers(t *testing.T) {
	base := Template("Residential", "Villa", 1, 1)
	for _, floors := range []int{0, 5, 12, 40} {
		for _, towers := range []int{1, 2, 3} {
			assert.Equal(t, base, Template("Residential", "Villa", floors, towers))
		}
	}
}

func TestTemplate_SingleFamilyMatchesVilla(t *testing.T) {
	assert.Equal(t,
		Template("Residential", "Villa", 3, 1),
		Template("Residential", "Single Family", 3, 1))
}

func TestTemplate_HighRiseStageCount(t *testing.T) {
	// 4 base + superstructure groups + 4 finishing. Groups follow
	// floors/5 + 1 with any group whose start floor exceeds the floor
	// count dropped.
	for _, floors := range []int{1, 4, 5, 6, 10, 12, 15, 20, 100} {
		groups := 0
		for g := 0; g < floors/5+1; g++ {
			if g*5+1 <= floors {
				groups++
			}
		}
		t.Run(fmt.Sprintf("floors_%d", floors), func(t *testing.T) {
			stages := Template("Residential", "High-Rise", floors, 1)
			assert.Len(t, stages, 4+groups+4)
		})
	}
}

func TestTemplate_HighRiseTwelveFloors(t *testing.T) {
	stages := Template("Residential", "High-Rise", 12, 1)
	require.Len(t, stages, 11) // 4 base + 3 superstructure + 4 finishing

	assert.Equal(t, "Site Mobilization", stages[0].Name)
	assert.Equal(t, "Superstructure (Floors 1-5)", stages[4].Name)
	assert.Equal(t, "Superstructure (Floors 6-10)", stages[5].Name)
	assert.Equal(t, "Superstructure (Floors 11-12)", stages[6].Name)
	assert.Equal(t, "Facade & Envelope", stages[7].Name)
	assert.Equal(t, "Testing & Commissioning", stages[10].Name)
}

func TestTemplate_HighRiseTowerLabel(t *testing.T) {
	single := Template("Residential", "High-Rise", 5, 1)
	assert.Contains(t, single[4].Description, "tower 1")

	multi := Template("Residential", "High-Rise", 5, 2)
	assert.Contains(t, multi[4].Description, "tower A/B")
}

func TestTemplate_CommercialFixedSequence(t *testing.T) {
	stages := Template("Commercial", "Retail", 2, 1)
	require.Len(t, stages, 5)
	assert.Equal(t, "Site Prep", stages[0].Name)
	assert.Equal(t, "Tenant Improvements", stages[4].Name)

	// Sub-type is irrelevant for the Commercial branch
	assert.Equal(t, stages, Template("Commercial", "Office", 30, 4))
}

func TestTemplate_UnknownTypeFallback(t *testing.T) {
	for _, tc := range [][2]string{
		{"Industrial", "Factory"},
		{"Residential", "Townhouse"},
		{"", ""},
	} {
		stages := Template(tc[0], tc[1], 10, 2)
		require.Len(t, stages, 1, "type %q/%q", tc[0], tc[1])
		assert.Equal(t, "General Construction", stages[0].Name)
		assert.True(t, stages[0].WeatherSensitive)
	}
}

func TestPhaseStructure_KnownTypes(t *testing.T) {
	for _, projectType := range []string{
		"Residential", "Commercial", "Mixed-Use", "Hospitality",
		"Institutional", "Industrial", "Infrastructure", "Renovation",
	} {
		phases := PhaseStructure(projectType)
		assert.GreaterOrEqual(t, len(phases), 6, projectType)
		assert.LessOrEqual(t, len(phases), 8, projectType)
	}
}

func TestPhaseStructure_Fallback(t *testing.T) {
	assert.Equal(t,
		[]string{"Mobilization", "Construction", "Closeout"},
		PhaseStructure("Underwater"))
}

func TestPhaseStructure_ReturnsCopy(t *testing.T) {
	phases := PhaseStructure("Residential")
	phases[0] = "mutated"
	assert.NotEqual(t, "mutated", PhaseStructure("Residential")[0])
}
