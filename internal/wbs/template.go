// Package wbs provides the work-breakdown-structure templates used to seed
// schedule generation. Everything here is a pure function of the project
// attributes: no I/O, no randomness.
package wbs

import "fmt"

// StageTemplate describes one stage of a standard work breakdown structure.
type StageTemplate struct {
	Name             string `json:"stage"`
	Description      string `json:"desc"`
	WeatherSensitive bool   `json:"weather_sensitive"`
}

// Template returns the standard WBS stage sequence for a project.
//
// Residential/Villa and Residential/Single Family get a fixed 8-stage
// sequence; Residential/High-Rise gets 4 base stages, one superstructure
// stage per group of 5 floors, and 4 finishing stages; Commercial gets a
// fixed 5-stage sequence; everything else falls back to a single
// "General Construction" stage. Floors and towers are ignored outside the
// High-Rise branch.
func Template(projectType, subType string, floors, towers int) []StageTemplate {
	switch {
	case projectType == "Residential" && (subType == "Villa" || subType == "Single Family"):
		return []StageTemplate{
			{"Pre-Construction", "Permits, Soil Testing, Site Clearing", false},
			{"Foundation", "Excavation, Footings, Slab pouring", true},
			{"Structure (Shell)", "Framing, Roof Trusses, Sheathing", true},
			{"Rough MEP", "Plumbing, Electrical, HVAC ducts inside walls", false},
			{"Insulation & Drywall", "Wall closing, Mudding, Taping", false},
			{"Interior Finishes", "Flooring, Cabinets, Painting, Fixtures", false},
			{"Exterior Finishes", "Siding, Stucco, Driveway, Landscaping", true},
			{"Final Handover", "Punch list, Cleaning, Final Inspection", false},
		}

	case projectType == "Residential" && subType == "High-Rise":
		return highRiseTemplate(floors, towers)

	case projectType == "Commercial":
		return []StageTemplate{
			{"Site Prep", "Grading, Utilities connection", true},
			{"Steel Structure", "Steel erection, Bolting, Decking", true},
			{"Building Envelope", "Roofing, Exterior Walls, Glazing", true},
			{"Core MEP", "Main HVAC units, Sprinkler mains", false},
			{"Tenant Improvements", "Specific fit-out for retail/offices", false},
		}

	default:
		return []StageTemplate{
			{"General Construction", "Standard phases", true},
		}
	}
}

func highRiseTemplate(floors, towers int) []StageTemplate {
	stages := []StageTemplate{
		{"Site Mobilization", "Fencing, Cranes Setup, Site Office", true},
		{"Excavation & Piling", "Deep excavation, Shoring, Piles", true},
		{"Substructure (Basement)", "Basement levels, Retaining walls", true},
		{"Podium/Lobby Level", "Ground floor high-ceilings, Transfer slabs", true},
	}

	// One superstructure stage per group of 5 floors keeps the WBS readable
	// (Floors 1-5, Floors 6-10, ...). The last group's upper bound is clamped
	// to the floor count, and a group is emitted only if its start floor
	// exists.
	towerLabel := "1"
	if towers != 1 {
		towerLabel = "A/B"
	}
	groups := floors/5 + 1
	for i := 0; i < groups; i++ {
		start := i*5 + 1
		end := (i + 1) * 5
		if end > floors {
			end = floors
		}
		if start <= floors {
			stages = append(stages, StageTemplate{
				Name:             fmt.Sprintf("Superstructure (Floors %d-%d)", start, end),
				Description:      fmt.Sprintf("Column pouring, Slab casting for tower %s", towerLabel),
				WeatherSensitive: true,
			})
		}
	}

	stages = append(stages,
		StageTemplate{"Facade & Envelope", "Glass curtain wall, Cladding", true},
		StageTemplate{"MEP First Fix", "Risers, Main distribution lines", false},
		StageTemplate{"Interiors (Fit-out)", "Partitions, Flooring, Ceilings per unit", false},
		StageTemplate{"Testing & Commissioning", "Elevator testing, Fire safety systems", false},
	)
	return stages
}
