package wbs

// phaseStructures maps a broad project type to its high-level phase names.
// This is the coarse companion to Template: some call sites only carry the
// broad type, so both tables are kept.
var phaseStructures = map[string][]string{
	"Residential": {
		"Land Acquisition & Permits",
		"Site Preparation",
		"Foundation & Structure",
		"Building Envelope",
		"MEP & Interiors",
		"Finishing",
		"Handover",
	},
	"Commercial": {
		"Feasibility & Design",
		"Permits & Approvals",
		"Site Work",
		"Core & Shell",
		"Tenant Fit-out",
		"Commissioning",
		"Occupancy",
	},
	"Mixed-Use": {
		"Master Planning",
		"Phased Permits",
		"Substructure",
		"Residential Tower",
		"Commercial Podium",
		"Public Realm",
		"Phased Handover",
	},
	"Hospitality": {
		"Concept & Brand Approval",
		"Design Development",
		"Structure",
		"Guest Room Fit-out",
		"FF&E Installation",
		"Operator Handover",
		"Soft Opening",
	},
	"Institutional": {
		"Programming",
		"Public Consultation",
		"Design & Compliance",
		"Construction",
		"Specialist Systems",
		"Certification",
		"Occupancy",
	},
	"Industrial": {
		"Site Selection",
		"Earthworks",
		"Structural Steel",
		"Process Equipment",
		"Utilities & Services",
		"Commissioning",
	},
	"Infrastructure": {
		"Surveys & Studies",
		"Right-of-Way",
		"Earthworks",
		"Structures",
		"Systems Installation",
		"Testing",
		"Service Start",
	},
	"Renovation": {
		"Condition Assessment",
		"Design & Permits",
		"Strip-out",
		"Structural Repairs",
		"Rebuild & Finishes",
		"Reoccupation",
	},
}

// PhaseStructure returns the ordered high-level phase names for a broad
// project type, or the generic fallback for unknown types.
func PhaseStructure(projectType string) []string {
	if phases, ok := phaseStructures[projectType]; ok {
		out := make([]string, len(phases))
		copy(out, phases)
		return out
	}
	return []string{"Mobilization", "Construction", "Closeout"}
}
