package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"buildsite-service/internal/llm"
	"buildsite-service/internal/model"
	"buildsite-service/internal/wbs"
	"buildsite-service/prometheus"
)

// ErrGenerationFailed indicates the model did not produce a usable schedule.
// Any upstream failure (transport, timeout, malformed or schema-violating
// output) is wrapped in this error so callers see one typed failure mode.
var ErrGenerationFailed = errors.New("schedule generation failed")

const generatorSystemPrompt = `You are a construction scheduling assistant. ` +
	`You produce detailed work breakdown schedules as JSON. ` +
	`Respond with a single JSON object and nothing else.`

// Generator turns project attributes and a WBS template into a validated
// schedule tree via one model call.
type Generator struct {
	client llm.Client
	log    *zap.Logger
}

func NewGenerator(client llm.Client, log *zap.Logger) *Generator {
	return &Generator{client: client, log: log}
}

// scheduleResponse is the JSON envelope the model is asked to return.
type scheduleResponse struct {
	Stages []StagePlan `json:"stages"`
}

// Generate builds the prompt, calls the model, and parses the response into
// a Tree. Returns ErrGenerationFailed on any upstream or schema failure.
func (g *Generator) Generate(ctx context.Context, project *model.Project) (Tree, error) {
	template := wbs.Template(project.ProjectType, project.SubType, project.FloorCount, project.TowerCount)
	prompt := buildPrompt(project, template)

	resp, err := g.client.Complete(ctx, llm.Request{
		Task:         "schedule",
		SystemPrompt: generatorSystemPrompt,
		UserPrompt:   prompt,
		Temperature:  0.2,
		MaxTokens:    4096,
	})
	if err != nil {
		prometheus.RecordScheduleGeneration("error")
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	parsed, err := llm.ExtractJSON[scheduleResponse](resp.Text, validateSchedule)
	if err != nil {
		g.log.Warn("Model returned unusable schedule", zap.Error(err))
		prometheus.RecordScheduleGeneration("invalid")
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	prometheus.RecordScheduleGeneration("success")
	return Tree(parsed.Stages), nil
}

func validateSchedule(resp scheduleResponse) error {
	if len(resp.Stages) == 0 {
		return fmt.Errorf("schedule has no stages")
	}
	for i, stage := range resp.Stages {
		if strings.TrimSpace(stage.Name) == "" {
			return fmt.Errorf("stage %d has an empty name", i)
		}
		if err := validateTasks(stage.Tasks, stage.Name, 0); err != nil {
			return err
		}
	}
	return nil
}

func validateTasks(nodes []TaskNode, stageName string, depth int) error {
	for i, node := range nodes {
		if strings.TrimSpace(node.Name) == "" {
			return fmt.Errorf("stage %q task %d (depth %d) has an empty name", stageName, i, depth)
		}
		if err := validateTasks(node.Subtasks, stageName, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func buildPrompt(project *model.Project, template []wbs.StageTemplate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a work breakdown schedule for the following construction project.\n\n")
	fmt.Fprintf(&b, "Project: %s\n", project.Name)
	fmt.Fprintf(&b, "Type: %s / %s\n", project.ProjectType, project.SubType)
	if project.ConstructionMethod != "" {
		fmt.Fprintf(&b, "Construction method: %s\n", project.ConstructionMethod)
	}
	if project.DeliveryMethod != "" {
		fmt.Fprintf(&b, "Delivery method: %s\n", project.DeliveryMethod)
	}
	if project.SiteContext != "" {
		fmt.Fprintf(&b, "Site context: %s\n", project.SiteContext)
	}
	fmt.Fprintf(&b, "Floors: %d, Towers: %d, Units: %d, Area: %.0f\n\n",
		project.FloorCount, project.TowerCount, project.UnitCount, project.Area)

	b.WriteString("Use these stages as the backbone, in order:\n")
	for _, stage := range template {
		sensitivity := "not weather sensitive"
		if stage.WeatherSensitive {
			sensitivity = "weather sensitive"
		}
		fmt.Fprintf(&b, "- %s: %s (%s)\n", stage.Name, stage.Description, sensitivity)
	}

	// Without a sub-type the backbone is the generic fallback, so give the
	// model the broad-type phasing to work from instead.
	if project.SubType == "" {
		b.WriteString("\nHigh-level phasing for this project type:\n")
		for _, phase := range wbs.PhaseStructure(project.ProjectType) {
			fmt.Fprintf(&b, "- %s\n", phase)
		}
	}

	b.WriteString(`
For every stage produce the tasks needed to complete it, each with the trade
role responsible. Break larger tasks into subtasks where useful. Dates use
YYYY-MM-DD or are omitted.

Return exactly this JSON shape:
{
  "stages": [
    {
      "stage_name": "...",
      "start_date": "YYYY-MM-DD",
      "end_date": "YYYY-MM-DD",
      "tasks": [
        {
          "task_name": "...",
          "assigned_role": "...",
          "subtasks": [{"task_name": "...", "assigned_role": "...", "subtasks": []}]
        }
      ]
    }
  ]
}`)

	return b.String()
}
