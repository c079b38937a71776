// Package lead captures and scores prospective customers from chat, CSV
// import, and direct ingestion.
package lead

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"buildsite-service/internal/llm"
)

const qualifierSystemPrompt = `You are a sales assistant for a construction company. ` +
	`You extract contact details from free text and score how qualified the lead is. ` +
	`Respond with a single JSON object and nothing else.`

const qualifierPromptFormat = `Analyze this message from a prospective customer and extract a lead record.

Message:
%s

Score 1-100 for how qualified the lead is (budget, intent, contact info present).
Use 0 only if this is clearly not a sales lead.

Return exactly this JSON shape:
{"name": "...", "phone": "...", "email": "...", "score": 50, "next_action": "...", "rationale": "..."}
Omit or leave empty any field you cannot extract.`

// Assessment is the structured result of qualifying free text. A zero Score
// means "not a lead" and callers skip materializing a record.
type Assessment struct {
	Name       string `json:"name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Score      int    `json:"score"`
	NextAction string `json:"next_action,omitempty"`
	Rationale  string `json:"rationale,omitempty"`
}

// Qualifier scores free-text input via the model.
type Qualifier struct {
	client llm.Client
	log    *zap.Logger
}

func NewQualifier(client llm.Client, log *zap.Logger) *Qualifier {
	return &Qualifier{client: client, log: log}
}

// Qualify extracts and scores a lead from raw text. It never returns an
// error: any failure (transport, timeout, unparseable output) degrades to a
// zero-score assessment and the caller's score threshold does the rest.
func (q *Qualifier) Qualify(ctx context.Context, rawText string) Assessment {
	resp, err := q.client.Complete(ctx, llm.Request{
		Task:         "lead",
		SystemPrompt: qualifierSystemPrompt,
		UserPrompt:   fmt.Sprintf(qualifierPromptFormat, rawText),
		Temperature:  0.1,
		MaxTokens:    512,
	})
	if err != nil {
		q.log.Warn("Lead qualification call failed, degrading to zero score", zap.Error(err))
		return Assessment{}
	}

	assessment, err := llm.ExtractJSON[Assessment](resp.Text, validateAssessment)
	if err != nil {
		q.log.Warn("Lead qualification output unusable, degrading to zero score", zap.Error(err))
		return Assessment{}
	}

	return assessment
}

func validateAssessment(a Assessment) error {
	if a.Score < 0 || a.Score > 100 {
		return fmt.Errorf("score %d out of range", a.Score)
	}
	return nil
}
