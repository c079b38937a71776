// Package chat dispatches inbound project messages to task-status or
// lead-capture logic based on a caller-supplied context tag.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"buildsite-service/internal/lead"
	"buildsite-service/internal/llm"
	"buildsite-service/internal/model"
	"buildsite-service/prometheus"
)

// Context tags recognized by the router. Anything else gets the default
// log-only handling.
const (
	ContextExecution = "Execution"
	ContextSales     = "Sales"
)

// openTaskWindow bounds how many open tasks are embedded in the
// classification prompt.
const openTaskWindow = 30

// loggedReply is the generic acknowledgement for messages that trigger no
// side effect beyond the chat log.
const loggedReply = "Message logged."

const executionSystemPrompt = `You are a construction project assistant. ` +
	`Given a chat message and the project's open tasks, decide whether the message ` +
	`reports a task status change. Respond with a single JSON object and nothing else.`

// Message is one inbound chat message.
type Message struct {
	ProjectID uint
	UserID    string
	Text      string
	Context   string
}

// Router is a state-free dispatcher over the chat context tag. Every branch
// appends the raw message to the chat log before dispatching.
type Router struct {
	store     Store
	client    llm.Client
	qualifier *lead.Qualifier
	log       *zap.Logger
}

func NewRouter(store Store, client llm.Client, qualifier *lead.Qualifier, log *zap.Logger) *Router {
	return &Router{store: store, client: client, qualifier: qualifier, log: log}
}

// Handle logs the message and dispatches on its context tag, returning the
// reply to send back to the user.
func (r *Router) Handle(ctx context.Context, msg Message) (string, error) {
	entry := model.ChatLog{
		ProjectID: msg.ProjectID,
		UserID:    msg.UserID,
		Message:   msg.Text,
		Context:   msg.Context,
	}
	if err := r.store.AppendChatLog(ctx, &entry); err != nil {
		return "", fmt.Errorf("logging chat message: %w", err)
	}
	prometheus.RecordChatMessage(msg.Context)

	switch msg.Context {
	case ContextExecution:
		return r.handleExecution(ctx, msg)
	case ContextSales:
		return r.handleSales(ctx, msg)
	default:
		return loggedReply, nil
	}
}

// executionDecision is the classification the model returns for an
// Execution-context message.
type executionDecision struct {
	Action    string `json:"action"` // "UPDATE" or "REPLY"
	TaskID    uint   `json:"task_id,omitempty"`
	NewStatus string `json:"new_status,omitempty"`
	Reply     string `json:"reply,omitempty"`
}

func (r *Router) handleExecution(ctx context.Context, msg Message) (string, error) {
	tasks, err := r.store.OpenTasks(ctx, msg.ProjectID, openTaskWindow)
	if err != nil {
		return "", fmt.Errorf("loading open tasks: %w", err)
	}

	resp, err := r.client.Complete(ctx, llm.Request{
		Task:         "chat",
		SystemPrompt: executionSystemPrompt,
		UserPrompt:   buildExecutionPrompt(msg.Text, tasks),
		Temperature:  0.1,
		MaxTokens:    512,
	})
	if err != nil {
		r.log.Warn("Chat classification call failed", zap.Error(err))
		return loggedReply, nil
	}

	decision, err := llm.ExtractJSON[executionDecision](resp.Text, nil)
	if err != nil {
		r.log.Warn("Chat classification output unusable", zap.Error(err))
		return loggedReply, nil
	}

	if decision.Action != "UPDATE" {
		if decision.Reply != "" {
			return decision.Reply, nil
		}
		return loggedReply, nil
	}

	task, err := r.store.GetTask(ctx, decision.TaskID)
	if err != nil {
		r.log.Warn("Model targeted unknown task", zap.Uint("task_id", decision.TaskID))
		return loggedReply, nil
	}

	if err := r.store.UpdateTaskStatus(ctx, task.ID, decision.NewStatus); err != nil {
		return "", fmt.Errorf("updating task status: %w", err)
	}

	return fmt.Sprintf("Updated %q to %s.", task.Name, decision.NewStatus), nil
}

func (r *Router) handleSales(ctx context.Context, msg Message) (string, error) {
	assessment := r.qualifier.Qualify(ctx, msg.Text)
	if assessment.Score <= 0 {
		return loggedReply, nil
	}

	payload, _ := json.Marshal(assessment)
	record := model.Lead{
		ProjectID:     msg.ProjectID,
		Name:          assessment.Name,
		Source:        model.LeadSourceChat,
		LeadScore:     assessment.Score,
		Qualification: string(payload),
		NextAction:    assessment.NextAction,
		Status:        "New",
	}
	if assessment.Phone != "" {
		record.Phone = &assessment.Phone
	}
	if assessment.Email != "" {
		record.Email = &assessment.Email
	}

	if err := r.store.CreateLead(ctx, &record); err != nil {
		return "", fmt.Errorf("creating lead: %w", err)
	}
	prometheus.RecordLeadOperation(model.LeadSourceChat)

	name := record.Name
	if name == "" {
		name = "Unnamed lead"
	}
	return fmt.Sprintf("Captured lead %q with score %d.", name, record.LeadScore), nil
}

func buildExecutionPrompt(message string, tasks []model.Task) string {
	var b strings.Builder

	b.WriteString("Open tasks:\n")
	if len(tasks) == 0 {
		b.WriteString("- (none)\n")
	}
	for _, t := range tasks {
		fmt.Fprintf(&b, "- id=%d name=%q status=%s\n", t.ID, t.Name, t.Status)
	}

	fmt.Fprintf(&b, "\nMessage:\n%s\n", message)

	b.WriteString(`
If the message reports a status change for one of the tasks, return:
{"action": "UPDATE", "task_id": 1, "new_status": "In Progress"}
Otherwise return:
{"action": "REPLY", "reply": "..."}`)

	return b.String()
}
