// Package finetunes covers the fine-tune job lifecycle endpoints: creating
// jobs, listing them, inspecting events, cancelling, and deleting the
// resulting models.
package finetunes

import (
	"context"
	"fmt"

	"github.com/frage-dev/frage/pkg/api"
	"github.com/frage-dev/frage/pkg/client"
)

const endpoint = "fine-tunes"

// Request is the body for POST fine-tunes.
type Request struct {
	TrainingFile   string `json:"training_file"`
	ValidationFile string `json:"validation_file,omitempty"`
	Model          string `json:"model,omitempty"`

	NEpochs                      *int      `json:"n_epochs,omitempty"`
	BatchSize                    *int      `json:"batch_size,omitempty"`
	LearningRateMultiplier       *float64  `json:"learning_rate_multiplier,omitempty"`
	PromptLossWeight             *float64  `json:"prompt_loss_weight,omitempty"`
	ComputeClassificationMetrics *bool     `json:"compute_classification_metrics,omitempty"`
	ClassificationNClasses       *int      `json:"classification_n_classes,omitempty"`
	ClassificationPositiveClass  string    `json:"classification_positive_class,omitempty"`
	ClassificationBetas          []float64 `json:"classification_betas,omitempty"`
	Suffix                       string    `json:"suffix,omitempty"`
}

// Job describes one fine-tune job.
type Job struct {
	ID             string  `json:"id"`
	Object         string  `json:"object"`
	CreatedAt      int64   `json:"created_at"`
	UpdatedAt      int64   `json:"updated_at"`
	Model          string  `json:"model"`
	FineTunedModel string  `json:"fine_tuned_model,omitempty"`
	Status         string  `json:"status"`
	Events         []Event `json:"events,omitempty"`
}

// Event is one log entry in a job's lifecycle.
type Event struct {
	Object    string `json:"object"`
	CreatedAt int64  `json:"created_at"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

// listResponse wraps GET fine-tunes: {"object": "list", "data": [...]}.
type listResponse struct {
	Object string `json:"object"`
	Data   []Job  `json:"data"`
}

// eventsResponse wraps GET fine-tunes/{id}/events.
type eventsResponse struct {
	Object string  `json:"object"`
	Data   []Event `json:"data"`
}

// Create starts a fine-tune job from a previously uploaded training file.
func Create(ctx context.Context, c *client.Client, req *Request) (*Job, error) {
	return client.PostJSON[Request, Job](ctx, c, endpoint, req)
}

// List returns all fine-tune jobs.
func List(ctx context.Context, c *client.Client) ([]Job, error) {
	resp, err := client.Get[listResponse](ctx, c, endpoint)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Retrieve returns the state of one job by ID.
func Retrieve(ctx context.Context, c *client.Client, jobID string) (*Job, error) {
	return client.Get[Job](ctx, c, fmt.Sprintf("fine-tunes/%s", jobID))
}

// Cancel aborts a running job.
func Cancel(ctx context.Context, c *client.Client, jobID string) (*Job, error) {
	type empty struct{}
	return client.PostJSON[empty, Job](ctx, c, fmt.Sprintf("fine-tunes/%s/cancel", jobID), &empty{})
}

// ListEvents returns the event log of one job.
func ListEvents(ctx context.Context, c *client.Client, jobID string) ([]Event, error) {
	resp, err := client.Get[eventsResponse](ctx, c, fmt.Sprintf("fine-tunes/%s/events", jobID))
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// DeleteModel removes a fine-tuned model owned by the organization.
func DeleteModel(ctx context.Context, c *client.Client, model string) (*api.Deleted, error) {
	return client.Delete[api.Deleted](ctx, c, fmt.Sprintf("models/%s", model))
}
