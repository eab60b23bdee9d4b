// Package chat generates structured encounter summaries from visit
// transcripts using the chat completions API.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"clinic-scribe/internal/app/model"
)

// DefaultModel is the summarization model.
const DefaultModel = openai.GPT4o

const systemPrompt = "You are a medical assistant that creates structured encounter summaries from consultation transcriptions."

const promptTemplate = `Based on the following medical consultation transcription, generate a comprehensive encounter summary.

Patient: %s
Transcription:
%s

Please provide a structured encounter summary with the following sections:
1. Visit Summary - Brief overview of the visit
2. Diagnostic Assessment - Assessment and diagnosis
3. Treatment & Care Plan - Treatment plan and medications
4. Automatic Follow-Up - Recommended follow-up duration (e.g., "2 weeks", "1 month", "3 days", "6 months") and reason
5. Patient Instructions - Clear instructions for the patient
6. Follow-Up Questions - Suggest 3-5 relevant questions the doctor can ask the patient during follow-up visits to assess progress, monitor symptoms, or gather additional information

Format as JSON with these exact keys: visit_summary, diagnostic_assessment, treatment_care_plan, follow_up_duration, follow_up_reason, patient_instructions, follow_up_questions

Note:
- follow_up_duration should be a duration string like "2 weeks" or "1 month", NOT a specific date.
- follow_up_questions should be an array of strings, each representing a suggested question.`

// Summarizer asks the chat model for an encounter summary.
type Summarizer interface {
	Summarize(ctx context.Context, patientName, transcriptText string) (*model.EncounterSummary, error)
}

// Client implements Summarizer against the OpenAI API.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a summarization client. An empty model selects the
// default.
func NewClient(client *openai.Client, modelName string) *Client {
	if modelName == "" {
		modelName = DefaultModel
	}
	return &Client{client: client, model: modelName}
}

// summaryPayload mirrors the JSON object the model is instructed to return.
type summaryPayload struct {
	VisitSummary         string   `json:"visit_summary"`
	DiagnosticAssessment string   `json:"diagnostic_assessment"`
	TreatmentCarePlan    string   `json:"treatment_care_plan"`
	FollowUpDuration     string   `json:"follow_up_duration"`
	FollowUpReason       string   `json:"follow_up_reason"`
	PatientInstructions  string   `json:"patient_instructions"`
	FollowUpQuestions    []string `json:"follow_up_questions"`
}

// Summarize generates a structured summary for the given transcript.
func (c *Client) Summarize(ctx context.Context, patientName, transcriptText string) (*model.EncounterSummary, error) {
	request := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.3,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(promptTemplate, patientName, transcriptText),
			},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("createChatCompletion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("summarization returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	var payload summaryPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("summarization returned invalid JSON: %w", err)
	}

	return &model.EncounterSummary{
		VisitSummary:         payload.VisitSummary,
		DiagnosticAssessment: payload.DiagnosticAssessment,
		TreatmentCarePlan:    payload.TreatmentCarePlan,
		FollowUpDuration:     payload.FollowUpDuration,
		FollowUpReason:       payload.FollowUpReason,
		PatientInstructions:  payload.PatientInstructions,
		FollowUpQuestions:    payload.FollowUpQuestions,
	}, nil
}
