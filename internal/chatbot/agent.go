package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Agent classifies a question into an intent and entities. It never sees the
// database and never produces SQL; its output is validated by the resolver
// before anything is queried.
type Agent interface {
	Classify(ctx context.Context, question string, categories []string) (*AgentResult, error)
}

// AgentResult is the structured output expected from the model. Fields the
// model leaves empty are filled in (or rejected) by the resolver.
type AgentResult struct {
	Intent   string `json:"intent"`
	Category string `json:"category"`
	Month    string `json:"month"`
	Type     string `json:"type"`
}

// OllamaAgent asks a locally running Ollama model to classify the question.
type OllamaAgent struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

func NewOllamaAgent(baseURL, model string) *OllamaAgent {
	return &OllamaAgent{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		Client:  &http.Client{},
	}
}

const classifyPrompt = `You classify personal finance questions. Respond with JSON only, no prose.
Fields:
  "intent": one of "greeting", "total_expense", "total_income", "spend_by_category", "category_total", "compare_months", "unknown"
  "category": one of the known categories if the question names one, else ""
  "month": full English month name if the question names one, else ""
  "type": "income" or "expense" if clear from the question, else ""
Known categories: %s
Question: %s`

func (a *OllamaAgent) Classify(ctx context.Context, question string, categories []string) (*AgentResult, error) {
	reqBody := struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
		Stream bool   `json:"stream"`
		Format string `json:"format"`
	}{
		Model:  a.Model,
		Prompt: fmt.Sprintf(classifyPrompt, strings.Join(categories, ", "), question),
		Stream: false,
		Format: "json",
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling model: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %v", err)
	}
	if envelope.Response == "" {
		return nil, errors.New("model returned empty response")
	}

	var result AgentResult
	if err := json.Unmarshal([]byte(envelope.Response), &result); err != nil {
		return nil, fmt.Errorf("model output is not valid JSON: %v", err)
	}
	if result.Intent == "" {
		return nil, errors.New("model output has no intent")
	}
	return &result, nil
}
