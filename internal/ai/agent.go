package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"door-quoter/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

type AgentService interface {
	InterpretQuoteRequest(ctx context.Context, naturalLanguage string, catalogSummary string) (*core.DraftResponse, error)
}

type Agent struct {
	client *openai.Client
}

func NewAgent(apiKey string) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Agent{client: &client}
}

// InterpretQuoteRequest turns a free-text product request into a quote draft
// the configurator can load, or a clarifying question when the opening
// dimensions or product family cannot be determined.
func (a *Agent) InterpretQuoteRequest(ctx context.Context, naturalLanguage string, catalogSummary string) (*core.DraftResponse, error) {
	prompt := fmt.Sprintf(`You are a door and window sales assistant.
Your goal is to interpret a customer's product request and draft a configuration using ONLY the catalog below.
Rules:
1. Use ONLY family, glazing, hardware, and color codes from the catalog.
2. Dimensions are in inches. Convert feet to inches when the customer uses feet.
3. If the opening width or height is missing, ask a clarifying question instead of guessing.
4. Leave panel_count at 0 unless the customer asked for a specific number of panels.
5. Provide a confidence score (0.0-1.0) and explain your reasoning.

Catalog:
%s

Request: %s`, catalogSummary, naturalLanguage)

	// Dynamically generate the JSON schema from the Go struct
	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "quote_draft_response",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("A drafted door/window configuration or a clarification request"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var draftResp core.DraftResponse
	if err := json.Unmarshal([]byte(content), &draftResp); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}

	if draftResp.IsClarificationRequest {
		if draftResp.Clarification == nil || draftResp.Clarification.Message == "" {
			return nil, fmt.Errorf("clarification response missing message")
		}
		return &draftResp, nil
	}

	if draftResp.Draft == nil {
		return nil, fmt.Errorf("response contains neither draft nor clarification")
	}
	draftResp.Draft.Normalize()
	if err := draftResp.Draft.Validate(); err != nil {
		return nil, fmt.Errorf("draft validation failed: %w", err)
	}

	return &draftResp, nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v core.DraftResponse
	return reflector.Reflect(v)
}
