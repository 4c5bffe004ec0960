package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"balance-insight/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// ReportGenerator turns a formatted analysis payload into a narrative report.
// The pipeline's obligation ends at producing the payload; implementations own
// prompting, transport, and response assembly. Tests inject a stub.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, payload string) (*core.NarrativeReport, error)
}

// Agent is the OpenAI-backed ReportGenerator.
type Agent struct {
	client *openai.Client
}

func NewAgent(apiKey string) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Agent{client: &client}
}

// GenerateReport sends the analysis payload to the model with a structured
// output schema and returns the parsed narrative document. Failures are
// wrapped in *core.ReportGenerationError; the caller's tables stay valid.
func (a *Agent) GenerateReport(ctx context.Context, payload string) (*core.NarrativeReport, error) {
	prompt := fmt.Sprintf(`You are a financial analysis assistant.
Below is a summary of period-over-period variations by account class and the
weighting of subaccounts within a designated parent account, extracted from a
company trial balance.

Write a report that covers:
1. A general summary of the total and percentage variations across the account
   classes (this analysis is independent of the subaccount weighting).
2. The weighting of the most significant subaccounts within the parent account.
3. Any figure marked as not available must be described as such, never invented.

%s`, payload)

	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, &core.ReportGenerationError{Cause: fmt.Errorf("marshal schema: %w", err)}
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, &core.ReportGenerationError{Cause: fmt.Errorf("schema to map: %w", err)}
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
					Name:        "balance_variation_report",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("A narrative report over account class variations and subaccount weighting"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, &core.ReportGenerationError{Cause: err}
	}

	content := resp.OutputText()
	if content == "" {
		return nil, &core.ReportGenerationError{Cause: fmt.Errorf("empty response content")}
	}

	var report core.NarrativeReport
	if err := json.Unmarshal([]byte(content), &report); err != nil {
		return nil, &core.ReportGenerationError{Cause: fmt.Errorf("parse completion: %w", err)}
	}
	return &report, nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v core.NarrativeReport
	return reflector.Reflect(v)
}
