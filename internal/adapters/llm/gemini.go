package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/dravina/dravina-agent/internal/domain"
)

// GeminiEngine implements domain.ReasoningEngine on the Gemini API
// (or Vertex AI when a project is configured).
type GeminiEngine struct {
	client    *genai.Client
	modelName string
}

type GeminiConfig struct {
	APIKey    string
	ModelName string

	// When ProjectID is set the Vertex AI backend is used instead of the
	// public Gemini API.
	ProjectID string
	Location  string
}

func NewGeminiEngine(ctx context.Context, cfg GeminiConfig) (*GeminiEngine, error) {
	clientCfg := &genai.ClientConfig{}
	if cfg.ProjectID != "" {
		clientCfg.Project = cfg.ProjectID
		clientCfg.Location = cfg.Location
		clientCfg.Backend = genai.BackendVertexAI
	} else {
		clientCfg.APIKey = cfg.APIKey
		clientCfg.Backend = genai.BackendGeminiAPI
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	modelName := cfg.ModelName
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	return &GeminiEngine{
		client:    client,
		modelName: modelName,
	}, nil
}

// Converse submits the turn sequence with the tool contracts and returns
// the response as ordered parts.
func (g *GeminiEngine) Converse(
	ctx context.Context,
	system string,
	turns []domain.Turn,
	contracts []domain.ToolContract,
) ([]domain.Part, error) {
	contents := turnsToContents(turns)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(int32(-1)), // dynamic thinking
		},
	}
	if len(contracts) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(contracts))
		for _, c := range contracts {
			decls = append(decls, &genai.FunctionDeclaration{
				Name:        c.Name,
				Description: c.Description,
				Parameters:  toGenaiSchema(c.Parameters),
			})
		}
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var parts []domain.Part
	for _, p := range res.Candidates[0].Content.Parts {
		switch {
		case p.FunctionCall != nil:
			parts = append(parts, domain.Part{Call: &domain.ToolCall{
				ID:   p.FunctionCall.ID,
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}})
		case p.Text != "":
			parts = append(parts, domain.Part{Text: p.Text})
		}
	}
	return parts, nil
}

// GenerateText performs a single-shot generation without tools.
func (g *GeminiEngine) GenerateText(ctx context.Context, system, user string) (string, error) {
	temp := float32(0.7)
	topP := float32(0.9)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   8192,
	}

	contents := []*genai.Content{genai.NewContentFromText(user, genai.RoleUser)}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}
	return text, nil
}

// ExtractProfile performs a schema-constrained extraction of the user's
// risk/time profile.
func (g *GeminiEngine) ExtractProfile(ctx context.Context, query string) (domain.UserProfile, error) {
	cfg := &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(int32(-1)),
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   profileSchema,
	}

	contents := []*genai.Content{
		genai.NewContentFromText(profileSystemPrompt, genai.RoleUser),
		genai.NewContentFromText(query, genai.RoleUser),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("gemini extract profile: %w", err)
	}

	var p domain.UserProfile
	if err := json.Unmarshal([]byte(res.Text()), &p); err != nil {
		return domain.UserProfile{}, fmt.Errorf("parse profile response: %w", err)
	}
	return p, nil
}

func turnsToContents(turns []domain.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		switch t.Kind {
		case domain.TurnToolCall:
			contents = append(contents, genai.NewContentFromParts([]*genai.Part{{
				FunctionCall: &genai.FunctionCall{
					ID:   t.Call.ID,
					Name: t.Call.Name,
					Args: t.Call.Args,
				},
			}}, genai.RoleModel))

		case domain.TurnToolResult:
			contents = append(contents, genai.NewContentFromParts([]*genai.Part{{
				FunctionResponse: &genai.FunctionResponse{
					ID:       t.Result.ID,
					Name:     t.Result.Name,
					Response: t.Result.Output,
				},
			}}, genai.RoleUser))

		default:
			role := genai.RoleUser
			if t.Role == domain.RoleModel {
				role = genai.RoleModel
			}
			contents = append(contents, genai.NewContentFromText(t.Text, role))
		}
	}
	return contents
}

func toGenaiSchema(s *domain.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
		Items:       toGenaiSchema(s.Items),
	}
	switch s.Type {
	case domain.TypeObject:
		out.Type = genai.TypeObject
	case domain.TypeArray:
		out.Type = genai.TypeArray
	default:
		out.Type = genai.TypeString
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}
