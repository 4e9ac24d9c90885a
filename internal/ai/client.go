package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/smallbiznis/sowforge/internal/config"
	"github.com/smallbiznis/sowforge/internal/pricing"
	ratecarddomain "github.com/smallbiznis/sowforge/internal/ratecard/domain"
	sowdomain "github.com/smallbiznis/sowforge/internal/sow/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrEmptyBrief = errors.New("empty_brief")

const systemPromptTemplate = `You are a delivery planner for a digital agency.
Given a project brief, respond with ONLY a JSON object of the form:
{"roles": [{"role": "<role name>", "hours": <number>, "description": "<one line>"}]}
Pick role names from this rate card where possible:
%s
Do not include rates. Do not include any text outside the JSON object.`

type Params struct {
	fx.In

	Log     *zap.Logger
	Cfg     config.Config
	Catalog ratecarddomain.Service
}

type suggester struct {
	log     *zap.Logger
	cfg     config.AIConfig
	client  openai.Client
	catalog ratecarddomain.Service
}

// New builds the chat-completion backed role suggester. The gateway is
// OpenAI-compatible; AI_BASE_URL points it at any conforming endpoint.
func New(p Params) sowdomain.RoleSuggester {
	var opts []option.RequestOption
	if p.Cfg.AI.APIKey != "" {
		opts = append(opts, option.WithAPIKey(p.Cfg.AI.APIKey))
	}
	if p.Cfg.AI.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(p.Cfg.AI.BaseURL))
	}

	return &suggester{
		log:     p.Log.Named("ai.suggester"),
		cfg:     p.Cfg.AI,
		client:  openai.NewClient(opts...),
		catalog: p.Catalog,
	}
}

func (s *suggester) SuggestRoles(ctx context.Context, brief string) ([]pricing.Row, error) {
	if !s.cfg.Enabled {
		return nil, sowdomain.ErrGenerationOff
	}
	if strings.TrimSpace(brief) == "" {
		return nil, ErrEmptyBrief
	}

	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(systemPromptTemplate, catalogPromptLines(catalog))),
			openai.UserMessage(brief),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}

	payload, err := ExtractJSON(completion.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	result, err := ParseSuggestion(payload, catalog)
	if err != nil {
		return nil, err
	}

	s.log.Info("role suggestion parsed",
		zap.String("format", result.Format),
		zap.Int("scopes", result.Scopes),
		zap.Int("roles", result.Roles),
		zap.Int("match_percentage", result.MatchPercentage()),
	)
	for _, msg := range result.Errors {
		s.log.Warn("suggestion issue", zap.String("detail", msg))
	}

	return result.Rows, nil
}

func catalogPromptLines(catalog []pricing.RateCatalogEntry) string {
	lines := make([]string, 0, len(catalog))
	for _, entry := range catalog {
		lines = append(lines, "- "+entry.RoleName)
	}
	return strings.Join(lines, "\n")
}
