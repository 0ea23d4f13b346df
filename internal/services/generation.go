package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	types "github.com/yungbote/courseforge-backend/internal/domain"
	"github.com/yungbote/courseforge-backend/internal/learning/prompts"
	"github.com/yungbote/courseforge-backend/internal/observability"
	"github.com/yungbote/courseforge-backend/internal/platform/apierr"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
	"github.com/yungbote/courseforge-backend/internal/platform/openai"
	"github.com/yungbote/courseforge-backend/internal/platform/ratelimit"
)

type ModuleStructureParams struct {
	CourseTitle       string `json:"courseTitle" validate:"required"`
	CourseDescription string `json:"courseDescription" validate:"required"`
	NumberOfModules   int    `json:"numberOfModules" validate:"gte=1,lte=10"`
	TargetAudience    string `json:"targetAudience" validate:"required"`
	LearningLevel     string `json:"learningLevel" validate:"required,oneof=beginner intermediate advanced"`
}

type LessonParams struct {
	Topic             string `json:"topic" validate:"required"`
	TargetAudience    string `json:"targetAudience" validate:"required"`
	LearningLevel     string `json:"learningLevel" validate:"required,oneof=beginner intermediate advanced"`
	DesiredOutcomes   string `json:"desiredOutcomes" validate:"required"`
	AdditionalContext string `json:"additionalContext"`
}

// GenerationService asks the model for drafts. Nothing is persisted.
type GenerationService interface {
	GenerateModuleStructure(ctx context.Context, in ModuleStructureParams) ([]types.ModuleDraft, error)
	GenerateLesson(ctx context.Context, in LessonParams) (*types.LessonDraft, error)
}

type generationService struct {
	log     *logger.Logger
	llm     openai.Client
	prompts *prompts.Registry
	limiter ratelimit.Limiter
}

func NewGenerationService(baseLog *logger.Logger, llm openai.Client, registry *prompts.Registry, limiter ratelimit.Limiter) GenerationService {
	if limiter == nil {
		limiter = ratelimit.Noop()
	}
	return &generationService{
		log:     baseLog.With("service", "GenerationService"),
		llm:     llm,
		prompts: registry,
		limiter: limiter,
	}
}

func (s *generationService) GenerateModuleStructure(ctx context.Context, in ModuleStructureParams) (drafts []types.ModuleDraft, err error) {
	defer func() { observeGeneration(prompts.PromptModuleStructure, err) }()
	if err := s.admit(ctx, in); err != nil {
		return nil, err
	}
	text, err := s.complete(ctx, prompts.PromptModuleStructure, prompts.Input{
		CourseTitle:       in.CourseTitle,
		CourseDescription: in.CourseDescription,
		NumberOfModules:   in.NumberOfModules,
		TargetAudience:    in.TargetAudience,
		LearningLevel:     in.LearningLevel,
	}, "Failed to generate module structure")
	if err != nil {
		return nil, err
	}

	if err := decodeDraft(text, &drafts); err != nil {
		s.log.Warn("GenerateModuleStructure: unusable model output", "error", err)
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, apierr.Validation("generated module structure is empty", nil)
	}
	for i := range drafts {
		if err := validateDraft(drafts[i]); err != nil {
			s.log.Warn("GenerateModuleStructure: draft failed shape check", "index", i, "error", err)
			return nil, err
		}
	}
	return drafts, nil
}

func (s *generationService) GenerateLesson(ctx context.Context, in LessonParams) (_ *types.LessonDraft, err error) {
	defer func() { observeGeneration(prompts.PromptLesson, err) }()
	if err := s.admit(ctx, in); err != nil {
		return nil, err
	}
	text, err := s.complete(ctx, prompts.PromptLesson, prompts.Input{
		Topic:             in.Topic,
		TargetAudience:    in.TargetAudience,
		LearningLevel:     in.LearningLevel,
		DesiredOutcomes:   in.DesiredOutcomes,
		AdditionalContext: in.AdditionalContext,
	}, "Failed to generate lesson content")
	if err != nil {
		return nil, err
	}

	var draft types.LessonDraft
	if err := decodeDraft(text, &draft); err != nil {
		s.log.Warn("GenerateLesson: unusable model output", "error", err)
		return nil, err
	}
	if err := validateDraft(draft); err != nil {
		s.log.Warn("GenerateLesson: draft failed shape check", "error", err)
		return nil, err
	}
	return &draft, nil
}

// admit checks identity, parameters and the caller's generation budget.
func (s *generationService) admit(ctx context.Context, params any) error {
	userID, err := actingUser(ctx)
	if err != nil {
		return err
	}
	if err := validateInput(params); err != nil {
		return err
	}
	ok, err := s.limiter.Allow(ctx, userID.String())
	if err != nil {
		s.log.Warn("Generation rate limiter unavailable, allowing request", "error", err, "user_id", userID)
		return nil
	}
	if !ok {
		observability.Current().IncRateLimited("generation")
		return apierr.RateLimited("Too many generation requests, try again shortly")
	}
	return nil
}

func (s *generationService) complete(ctx context.Context, name prompts.PromptName, in prompts.Input, failMsg string) (string, error) {
	if s.llm == nil || s.prompts == nil {
		return "", apierr.GenerationFailed(failMsg, nil)
	}
	p, err := s.prompts.Build(name, in)
	if err != nil {
		return "", apierr.Validation("invalid generation parameters", err)
	}
	start := time.Now()
	text, err := s.llm.GenerateText(ctx, openai.ChatRequest{
		System:      p.System,
		User:        p.User,
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	})
	status := "ok"
	if err != nil {
		status = "error"
	}
	observability.Current().ObserveLLMRequest(p.Name, status, time.Since(start))
	if err != nil {
		s.log.Warn("Model call failed", "prompt", p.Name, "error", err)
		return "", apierr.GenerationFailed(failMsg, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", apierr.GenerationFailed(failMsg, nil)
	}
	return text, nil
}

func observeGeneration(name prompts.PromptName, err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(apierr.KindOf(err))
	}
	observability.Current().ObserveGeneration(string(name), outcome)
}

// decodeDraft fails with generation_failed for non-JSON text and with
// validation when the JSON does not fit the draft type.
func decodeDraft(text string, out any) error {
	raw := stripCodeFence(text)
	if !json.Valid([]byte(raw)) {
		return apierr.GenerationFailed("model returned malformed output", nil)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return apierr.Validation("generated content has an unexpected shape", err)
	}
	return nil
}

func validateDraft(draft any) error {
	if err := validate.Struct(draft); err != nil {
		return apierr.Validation("generated content has an unexpected shape", err)
	}
	return nil
}

// stripCodeFence removes a surrounding markdown code fence, if any.
func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
