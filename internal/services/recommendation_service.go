package services

import (
	"context"
	"strings"
	"time"

	"advisor-api/internal/provider"
	advisor_errors "advisor-api/pkg/errors"
	"advisor-api/pkg/logger"

	"go.uber.org/zap"
)

const (
	MsgQuestionRequired    = "Question is required"
	MsgRecommendationError = "Failed to fetch AI response"
)

// AnswerCache is an optional read-through cache in front of the provider.
type AnswerCache interface {
	GetAnswer(ctx context.Context, question string) (string, bool, error)
	SetAnswer(ctx context.Context, question, answer string) error
}

type RecommendationService struct {
	provider provider.ChatProvider
	cache    AnswerCache
	timeout  time.Duration
	logger   *logger.Logger
}

// NewRecommendationService builds the service. cache may be nil.
func NewRecommendationService(p provider.ChatProvider, cache AnswerCache, timeout time.Duration, l *logger.Logger) *RecommendationService {
	if l == nil {
		l = logger.NewNop()
	}
	return &RecommendationService{provider: p, cache: cache, timeout: timeout, logger: l}
}

func (s *RecommendationService) Recommend(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", advisor_errors.New(advisor_errors.ErrInvalidInput, MsgQuestionRequired)
	}

	// Cache failures degrade to a provider call.
	if s.cache != nil {
		answer, ok, err := s.cache.GetAnswer(ctx, question)
		if err != nil {
			s.logger.ErrorCtx(ctx, "recommendation cache read failed", zap.Error(err))
		} else if ok {
			return answer, nil
		}
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	answer, err := s.provider.Chat(callCtx, question)
	if err != nil {
		return "", advisor_errors.Wrap(advisor_errors.ErrUpstream, MsgRecommendationError, err)
	}

	if s.cache != nil {
		if err := s.cache.SetAnswer(ctx, question, answer); err != nil {
			s.logger.ErrorCtx(ctx, "recommendation cache write failed", zap.Error(err))
		}
	}
	return answer, nil
}
