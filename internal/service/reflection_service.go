package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dendrafalah/terencana.id/internal/domain"
)

// ReflectionService scores the money reflection quiz and maps the total onto
// an animal persona.
type ReflectionService struct {
	drafts domain.DraftRepository
}

// NewReflectionService creates a new ReflectionService
func NewReflectionService(drafts domain.DraftRepository) *ReflectionService {
	return &ReflectionService{drafts: drafts}
}

// Questions returns the question bank in presentation order.
func (s *ReflectionService) Questions() []domain.ReflectionQuestion {
	return domain.ReflectionQuestions
}

// Submit scores the answers and stores the persona result. Unanswered
// questions count as zero.
func (s *ReflectionService) Submit(deviceID uuid.UUID, answers domain.ReflectionAnswers) (*domain.ReflectionResult, error) {
	if err := answers.Validate(); err != nil {
		return nil, err
	}

	total := answers.Total()
	archetype := domain.PickArchetype(total)
	strengths, focus := domain.PickInsights(answers)

	result := &domain.ReflectionResult{
		Version: 1,
		Answers: answers,

		Total: total,
		Max:   domain.ReflectionMaxScore,

		ReflectionArchetype: archetype,

		Strengths: strengths,
		Focus:     focus,
		Steps:     domain.PickSteps(archetype.Key),

		SubmittedAt: time.Now().UTC(),
	}

	if err := s.drafts.Save(deviceID, domain.SlotReflection, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Result returns the stored quiz outcome.
func (s *ReflectionService) Result(deviceID uuid.UUID) (*domain.ReflectionResult, error) {
	raw, err := s.drafts.Load(deviceID, domain.SlotReflection)
	if errors.Is(err, domain.ErrDraftNotFound) {
		return nil, domain.ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	var result domain.ReflectionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode reflection result: %w", err)
	}
	return &result, nil
}

// Reset drops the stored outcome.
func (s *ReflectionService) Reset(deviceID uuid.UUID) error {
	return s.drafts.Delete(deviceID, domain.SlotReflection)
}
