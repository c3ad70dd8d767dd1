// Package service implements the member workflows: registration with
// field validation and duplicate-email rejection, and the active-member
// listing. Handlers stay thin; stores stay pure I/O.
package service

import (
	"context"
	"errors"

	membermetrics "memberlist/internal/member/metrics"
	"memberlist/internal/member/models"
	"memberlist/internal/member/store"
	"memberlist/internal/member/validate"
	dErrors "memberlist/pkg/domain-errors"
	"memberlist/pkg/platform/sentinel"
)

// ValidateFunc checks a candidate and returns ordered violation messages.
// Injectable so tests can observe or replace the validation step.
type ValidateFunc func(*models.Member) []string

// Service orchestrates member registration and queries.
type Service struct {
	store    store.Store
	validate ValidateFunc
	metrics  *membermetrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics attaches feature metrics. A nil metrics value disables counting.
func WithMetrics(m *membermetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithValidator replaces the default validation engine.
func WithValidator(v ValidateFunc) Option {
	return func(s *Service) {
		if v != nil {
			s.validate = v
		}
	}
}

// NewService constructs a member service backed by the given store.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:    st,
		validate: validate.Member,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterMemberParams carries the seven registration fields. Optional fields
// stay nil when the caller omitted them.
type RegisterMemberParams struct {
	Name             string
	NameKana         string
	Email            string
	Position         *string
	Location         *string
	ProfileImageURL  *string
	SelfIntroduction *string
}

// RegisterMember runs the registration workflow: duplicate-email pre-check,
// candidate construction, field validation, then a single save. Validation
// failures never reach the store. The pre-check is only an early exit; two
// racing registrations are arbitrated by the store's unique constraint, whose
// violation is translated into the same duplicate-email error.
func (s *Service) RegisterMember(ctx context.Context, p RegisterMemberParams) (*models.Member, error) {
	exists, err := s.store.ExistsActiveByEmail(ctx, p.Email)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check member email")
	}
	if exists {
		return nil, duplicateEmail(p.Email)
	}

	member := models.NewMember(p.Name, p.NameKana, p.Email)
	member.Position = p.Position
	member.Location = p.Location
	member.ProfileImageURL = p.ProfileImageURL
	member.SelfIntroduction = p.SelfIntroduction

	if violations := s.validate(member); len(violations) > 0 {
		return nil, dErrors.NewValidation(violations)
	}

	if err := s.store.Save(ctx, member); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, duplicateEmail(p.Email)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save member")
	}

	s.incrementMembersCreated()
	return member, nil
}

// ListMembers returns all active members, newest first.
func (s *Service) ListMembers(ctx context.Context) ([]*models.Member, error) {
	members, err := s.store.FindAllActive(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list members")
	}
	return members, nil
}

func duplicateEmail(email string) *dErrors.Error {
	return dErrors.New(dErrors.CodeConflict, "メールアドレスが既に登録されています: "+email)
}

func (s *Service) incrementMembersCreated() {
	if s.metrics != nil {
		s.metrics.IncrementMembersCreated()
	}
}
