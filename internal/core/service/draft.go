package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/niksmo/shop-fusion/internal/core/domain"
)

func (s *Service) Draft() (domain.ProductDraft, error) {
	const op = "Service.Draft"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdminLocked(); err != nil {
		return domain.ProductDraft{}, fmt.Errorf("%s: %w", op, err)
	}
	return s.st.draft.Clone(), nil
}

func (s *Service) UpdateDraft(d domain.ProductDraft) (domain.ProductDraft, error) {
	const op = "Service.UpdateDraft"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdminLocked(); err != nil {
		return domain.ProductDraft{}, fmt.Errorf("%s: %w", op, err)
	}
	s.st.draft = d.Clone()
	return s.st.draft.Clone(), nil
}

func (s *Service) ResetDraft() (domain.ProductDraft, error) {
	const op = "Service.ResetDraft"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdminLocked(); err != nil {
		return domain.ProductDraft{}, fmt.Errorf("%s: %w", op, err)
	}
	s.resetDraftLocked()
	return s.st.draft.Clone(), nil
}

func (s *Service) resetDraftLocked() {
	s.st.draft = domain.NewProductDraft()
	s.tokens.invalidate(draftDescription, draftImage)
}

// GenerateDraftDescription asks the advisor for product copy and writes it
// into the draft. The reported bool is false when a newer request or a
// navigation away from the admin view superseded this one.
func (s *Service) GenerateDraftDescription(
	ctx context.Context,
) (domain.ProductDraft, bool, error) {
	const op = "Service.GenerateDraftDescription"

	d, token, err := s.beginDraftRequest(draftDescription, func(d domain.ProductDraft) bool {
		return d.Name != "" && d.Category != ""
	})
	if err != nil {
		return domain.ProductDraft{}, false, fmt.Errorf("%s: %w", op, err)
	}

	text := s.advisor.GenerateDescription(ctx, d.Name, d.Category)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tokens.isLatest(draftDescription, token) {
		return s.st.draft.Clone(), false, nil
	}
	s.st.draft.Description = text
	return s.st.draft.Clone(), true, nil
}

// GenerateDraftImage replaces the draft images with a generated one. When
// nothing is generated the prior images are kept.
func (s *Service) GenerateDraftImage(
	ctx context.Context,
) (domain.ProductDraft, bool, error) {
	const op = "Service.GenerateDraftImage"

	d, token, err := s.beginDraftRequest(draftImage, func(d domain.ProductDraft) bool {
		return d.Name != ""
	})
	if err != nil {
		return domain.ProductDraft{}, false, fmt.Errorf("%s: %w", op, err)
	}

	image, ok := s.advisor.GenerateImage(ctx, strings.TrimSpace(d.ImagePrompt()))

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tokens.isLatest(draftImage, token) {
		return s.st.draft.Clone(), false, nil
	}
	if !ok {
		return s.st.draft.Clone(), false,
			fmt.Errorf("%s: %w", op, domain.ErrImageUnavailable)
	}
	s.st.draft.Images = []string{image}
	return s.st.draft.Clone(), true, nil
}

func (s *Service) beginDraftRequest(
	ch channel, complete func(domain.ProductDraft) bool,
) (domain.ProductDraft, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdminLocked(); err != nil {
		return domain.ProductDraft{}, 0, err
	}
	if !complete(s.st.draft) {
		return domain.ProductDraft{}, 0, domain.ErrDraftIncomplete
	}
	return s.st.draft.Clone(), s.tokens.next(ch), nil
}

// SubmitDraft adds the draft to the catalog and resets the form.
func (s *Service) SubmitDraft() (domain.Product, error) {
	const op = "Service.SubmitDraft"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdminLocked(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	d := s.st.draft.Clone()
	if d.Name == "" || !d.Price.IsPositive() {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrDraftIncomplete)
	}

	d.Images = slices.DeleteFunc(d.Images, func(img string) bool {
		return strings.TrimSpace(img) == ""
	})
	if len(d.Images) == 0 {
		d.Images = []string{domain.DefaultDraftImage}
	}

	p, err := s.addProductLocked(d.ToProduct(""))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	s.resetDraftLocked()
	return p, nil
}
