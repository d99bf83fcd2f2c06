package service

import (
	"context"
	"slices"
	"strings"

	"github.com/niksmo/shop-fusion/internal/core/domain"
)

func (s *Service) StylistMessages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.st.stylist)
}

// AskStylist appends the query to the conversation and, once the advisor
// answers, the advice. An answer overtaken by a newer question is dropped.
func (s *Service) AskStylist(
	ctx context.Context, query string,
) ([]domain.ChatMessage, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.StylistMessages(), false
	}

	s.mu.Lock()
	s.st.stylist = append(s.st.stylist, domain.ChatMessage{
		Author: domain.AuthorUser, Text: query,
	})
	token := s.tokens.next(stylistAdvice)
	catalog := s.productsLocked(domain.AllCategories)
	var email string
	if s.st.identity != nil {
		email = s.st.identity.Email
	}
	s.mu.Unlock()

	s.emit(ctx, domain.ClientEvent{
		Kind:  domain.EventStylistQueried,
		Email: email,
		Query: query,
	})

	advice := s.advisor.GetAdvice(ctx, query, catalog)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tokens.isLatest(stylistAdvice, token) {
		return slices.Clone(s.st.stylist), false
	}
	s.st.stylist = append(s.st.stylist, domain.ChatMessage{
		Author: domain.AuthorAI, Text: advice,
	})
	return slices.Clone(s.st.stylist), true
}
