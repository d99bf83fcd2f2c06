package service

import (
	"context"
	"log/slog"

	"github.com/niksmo/shop-fusion/internal/core/domain"
)

func (s *Service) Identity() (domain.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st.identity == nil {
		return domain.Identity{}, false
	}
	return *s.st.identity, true
}

// Login always succeeds and replaces any active identity, dropping draft
// requests still in flight. A checkout requested while signed out resumes
// here, once.
func (s *Service) Login(email string, role domain.Role) domain.Identity {
	const op = "Service.Login"

	s.mu.Lock()
	defer s.mu.Unlock()

	id := domain.Identity{
		ID:    s.newID(),
		Email: email,
		Name:  domain.NameFromEmail(email),
		Role:  role,
	}
	s.st.identity = &id
	s.tokens.invalidate(draftDescription, draftImage)

	if s.st.nav.PendingCheckout {
		s.st.nav.PendingCheckout = false
		s.setViewLocked(domain.ViewCheckout)
	} else {
		s.setViewLocked(domain.ViewHome)
	}

	slog.Info("signed in", "op", op, "user", id.Name, "role", id.Role)
	return id
}

// SignIn resolves the role from the configured admin credentials and logs
// in. Any other credentials get the customer role.
func (s *Service) SignIn(email, password string) domain.Identity {
	return s.Login(email, s.roleFor(email, password))
}

// Register signs in and sends the welcome notification.
func (s *Service) Register(ctx context.Context, email, password string) domain.Identity {
	id := s.SignIn(email, password)
	s.emit(ctx, domain.ClientEvent{
		Kind:  domain.EventUserRegistered,
		Email: email,
	})
	return id
}

func (s *Service) roleFor(email, password string) domain.Role {
	if s.admin.Email != "" && email == s.admin.Email && password == s.admin.Password {
		return domain.RoleAdmin
	}
	return domain.RoleCustomer
}

func (s *Service) Logout() {
	const op = "Service.Logout"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st.identity != nil {
		slog.Info("signed out", "op", op, "user", s.st.identity.Name)
	}
	s.st.identity = nil
	s.st.nav.PendingCheckout = false
	s.setViewLocked(domain.ViewHome)
	s.tokens.invalidate(draftDescription, draftImage)
}
