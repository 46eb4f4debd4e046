package service

import (
	"context"
	"regexp"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/state"
)

var emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)

type AuthService struct {
	App    *state.App
	Events EventPublisher
}

// Register creates a non-admin account and signs it in. The guest cart is left alone.
func (s *AuthService) Register(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, fail(ErrValidation, "Please enter both email and password to register.")
	}
	if !emailShape.MatchString(email) {
		return models.User{}, fail(ErrValidation, "Please enter a valid email address.")
	}
	if _, ok := s.App.FindUser(email); ok {
		return models.User{}, fail(ErrConflict, "An account with that email already exists.")
	}

	u := models.User{Username: email, Password: password}
	users := append(append([]models.User{}, s.App.Users...), u)
	s.App.PutUsers(ctx, users)
	s.App.SetSession(ctx, u)

	publish(ctx, s.Events, events.UserRegistered, u.Username, nil)
	return u, nil
}

// Login signs the user in and moves a non-empty guest cart over when the user has
// none of their own. The guest cart key is removed either way.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, fail(ErrValidation, "Please enter email and password.")
	}
	u, ok := s.App.FindUser(email)
	if !ok {
		return models.User{}, fail(ErrNotFound, "No account found with that email.")
	}
	if u.Password != password {
		return models.User{}, fail(ErrUnauthorized, "Incorrect password. Please try again.")
	}

	s.App.SetSession(ctx, u)

	guest := s.App.CartFor(ctx, "")
	if len(guest) > 0 && len(s.App.CartFor(ctx, u.Username)) == 0 {
		s.App.PutCartFor(ctx, u.Username, guest)
	}
	s.App.DropCartFor(ctx, "")

	publish(ctx, s.Events, events.UserLoggedIn, u.Username, nil)
	return u, nil
}

func (s *AuthService) Logout(ctx context.Context) {
	username := s.App.Identity()
	if username == "" {
		return
	}
	s.App.ClearSession(ctx)
	publish(ctx, s.Events, events.UserLoggedOut, username, nil)
}

// RedirectFor is where a freshly signed-in user lands.
func RedirectFor(u models.User) string {
	if u.IsAdmin {
		return "#admin"
	}
	return "#home"
}
