package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T) (*Service, *InMemoryUserRepository) {
	t.Helper()

	tokens, err := NewTokenManager("test-secret-key-for-testing-only", time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	repo := NewInMemoryUserRepository()
	return NewService(repo, tokens), repo
}

func testInput() RegisterInput {
	return RegisterInput{
		Email:     "test@example.com",
		Username:  "tester",
		FirstName: "Test",
		LastName:  "User",
		Password:  "Password@123",
	}
}

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	service, repo := newTestService(t)

	user, err := service.Register(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.users[user.ID]
	if stored == nil {
		t.Fatalf("user not found")
	}

	if stored.Password == "Password@123" {
		t.Fatalf("password was stored in plain text")
	}
	if stored.Role != RoleUser {
		t.Errorf("expected role %q, got %q", RoleUser, stored.Role)
	}
}

func TestRegister_Duplicates(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, testInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	in := testInput()
	in.Username = "other"
	in.Email = "TEST@example.com"
	if _, err := service.Register(ctx, in); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	in = testInput()
	in.Email = "other@example.com"
	if _, err := service.Register(ctx, in); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, testInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := service.Login(ctx, "test@example.com", "Password@123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != registered.ID || token == "" {
		t.Fatalf("unexpected login result: %q %+v", token, user)
	}

	claims, err := service.tokens.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != registered.ID || claims.Username != "tester" {
		t.Errorf("unexpected claims %+v", claims)
	}

	if _, _, err := service.Login(ctx, "test@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := service.Login(ctx, "nobody@example.com", "Password@123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSetPassword(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, testInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := service.SetPassword(ctx, user.ID, "wrong", "NewPassword@1"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
	if err := service.SetPassword(ctx, user.ID, "Password@123", "Password@123"); !errors.Is(err, ErrSamePassword) {
		t.Errorf("expected ErrSamePassword, got %v", err)
	}
	if err := service.SetPassword(ctx, user.ID, "Password@123", "NewPassword@1"); err != nil {
		t.Fatalf("set password: %v", err)
	}

	if _, _, err := service.Login(ctx, "test@example.com", "NewPassword@1"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, _, err := service.Login(ctx, "test@example.com", "Password@123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password still works: %v", err)
	}
}

func TestList_Paginates(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		in := testInput()
		in.Username = name
		in.Email = name + "@example.com"
		if _, err := service.Register(ctx, in); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	users, total, err := service.List(ctx, "", 2, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(users) != 1 || users[0].Username != "c" {
		t.Errorf("unexpected page: total=%d users=%+v", total, users)
	}
}
