package service

import (
	"context"
	"testing"

	"github.com/settleapp/settle/internal/apperr"
	"github.com/settleapp/settle/internal/auth"
)

func userFixture(t *testing.T) *UserService {
	t.Helper()

	store := newTestStore(t)
	jwtManager := auth.NewJWTManager("test-secret", testTokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store, testDefaults)
	return NewUserService(authenticator, jwtManager, store)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := userFixture(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Alice", "Alice@Example.com", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if token == "" {
		t.Error("expected session token")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want normalized", user.Email)
	}
	if user.Avatar != testDefaults.AvatarURL {
		t.Errorf("avatar = %q, want default", user.Avatar)
	}
	if !user.Notifications {
		t.Error("expected notifications enabled by default")
	}

	// Login with mixed-case email resolves the same account.
	loggedIn, token, err := svc.Login(ctx, "ALICE@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Error("expected session token")
	}
	if loggedIn.ID != user.ID {
		t.Errorf("ID = %q, want %q", loggedIn.ID, user.ID)
	}

	_, _, err = svc.Login(ctx, "alice@example.com", "wrong password")
	if apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Errorf("kind = %v, want unauthenticated", apperr.KindOf(err))
	}
}

func TestRegisterRejections(t *testing.T) {
	svc := userFixture(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Alice", "alice@example.com", "correct horse"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{name: "missing name", email: "bob@example.com", password: "correct horse"},
		{name: "missing email", userName: "Bob", password: "correct horse"},
		{name: "short password", userName: "Bob", email: "bob@example.com", password: "short"},
		{name: "duplicate email", userName: "Alice 2", email: "Alice@Example.com", password: "correct horse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tt.userName, tt.email, tt.password)
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Errorf("kind = %v (%v), want validation", apperr.KindOf(err), err)
			}
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := userFixture(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "Alice", "alice@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, user, "Alice B", "")
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Name != "Alice B" {
		t.Errorf("name = %q, want Alice B", updated.Name)
	}
	if updated.Avatar != testDefaults.AvatarURL {
		t.Errorf("avatar = %q, empty input must not clear it", updated.Avatar)
	}

	updated, err = svc.UpdateProfile(ctx, user, "", "https://avatars/new")
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Name != "Alice B" || updated.Avatar != "https://avatars/new" {
		t.Errorf("profile = %q/%q", updated.Name, updated.Avatar)
	}
}

func TestUpdatePreferences(t *testing.T) {
	svc := userFixture(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "Alice", "alice@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	off := false
	updated, err := svc.UpdatePreferences(ctx, user, &off)
	if err != nil {
		t.Fatalf("UpdatePreferences failed: %v", err)
	}
	if updated.Notifications {
		t.Error("expected notifications off")
	}

	// nil flag leaves the preference alone.
	updated, err = svc.UpdatePreferences(ctx, user, nil)
	if err != nil {
		t.Fatalf("UpdatePreferences failed: %v", err)
	}
	if updated.Notifications {
		t.Error("nil flag must not change the preference")
	}
}

func TestChangePassword(t *testing.T) {
	svc := userFixture(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "Alice", "alice@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.ChangePassword(ctx, user, "wrong password", "new password"); apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Errorf("kind = %v, want unauthenticated", apperr.KindOf(err))
	}

	if err := svc.ChangePassword(ctx, user, "correct horse", "short"); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("kind = %v, want validation", apperr.KindOf(err))
	}

	if err := svc.ChangePassword(ctx, user, "correct horse", "new password"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if _, _, err := svc.Login(ctx, "alice@example.com", "correct horse"); err == nil {
		t.Error("old password should be rejected after change")
	}
	if _, _, err := svc.Login(ctx, "alice@example.com", "new password"); err != nil {
		t.Errorf("new password should log in: %v", err)
	}
}
