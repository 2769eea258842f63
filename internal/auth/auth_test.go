package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/settleapp/settle/internal/models"
)

type memoryUserStorage struct {
	users map[string]*models.User
}

func newMemoryUserStorage() *memoryUserStorage {
	return &memoryUserStorage{users: make(map[string]*models.User)}
}

func (m *memoryUserStorage) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.Email]; ok {
		return errors.New("duplicate email")
	}
	m.users[user.Email] = user
	return nil
}

func (m *memoryUserStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.users[email], nil
}

func TestPasswordAuthenticator(t *testing.T) {
	storage := newMemoryUserStorage()
	authenticator := NewPasswordAuthenticator(storage, models.Defaults{AvatarURL: "https://avatars/default"})
	ctx := context.Background()

	user, err := authenticator.Register(ctx, "Alice@Example.com", "Alice", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want normalized", user.Email)
	}
	if user.PasswordHash == "correct horse" {
		t.Error("password stored in plaintext")
	}

	t.Run("authenticate", func(t *testing.T) {
		got, err := authenticator.Authenticate(ctx, "ALICE@example.com", "correct horse")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("ID = %q, want %q", got.ID, user.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := authenticator.Authenticate(ctx, "alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := authenticator.Authenticate(ctx, "nobody@example.com", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("duplicate email different casing", func(t *testing.T) {
		if _, err := authenticator.Register(ctx, "ALICE@EXAMPLE.COM", "Alice 2", "correct horse"); !errors.Is(err, ErrEmailExists) {
			t.Errorf("err = %v, want ErrEmailExists", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		if _, err := authenticator.Register(ctx, "bob@example.com", "Bob", "short"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("err = %v, want ErrWeakPassword", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "user-1", Email: "alice@example.com"}

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "alice@example.com" {
		t.Errorf("claims = %+v", claims)
	}

	t.Run("garbage token", func(t *testing.T) {
		if _, err := manager.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("different-secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		token, err := expired.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})
}
