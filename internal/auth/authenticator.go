package auth

import (
	"context"

	"github.com/settleapp/settle/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// The core never performs credential checks itself; it receives an already
// resolved identity. This abstraction keeps the credential method (password,
// OAuth, passkeys) swappable without touching the service layer.
type Authenticator interface {
	// Register creates a new user account with the given credential.
	Register(ctx context.Context, email, name, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks that the credential meets the
	// implementation's requirements.
	ValidateCredential(credential string) error
}
