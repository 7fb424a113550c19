package usecases

import (
	"golang.org/x/crypto/bcrypt"

	"kb-server/auth"
	"kb-server/entities"
	"kb-server/repositories"
)

const bcryptCost = 12

// AuthResult is what both register and login hand back to the client.
type AuthResult struct {
	User  *entities.User `json:"user"`
	Token string         `json:"token"`
}

type AuthUseCase struct {
	users     repositories.UserRepository
	jwtSecret []byte
}

func NewAuthUseCase(users repositories.UserRepository, jwtSecret []byte) *AuthUseCase {
	return &AuthUseCase{
		users:     users,
		jwtSecret: jwtSecret,
	}
}

// Register creates a user after a case-sensitive uniqueness check and
// issues a token for the new account.
func (uc *AuthUseCase) Register(email, password string) (*AuthResult, error) {
	exists, err := uc.users.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, Conflict("User with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(user.ID, uc.jwtSecret, auth.TokenTTL)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials. Unknown email and wrong password return the
// identical error so callers cannot enumerate accounts; any other failure
// on this path keeps the unauthorized kind so the endpoint never answers
// with anything but a 401.
func (uc *AuthUseCase) Login(email, password string) (*AuthResult, error) {
	user, err := uc.users.FindByEmail(email)
	if err != nil {
		return nil, Unauthorized("Login failed")
	}
	if user == nil {
		return nil, Unauthorized("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, Unauthorized("Invalid email or password")
	}

	token, err := auth.GenerateToken(user.ID, uc.jwtSecret, auth.TokenTTL)
	if err != nil {
		return nil, Unauthorized("Login failed")
	}

	return &AuthResult{User: user, Token: token}, nil
}

// ValidateToken checks signature and expiry against the shared secret.
func (uc *AuthUseCase) ValidateToken(token string) (*auth.Claims, error) {
	claims, err := auth.ParseToken(token, uc.jwtSecret)
	if err != nil {
		return nil, Unauthorized("Invalid or expired token")
	}
	return claims, nil
}
