package identity

import "context"

// Provider is the external identity service the workspace authenticates
// against. The production implementation is Cognito; tests use fakes.
type Provider interface {
	SignUp(ctx context.Context, input SignUpInput) (SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, input ConfirmInput) error
	ResendCode(ctx context.Context, input ResendCodeInput) error
	Login(ctx context.Context, input LoginInput) (Tokens, error)
	RefreshTokens(ctx context.Context, input RefreshInput) (Tokens, error)
	SignOut(ctx context.Context, input SignOutInput) error
}

type SignUpInput struct {
	Email    string
	Password string
}

type SignUpOutput struct {
	UserSub      string
	Confirmed    bool
	CodeDelivery string // e.g., "email"
}

type ConfirmInput struct {
	Email string
	Code  string
}

type ResendCodeInput struct {
	Email string
}

type LoginInput struct {
	Email    string
	Password string
}

// Tokens is the credential set returned after a successful authentication
// or refresh.
type Tokens struct {
	IDToken      string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int32
	TokenType    string
}

type RefreshInput struct {
	Email        string
	RefreshToken string
}

type SignOutInput struct {
	AccessToken string
}
