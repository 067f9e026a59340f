package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
)

// CognitoProvider implements Provider against AWS Cognito.
type CognitoProvider struct {
	cip          *cip.Client
	clientID     string
	clientSecret string
}

func NewCognitoProvider(ctx context.Context, region, clientID, clientSecret string) (*CognitoProvider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &CognitoProvider{
		cip:          cip.NewFromConfig(cfg),
		clientID:     clientID,
		clientSecret: clientSecret,
	}, nil
}

func (p *CognitoProvider) secretHash(username string) *string {
	if p.clientSecret == "" {
		return nil
	}
	h := ComputeSecretHash(username, p.clientID, p.clientSecret)
	return &h
}

func (p *CognitoProvider) SignUp(ctx context.Context, input SignUpInput) (SignUpOutput, error) {
	out, err := p.cip.SignUp(ctx, &cip.SignUpInput{
		ClientId:   &p.clientID,
		SecretHash: p.secretHash(input.Email),
		Username:   &input.Email,
		Password:   &input.Password,
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: &input.Email},
		},
	})
	if err != nil {
		return SignUpOutput{}, mapAWSError(err)
	}
	delivery := ""
	if out.CodeDeliveryDetails != nil && out.CodeDeliveryDetails.DeliveryMedium != "" {
		delivery = string(out.CodeDeliveryDetails.DeliveryMedium)
	}
	return SignUpOutput{
		UserSub:      aws.ToString(out.UserSub),
		Confirmed:    out.UserConfirmed,
		CodeDelivery: delivery,
	}, nil
}

func (p *CognitoProvider) ConfirmSignUp(ctx context.Context, input ConfirmInput) error {
	_, err := p.cip.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         &p.clientID,
		SecretHash:       p.secretHash(input.Email),
		Username:         &input.Email,
		ConfirmationCode: &input.Code,
	})
	if err != nil {
		return mapAWSError(err)
	}
	return nil
}

func (p *CognitoProvider) ResendCode(ctx context.Context, input ResendCodeInput) error {
	_, err := p.cip.ResendConfirmationCode(ctx, &cip.ResendConfirmationCodeInput{
		ClientId:   &p.clientID,
		SecretHash: p.secretHash(input.Email),
		Username:   &input.Email,
	})
	if err != nil {
		return mapAWSError(err)
	}
	return nil
}

func (p *CognitoProvider) Login(ctx context.Context, input LoginInput) (Tokens, error) {
	authParams := map[string]string{
		"USERNAME": input.Email,
		"PASSWORD": input.Password,
	}
	if h := p.secretHash(input.Email); h != nil {
		authParams["SECRET_HASH"] = *h
	}

	out, err := p.cip.InitiateAuth(ctx, &cip.InitiateAuthInput{
		ClientId:       &p.clientID,
		AuthFlow:       types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: authParams,
	})
	if err != nil {
		return Tokens{}, mapAWSError(err)
	}
	if out.AuthenticationResult == nil {
		return Tokens{}, fmt.Errorf("unexpected nil authentication result")
	}
	return tokensFromResult(out.AuthenticationResult), nil
}

func (p *CognitoProvider) RefreshTokens(ctx context.Context, input RefreshInput) (Tokens, error) {
	authParams := map[string]string{
		"REFRESH_TOKEN": input.RefreshToken,
	}
	if h := p.secretHash(input.Email); h != nil {
		authParams["SECRET_HASH"] = *h
	}

	out, err := p.cip.InitiateAuth(ctx, &cip.InitiateAuthInput{
		ClientId:       &p.clientID,
		AuthFlow:       types.AuthFlowTypeRefreshTokenAuth,
		AuthParameters: authParams,
	})
	if err != nil {
		return Tokens{}, mapAWSError(err)
	}
	if out.AuthenticationResult == nil {
		return Tokens{}, fmt.Errorf("unexpected nil authentication result")
	}
	return tokensFromResult(out.AuthenticationResult), nil
}

func (p *CognitoProvider) SignOut(ctx context.Context, input SignOutInput) error {
	_, err := p.cip.GlobalSignOut(ctx, &cip.GlobalSignOutInput{
		AccessToken: &input.AccessToken,
	})
	if err != nil {
		return mapAWSError(err)
	}
	return nil
}

func tokensFromResult(r *types.AuthenticationResultType) Tokens {
	return Tokens{
		IDToken:      aws.ToString(r.IdToken),
		AccessToken:  aws.ToString(r.AccessToken),
		RefreshToken: aws.ToString(r.RefreshToken),
		ExpiresIn:    r.ExpiresIn,
		TokenType:    aws.ToString(r.TokenType),
	}
}

// mapAWSError converts AWS SDK errors to identity sentinel errors.
func mapAWSError(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("identity: %w", err)
	}

	switch apiErr.ErrorCode() {
	case "UsernameExistsException":
		return fmt.Errorf("%s: %w", apiErr.ErrorMessage(), ErrUserAlreadyExists)
	case "UserNotFoundException":
		return fmt.Errorf("%s: %w", apiErr.ErrorMessage(), ErrUserNotFound)
	case "UserNotConfirmedException":
		return fmt.Errorf("%s: %w", apiErr.ErrorMessage(), ErrUserNotConfirmed)
	case "InvalidPasswordException":
		return fmt.Errorf("%s: %w", apiErr.ErrorMessage(), ErrInvalidPassword)
	case "CodeMismatchException":
		return fmt.Errorf("%s: %w", apiErr.ErrorMessage(), ErrInvalidCode)
	case "ExpiredCodeException":
		return fmt.Errorf("%s: %w", apiErr.ErrorMessage(), ErrCodeExpired)
	case "TooManyRequestsException", "LimitExceededException":
		return fmt.Errorf("%s: %w", apiErr.ErrorMessage(), ErrTooManyRequests)
	case "NotAuthorizedException":
		return fmt.Errorf("%s: %w", apiErr.ErrorMessage(), ErrNotAuthorized)
	case "InvalidParameterException":
		return fmt.Errorf("%s: %w", apiErr.ErrorMessage(), ErrInvalidParameter)
	default:
		return fmt.Errorf("identity %s: %w", apiErr.ErrorCode(), err)
	}
}

var _ Provider = (*CognitoProvider)(nil)
