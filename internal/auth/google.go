package auth

import (
	"context"
	"errors"

	"estatery-api-io/api/pkg/models"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

var ErrUnverifiedGoogleEmail = errors.New("google account email is not verified")

// GoogleIDTokenVerifier checks Google ID tokens against the configured client id.
type GoogleIDTokenVerifier struct {
	clientID string
	verifier googleAuthIDTokenVerifier.Verifier
}

func NewGoogleIDTokenVerifier(clientID string) *GoogleIDTokenVerifier {
	return &GoogleIDTokenVerifier{
		clientID: clientID,
		verifier: googleAuthIDTokenVerifier.Verifier{},
	}
}

func (g *GoogleIDTokenVerifier) Verify(_ context.Context, idToken string) (models.GoogleIdentity, error) {
	if g.clientID == "" {
		return models.GoogleIdentity{}, errors.New("google sign-in is not configured")
	}

	if err := g.verifier.VerifyIDToken(idToken, []string{g.clientID}); err != nil {
		return models.GoogleIdentity{}, err
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return models.GoogleIdentity{}, errors.New("cannot decode token")
	}

	if claimSet.Email == "" || !claimSet.EmailVerified {
		return models.GoogleIdentity{}, ErrUnverifiedGoogleEmail
	}

	return models.GoogleIdentity{
		Email:   claimSet.Email,
		Name:    claimSet.Name,
		Picture: claimSet.Picture,
	}, nil
}
