package middleware

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// FirebaseVerifier checks Firebase ID tokens. Accounts are provisioned with
// the user's uuid as their Firebase UID.
type FirebaseVerifier struct {
	authClient *auth.Client
}

func NewFirebaseVerifier(authClient *auth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{authClient: authClient}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	token, err := v.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	return token.UID, nil
}
