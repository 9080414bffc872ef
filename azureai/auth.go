// Copyright (c) Microsoft. All rights reserved.

package azureai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// Well-known token scopes.
const (
	ScopeCognitiveServices = "https://cognitiveservices.azure.com/.default"
	ScopeAIFoundry         = "https://ai.azure.com/.default"
)

// Header names used by key-authenticated services.
const (
	HeaderSubscriptionKey = "Ocp-Apim-Subscription-Key"
	HeaderAPIKey          = "api-key"
)

// tokenRefreshMargin is how long before expiry a cached token is replaced.
const tokenRefreshMargin = 5 * time.Minute

// Auth attaches credentials to an outgoing request.
type Auth interface {
	Authorize(ctx context.Context, req *http.Request) error
}

// AuthFunc adapts a function to the [Auth] interface.
type AuthFunc func(ctx context.Context, req *http.Request) error

// Authorize calls f.
func (f AuthFunc) Authorize(ctx context.Context, req *http.Request) error { return f(ctx, req) }

// KeyAuth returns an [Auth] that sends key in the given header.
func KeyAuth(header, key string) Auth {
	return AuthFunc(func(_ context.Context, req *http.Request) error {
		req.Header.Set(header, key)
		return nil
	})
}

// BearerKeyAuth returns an [Auth] that sends key as a bearer token.
func BearerKeyAuth(key string) Auth {
	return AuthFunc(func(_ context.Context, req *http.Request) error {
		req.Header.Set("Authorization", "Bearer "+key)
		return nil
	})
}

// TokenAuth authenticates requests with Microsoft Entra ID tokens obtained
// from an [azcore.TokenCredential]. Tokens are reused until shortly before
// they expire.
type TokenAuth struct {
	cred   azcore.TokenCredential
	scopes []string
	now    func() time.Time

	mu    sync.Mutex
	token azcore.AccessToken
}

// NewTokenAuth creates a [TokenAuth] for the given scopes.
func NewTokenAuth(cred azcore.TokenCredential, scopes ...string) *TokenAuth {
	return &TokenAuth{cred: cred, scopes: scopes, now: time.Now}
}

// Authorize sets the Authorization header, acquiring a token if needed.
func (a *TokenAuth) Authorize(ctx context.Context, req *http.Request) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token.Token == "" || a.now().Add(tokenRefreshMargin).After(a.token.ExpiresOn) {
		slog.DebugContext(ctx, "acquiring Entra ID token", "scopes", a.scopes)
		tok, err := a.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: a.scopes})
		if err != nil {
			return fmt.Errorf("%w: get token: %v", ErrAuth, err)
		}
		slog.DebugContext(ctx, "token acquired", "expires_on", tok.ExpiresOn)
		a.token = tok
	}
	req.Header.Set("Authorization", "Bearer "+a.token.Token)
	return nil
}

// CredentialKind selects how [NewCredential] builds a credential.
type CredentialKind string

const (
	// CredentialDeveloper chains the Azure CLI and Azure Developer CLI
	// credentials, skipping environment and managed identity credentials.
	CredentialDeveloper CredentialKind = "developer"

	// CredentialDefault uses azidentity.DefaultAzureCredential.
	CredentialDefault CredentialKind = "default"
)

// NewCredential creates a token credential of the requested kind. An empty
// kind selects [CredentialDeveloper].
func NewCredential(kind CredentialKind) (azcore.TokenCredential, error) {
	switch kind {
	case "", CredentialDeveloper:
		cli, err := azidentity.NewAzureCLICredential(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: azure cli credential: %v", ErrConfig, err)
		}
		azd, err := azidentity.NewAzureDeveloperCLICredential(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: azure developer cli credential: %v", ErrConfig, err)
		}
		chain, err := azidentity.NewChainedTokenCredential([]azcore.TokenCredential{cli, azd}, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: credential chain: %v", ErrConfig, err)
		}
		return chain, nil
	case CredentialDefault:
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: default credential: %v", ErrConfig, err)
		}
		return cred, nil
	default:
		return nil, fmt.Errorf("%w: unknown credential kind %q", ErrConfig, kind)
	}
}
