// Copyright (c) Microsoft. All rights reserved.

// Package azureai holds the pieces shared by every service client in this
// module: a single-attempt HTTP [Client] with pluggable [Auth] and
// [Middleware], typed errors, a [Poller] for submit-then-poll operations,
// a [Cleanup] registry for remotely created resources, and the [Message] and
// [Content] model used by the chat and responses clients.
//
// # Clients
//
// Service packages build on [NewClient]:
//
//	client := azureai.NewClient(endpoint,
//	    azureai.KeyAuth(azureai.HeaderSubscriptionKey, key),
//	    azureai.WithAPIVersion("2023-07-31"),
//	)
//
// Token authentication uses an [azcore.TokenCredential]:
//
//	cred, err := azureai.NewCredential(azureai.CredentialDeveloper)
//	auth := azureai.NewTokenAuth(cred, azureai.ScopeAIFoundry)
//
// # Long-running operations
//
// A submit call answers 202 with an Operation-Location header. Wrap the
// response in a [Poller] and wait:
//
//	poller, err := azureai.NewPoller[analyzeOperation](client, resp, nil)
//	result, err := poller.PollUntilDone(ctx)
//
// # Errors
//
// HTTP failures are [*ServiceError] values wrapping one of the sentinel
// errors ([ErrAuth], [ErrNotFound], [ErrRateLimited], ...). Operations that
// end unsuccessfully yield [*OperationError]. Nothing is retried.
package azureai
