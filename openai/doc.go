// Copyright (c) Microsoft. All rights reserved.

// Package openai is a client for the OpenAI-compatible API exposed by
// OpenAI, Azure OpenAI resources, and Azure AI Foundry projects.
//
// It covers the calls the samples need:
//
//   - Responses ([Client.CreateResponse]), including agent references and
//     MCP approval round trips
//   - Conversations ([Client.CreateConversation], items, deletion)
//   - Files ([Client.UploadFile])
//   - Chat Completions with image input ([Client.ChatCompletion])
//   - Image generation ([Client.GenerateImage])
//
// # Configuration
//
// Use functional options to configure the client:
//
//   - [WithBaseURL]: the API root, e.g. https://<resource>.openai.azure.com/openai
//   - [WithAPIVersion]: api-version query parameter for Azure endpoints
//   - [WithAzureCredential]: Entra ID token auth
//   - [WithAzureKeyHeader]: send the key as api-key instead of a bearer token
//   - [WithAzureDeployments]: route chat and image calls via /deployments/{model}
//   - [WithHTTPClient], [WithHeaders], [WithMiddleware], [WithLogger]
//
// # Testing
//
// Provide a mock http.Client via [WithHTTPClient] with a custom
// RoundTripper.
package openai
