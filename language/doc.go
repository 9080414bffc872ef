// Copyright (c) Microsoft. All rights reserved.

// Package language calls Azure AI Language: custom question answering
// against a deployed knowledge base, and custom single-label text
// classification as a long-running analyze job.
package language
