// Copyright (c) Microsoft. All rights reserved.

// Package projects is a client for the agents API of an Azure AI Foundry
// project. It manages prompt agents and their versions, and hands out an
// [openai.Client] bound to the same project for responses and conversations.
//
//	client := projects.NewClient(endpoint, cred)
//	agent, err := client.CreateAgentVersion(ctx, "data-agent", projects.PromptAgentDefinition{
//	    Model:        "gpt-4o",
//	    Instructions: "Analyze the uploaded data.",
//	    Tools:        []projects.Tool{projects.NewCodeInterpreterTool(fileID)},
//	})
package projects
