package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/yojanasetu/voicebackend/internal/llm"
	"github.com/yojanasetu/voicebackend/internal/vectorstore"
)

// FallbackAnswer is returned when retrieval surfaces nothing relevant.
const FallbackAnswer = "For more details contact on 104/102 helpline numbers."

const systemPrompt = `You are a Knowledge Assistant designed for answering questions specifically from the knowledge base provided to you.

Your task is as follows: give a detailed response for the user query in the user language (e.g., "what are some schemes?" --> "Here is a list of some schemes").

Ensure your response follows these styles and tone:
* Every answer should be in the **same language** as the user query.
* Use direct, everyday language.
* Maintain a personal and friendly tone, aligned with the user's language.
* Provide detailed responses, with **toll free numbers** and website links wherever applicable. Use section headers like "Description", "Eligibility", or for Marathi: "उद्देशः", "अंतर्भूत घटकः".
* If no relevant information is found, reply with: "For more details contact on 104/102 helpline numbers."
* **Remove duplicate information and provide only one consolidated answer.**

Your goal is to help a citizen understand schemes and their eligibility criteria clearly.`

// generator turns retrieved chunks plus the question into a grounded answer.
type generator struct {
	gateway     llm.Gateway
	model       string
	temperature float64
	maxTokens   int
}

func newGenerator(gw llm.Gateway, model string) *generator {
	return &generator{
		gateway:     gw,
		model:       model,
		temperature: 0.05,
		maxTokens:   2500,
	}
}

func (g *generator) Generate(ctx context.Context, question string, results []vectorstore.SearchResult, previousContext string) (string, error) {
	if len(results) == 0 {
		return FallbackAnswer, nil
	}

	var b strings.Builder
	if previousContext != "" {
		b.WriteString("Previous conversation context:\n")
		b.WriteString(previousContext)
		b.WriteString("\n\n")
	}
	b.WriteString("Here is the content you will work with:\n\n")
	for i, r := range results {
		fmt.Fprintf(&b, "[%d] %s\n\n", i+1, r.Content)
	}
	fmt.Fprintf(&b, "Question: %s\n\nNow perform the task as instructed above.\n\nAnswer:", question)

	resp, err := g.gateway.Chat(ctx, llm.ChatRequest{
		Model: g.model,
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: b.String()},
		},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	answer := strings.TrimSpace(resp.Content)
	if answer == "" {
		return FallbackAnswer, nil
	}
	return answer, nil
}
