package assistantsvc

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/edutrack/backend/core"
)

const geminiModel = "gemini-2.5-flash"

const systemPromptFmt = `You are an AI educational assistant for %s, a smart educational management system.

You help students, teachers, and administrators with:
- Timetable and schedule questions
- Assignment guidance and study help
- Syllabus completion tracking
- Academic planning and organization
- General educational support

Respond in a helpful, educational manner. Keep responses concise but informative.
If asked about specific data (like grades, attendance, assignments), remind users to check their dashboard for real-time information.
Always maintain a supportive, academic tone.`

type geminiService struct {
	client  *genai.Client
	appName string
}

var _ core.AssistantService = (*geminiService)(nil)

func NewGeminiService(ctx context.Context, conf *core.Config) (*geminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(conf.GeminiAPIKey))
	if err != nil {
		return nil, errors.Wrap(err, "creating genai client")
	}
	return &geminiService{client: client, appName: conf.AppName}, nil
}

func (svc *geminiService) Chat(ctx context.Context, message, userContext, additionalContext string) (string, error) {
	model := svc.client.GenerativeModel(geminiModel)

	prompt := fmt.Sprintf(systemPromptFmt, svc.appName)
	prompt += "\n\nCurrent user context: " + userContext
	if additionalContext != "" {
		prompt += "\nAdditional context: " + additionalContext
	}
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(prompt)}}

	res, err := model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return "", errors.Wrap(err, "generating content")
	}
	if reply := concatText(res); reply != "" {
		return reply, nil
	}
	return "I apologize, but I'm having trouble responding right now. Please try again.", nil
}

func (svc *geminiService) Close() error { return svc.client.Close() }

func concatText(res *genai.GenerateContentResponse) string {
	var out string
	for _, cand := range res.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				out += string(txt)
			}
		}
	}
	return out
}
