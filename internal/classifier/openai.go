package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"

	"ticket-monitor-go/internal/config"
)

// urgencyPrompt is the fixed instruction sent ahead of the ticket text.
const urgencyPrompt = "You are an assistant that classifies whether a customer support ticket is urgent.\n" +
	"Reply with only `true` if the message is urgent (e.g. broken, down, critical, high priority), " +
	"or `false` otherwise. Understand the tone of the customer to identify whether it is urgent or not.\n\n" +
	"Ticket message:\n%s\n\nIs this urgent?"

// UrgencyClassifier decides whether ticket text describes an urgent issue
type UrgencyClassifier interface {
	Classify(ctx context.Context, text string) (bool, error)
}

// OpenAIClassifier implements UrgencyClassifier using the OpenAI chat API
type OpenAIClassifier struct {
	client    openai.Client
	model     string
	maxTokens int
}

// NewOpenAIClassifier creates a new OpenAI-backed classifier
func NewOpenAIClassifier(cfg *config.ClassifierConfig) *OpenAIClassifier {
	model := cfg.Model
	if model == "" {
		model = "gpt-4.1-nano"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 5
	}
	return &OpenAIClassifier{
		client:    openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Classify sends the ticket text to the model with deterministic sampling
// and a short output budget, and maps the reply to a boolean. Any reply
// that does not contain the token "true" means not urgent.
func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (bool, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(fmt.Sprintf(urgencyPrompt, text)),
		},
		Temperature:         openai.Float(0),
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		return false, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return false, fmt.Errorf("no choices in response")
	}

	reply := resp.Choices[0].Message.Content
	logrus.Debugf("Classifier reply: %s", reply)

	return IsUrgentReply(reply), nil
}

// IsUrgentReply maps a raw model reply to the urgency boolean. The literal
// token "true" anywhere in the lower-cased reply means urgent; anything
// else, including empty or malformed replies, means not urgent.
func IsUrgentReply(reply string) bool {
	return strings.Contains(strings.ToLower(strings.TrimSpace(reply)), "true")
}
