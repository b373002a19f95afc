package classifier

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/SeakMengs/DocCollect/internal/config"
	"github.com/SeakMengs/DocCollect/internal/constant"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

const systemPrompt = "You are an AI document classifier. You will receive a PDF document and a list of possible document categories. " +
	"Decide which category the document belongs to based on its content. " +
	"Return only the ID of the matching category, or 'unclassified' if you cannot determine a match with confidence."

type OpenAIClassifier struct {
	cfg    config.ClassifierConfig
	client openai.Client
	logger *zap.SugaredLogger
}

// BASE_URL may point at any OpenAI compatible endpoint. Retries are off.
func NewOpenAIClassifier(cfg config.ClassifierConfig, logger *zap.SugaredLogger) *OpenAIClassifier {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OPENAI_API_KEY),
		option.WithMaxRetries(0),
	}
	if cfg.BASE_URL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BASE_URL))
	}

	return &OpenAIClassifier{
		cfg:    cfg,
		client: openai.NewClient(opts...),
		logger: logger,
	}
}

func candidatesText(candidates []Candidate) string {
	parts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		parts = append(parts, fmt.Sprintf("ID: %s\nTitle: %s\nDescription: %s", c.ID, c.Title, c.Description))
	}
	return strings.Join(parts, "\n\n")
}

func buildChatParams(model string, doc Document, candidates []Candidate) openai.ChatCompletionNewParams {
	userText := fmt.Sprintf("Please classify this PDF document into one of these categories:\n\n%s\n\n"+
		"Which category does this document most likely belong to? Reply ONLY with the ID of the matching category, or \"unclassified\" if you cannot determine a match.",
		candidatesText(candidates))

	fileData := fmt.Sprintf("data:%s;base64,%s", constant.PdfContentType, base64.StdEncoding.EncodeToString(doc.Content))

	return openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Temperature: openai.Float(0),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(userText),
				openai.FileContentPart(openai.ChatCompletionContentPartFileFileParam{
					Filename: openai.String(doc.Filename),
					FileData: openai.String(fileData),
				}),
			}),
		},
	}
}

func (oc OpenAIClassifier) Classify(ctx context.Context, doc Document, candidates []Candidate) (Result, error) {
	if oc.cfg.OPENAI_API_KEY == "" {
		return Unclassified(), ErrNotConfigured
	}
	if len(candidates) == 0 {
		return Unclassified(), nil
	}

	if oc.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, oc.cfg.Timeout)
		defer cancel()
	}

	oc.logger.Debugf("Classify %s against %d candidates with model %s", doc.Filename, len(candidates), oc.cfg.MODEL)

	completion, err := oc.client.Chat.Completions.New(ctx, buildChatParams(oc.cfg.MODEL, doc, candidates))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return Unclassified(), fmt.Errorf("chat completion returned status %d: %w", apiErr.StatusCode, err)
		}
		return Unclassified(), fmt.Errorf("chat completion request: %w", err)
	}

	if len(completion.Choices) == 0 {
		return Unclassified(), fmt.Errorf("chat completion returned no choices")
	}

	raw := completion.Choices[0].Message.Content
	result := Normalize(raw, candidates)
	if result.ItemID == nil && !strings.EqualFold(strings.TrimSpace(raw), UnclassifiedAnswer) {
		oc.logger.Infof("Classifier answered %q which is not a candidate, marking %s as unclassified", raw, doc.Filename)
	}

	return result, nil
}
