package vision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Model describes one supported vision language model.
type Model struct {
	ID          string
	Description string
}

// SupportedModels is the fixed set the upstream API accepts.
var SupportedModels = []Model{
	{ID: "qwen3-vl-plus", Description: "General scene understanding (default)"},
	{ID: "qwen3-vl-flash", Description: "Faster, lighter responses"},
	{ID: "qwen-vl-ocr-latest", Description: "Text extraction from images"},
}

var (
	ErrUnsupportedModel = errors.New("unsupported model")
	ErrAPIConnection    = errors.New("API connection failed")
)

// Config carries everything one streaming request needs.
type Config struct {
	APIToken string
	BaseURL  string
	Model    string
}

// Client issues streaming vision chat completions.
type Client struct {
	config Config
	client *openai.Client
}

// NewClient validates the configuration and builds the underlying API
// client. A missing token fails here, before any request is opened.
func NewClient(config Config) (*Client, error) {
	if err := ValidateModel(config.Model); err != nil {
		return nil, err
	}
	if config.APIToken == "" {
		return nil, fmt.Errorf("%w: API token required (set via --api-token or the DASHSCOPE_API_KEY environment variable)", ErrAPIConnection)
	}

	clientConfig := openai.DefaultConfig(config.APIToken)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &Client{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

// ValidateModel checks model against the supported set.
func ValidateModel(model string) error {
	ids := make([]string, len(SupportedModels))
	for i, m := range SupportedModels {
		if m.ID == model {
			return nil
		}
		ids[i] = m.ID
	}
	return fmt.Errorf("%w: %s (supported models are: %s)", ErrUnsupportedModel, model, strings.Join(ids, ", "))
}

// Describe opens one streaming chat completion carrying the image and
// the query, and writes each text delta to out as it arrives. The image
// goes first in the message, matching what the OCR models expect.
func (c *Client) Describe(ctx context.Context, dataURI, query string, out io.Writer) error {
	request := openai.ChatCompletionRequest{
		Model:  c.config.Model,
		Stream: true,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURI},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: query,
					},
				},
			},
		},
	}

	stream, err := c.client.CreateChatCompletionStream(ctx, request)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAPIConnection, err)
	}
	defer stream.Close()

	for {
		response, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: stream interrupted: %w", ErrAPIConnection, err)
		}
		if len(response.Choices) == 0 {
			continue
		}
		if content := response.Choices[0].Delta.Content; content != "" {
			if _, err := io.WriteString(out, content); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
	}
}
