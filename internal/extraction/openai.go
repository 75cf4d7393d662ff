package extraction

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
	DefaultBaseURL     = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel       = "gemini-2.5-flash"
	DefaultVisionModel = "gemini-2.0-flash"
)

const extractPrompt = "You will be given raw automobile insurance claim text. " +
	"Extract and return ONLY a JSON object with EXACT keys: " +
	"AccidentArea_Rural, AccidentArea_Urban, Sex, MaritalStatus_Married, MaritalStatus_Single, " +
	"AgeOfVehicle, Deductible, AgeOfPolicyHolder, PoliceReportFiled, WitnessPresent, AgentType, " +
	"BasePolicy_AllPerils, BasePolicy_Collision, BasePolicy_Liability. " +
	"Values must be integers. Binary one-hot pairs must be consistent (e.g., Rural vs Urban). " +
	"No extra text."

const describePrompt = "Describe this image in detail, focusing on insurance-related damages, " +
	"items, or incidents. Include all visible details."

// Config configures the OpenAI-compatible client.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	VisionModel string
	// RatePerSecond limits model calls. Zero disables the limit.
	RatePerSecond float64
	Burst         int
	// CacheTTL keeps extraction results per input text. Zero disables the cache.
	CacheTTL time.Duration
}

// Client implements Extractor and Describer against a chat completions API.
type Client struct {
	client      *openai.Client
	model       string
	visionModel string
	limiter     *rate.Limiter
	cache       *gocache.Cache
}

// NewClient creates a model client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("extraction API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = DefaultBaseURL
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	c := &Client{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		visionModel: cfg.VisionModel,
		limiter:     rate.NewLimiter(rate.Inf, 0),
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.visionModel == "" {
		c.visionModel = DefaultVisionModel
	}
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	if cfg.CacheTTL > 0 {
		c.cache = gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return c, nil
}

// Extract asks the model for the scoring fields found in text.
func (c *Client) Extract(ctx context.Context, text string) (map[string]int, error) {
	key := cacheKey(c.model, text)
	if c.cache != nil {
		if v, found := c.cache.Get(key); found {
			return maps.Clone(v.(map[string]int)), nil
		}
	}

	out, err := c.complete(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, err
	}

	fields, err := ParseFields(out)
	if err != nil {
		return nil, err
	}
	slog.Debug("Extracted claim fields", "model", c.model, "fields", len(fields))

	if c.cache != nil {
		c.cache.SetDefault(key, maps.Clone(fields))
	}
	return fields, nil
}

// Describe asks the vision model for a text description of an image.
func (c *Client) Describe(ctx context.Context, image []byte, mimeType string) (string, error) {
	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)

	out, err := c.complete(ctx, openai.ChatCompletionRequest{
		Model: c.visionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: describePrompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", fmt.Errorf("empty description from %s", c.visionModel)
	}
	return out, nil
}

func (c *Client) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("model API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", req.Model)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func cacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
