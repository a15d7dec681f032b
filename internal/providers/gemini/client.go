package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"listingcopy/internal/domain"
	"listingcopy/internal/infra"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"

	credentialSetting = "GEMINI_API_KEY"
)

// CredentialSource resolves the API key for each call so that a key rotated in
// the process environment is picked up without a restart.
type CredentialSource interface {
	GeminiAPIKey(ctx context.Context) (string, error)
}

// Options controls how the Gemini client is configured.
type Options struct {
	Credentials CredentialSource
	BaseURL     string
	Model       string
	HTTPClient  *http.Client
	Logger      *infra.Logger
}

// Client sends one composed listing prompt to Gemini generateContent and
// returns the first candidate's text. It holds no per-call state and is safe
// for concurrent use.
type Client struct {
	credentials CredentialSource
	baseURL     string
	model       string
	httpClient  *http.Client
	logger      *infra.Logger
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenerateContentRequest struct {
	Contents []geminiContent `json:"contents"`
}

// Response parts use a pointer so a missing text field can be told apart from
// an empty one.
type geminiResponsePart struct {
	Text *string `json:"text"`
}

type geminiCandidate struct {
	Content *struct {
		Parts []geminiResponsePart `json:"parts"`
	} `json:"content"`
	FinishReason string `json:"finishReason,omitempty"`
}

type geminiGenerateContentResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
		Status  string `json:"status,omitempty"`
	} `json:"error"`
}

// NewClient constructs a Gemini client. A nil HTTP client is replaced with one
// that keeps the transport defaults; no timeout is imposed beyond the caller's
// context.
func NewClient(opts Options) (*Client, error) {
	if opts.Credentials == nil {
		return nil, errors.New("gemini: credential source is required")
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}

	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}

	return &Client{
		credentials: opts.Credentials,
		baseURL:     baseURL,
		model:       model,
		httpClient:  client,
		logger:      logger,
	}, nil
}

// Model returns the configured Gemini model identifier.
func (c *Client) Model() string {
	return c.model
}

// Generate performs exactly one generateContent call for req. Errors are
// *domain.ConfigurationError, *domain.UpstreamError or
// *domain.MalformedResponseError; none are retried.
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	apiKey, err := c.credentials.GeminiAPIKey(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve gemini credential: %w", err)
	}
	if strings.TrimSpace(apiKey) == "" {
		return "", &domain.ConfigurationError{Setting: credentialSetting}
	}

	body, err := json.Marshal(buildPayload(req))
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("model", c.model).
			Msg("gemini: request failed")
		return "", &domain.UpstreamError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.UpstreamError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		event := c.logger.Error().
			Int("status", resp.StatusCode).
			Str("model", c.model).
			Str("body", string(raw))
		var apiErr geminiErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			event = event.Str("upstream_message", apiErr.Error.Message)
		}
		event.Msg("gemini: non-success status")
		return "", &domain.UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out geminiGenerateContentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		c.logger.Error().Err(err).Str("body", string(raw)).Msg("gemini: undecodable response")
		return "", &domain.MalformedResponseError{Reason: "decode body: " + err.Error(), Body: string(raw)}
	}
	text, reason := firstCandidateText(out)
	if reason != "" {
		c.logger.Error().Str("reason", reason).Str("body", string(raw)).Msg("gemini: unexpected response shape")
		return "", &domain.MalformedResponseError{Reason: reason, Body: string(raw)}
	}

	c.logger.Debug().
		Str("model", c.model).
		Int("images", len(req.Images)).
		Int("chars", len(text)).
		Msg("gemini: description generated")
	return text, nil
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
}

func buildPayload(req domain.GenerationRequest) geminiGenerateContentRequest {
	parts := make([]geminiPart, 0, len(req.Images)+1)
	parts = append(parts, geminiPart{Text: req.Prompt})
	for _, img := range req.Images {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: img.MIMEType,
			Data:     base64.StdEncoding.EncodeToString(img.Data),
		}})
	}
	return geminiGenerateContentRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
	}
}

// firstCandidateText reads candidates[0].content.parts[0].text. A non-empty
// reason means the shape was not as expected.
func firstCandidateText(resp geminiGenerateContentResponse) (string, string) {
	if len(resp.Candidates) == 0 {
		return "", "no candidates"
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", "first candidate has no content parts"
	}
	if content.Parts[0].Text == nil {
		return "", "first content part has no text"
	}
	return *content.Parts[0].Text, ""
}
