// Package ai talks to the OpenAI API: Whisper for audio transcription and a
// chat model for structured complaint classification. All output from the
// model is treated as untrusted input and clamped to the closed vocabularies
// before it reaches the rest of the system.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"sauti/backend/internal/config"
	"sauti/backend/internal/logger"
	"sauti/backend/internal/models"
)

// Analysis is the validated classification of one complaint text. Every field
// is already clamped to its legal vocabulary.
type Analysis struct {
	Summary   string `json:"summary"`
	Category  string `json:"category"`
	Urgency   string `json:"urgency"`
	County    string `json:"county"`
	Sentiment string `json:"sentiment"`
}

// Client is the contract the enrichment pipeline expects from the AI provider.
type Client interface {
	Transcribe(ctx context.Context, audioPath, language string) (string, error)
	Analyze(ctx context.Context, text string) (*Analysis, error)
}

// OpenAIClient implements Client against the OpenAI HTTP API.
type OpenAIClient struct {
	baseURL         string
	apiKey          string
	transcribeModel string
	analysisModel   string
	httpClient      *http.Client
	log             *logrus.Entry
}

// NewOpenAIClient builds a client from the environment. A missing
// OPENAI_API_KEY is a *ConfigurationError: the caller must not attempt any
// per-item work in that case.
func NewOpenAIClient(log *logger.Logger) (*OpenAIClient, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, &ConfigurationError{Missing: "OPENAI_API_KEY"}
	}

	baseURL := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	transcribeModel := os.Getenv("OPENAI_TRANSCRIBE_MODEL")
	if transcribeModel == "" {
		transcribeModel = config.DefaultTranscribeModel
	}
	analysisModel := os.Getenv("OPENAI_ANALYSIS_MODEL")
	if analysisModel == "" {
		analysisModel = config.DefaultAnalysisModel
	}

	return &OpenAIClient{
		baseURL:         baseURL,
		apiKey:          apiKey,
		transcribeModel: transcribeModel,
		analysisModel:   analysisModel,
		httpClient:      &http.Client{Timeout: config.AITimeout},
		log:             log.WithComponent("ai"),
	}, nil
}

type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

// doWithRetry posts the request body and decodes the JSON response into out,
// retrying server errors and transport failures with exponential backoff.
// Client errors (4xx) are permanent.
func (c *OpenAIClient) doWithRetry(ctx context.Context, path, contentType string, body []byte, out interface{}) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = config.AITimeout

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", contentType)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode >= 500 {
			return &httpError{StatusCode: resp.StatusCode, Body: string(raw)}
		}
		if resp.StatusCode >= 300 {
			return backoff.Permanent(&httpError{StatusCode: resp.StatusCode, Body: string(raw)})
		}

		if err := json.Unmarshal(raw, out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
		return nil
	}

	return backoff.Retry(operation, backoff.WithContext(bo, ctx))
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe converts the audio file at audioPath to text in the given source
// language ("en" by default, "sw" for Swahili submissions). It never touches
// the complaint record; failures are wrapped in *TranscriptionError and the
// caller decides whether they are fatal.
func (c *OpenAIClient) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	if audioPath == "" {
		return "", &TranscriptionError{Path: audioPath, Err: errors.New("no audio file provided")}
	}
	if language == "" {
		language = config.DefaultAudioLanguage
	}

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return "", &TranscriptionError{Path: audioPath, Err: err}
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("model", c.transcribeModel)
	_ = w.WriteField("language", language)
	part, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", &TranscriptionError{Path: audioPath, Err: err}
	}
	if _, err := part.Write(audio); err != nil {
		return "", &TranscriptionError{Path: audioPath, Err: err}
	}
	if err := w.Close(); err != nil {
		return "", &TranscriptionError{Path: audioPath, Err: err}
	}

	var resp transcriptionResponse
	if err := c.doWithRetry(ctx, "/v1/audio/transcriptions", w.FormDataContentType(), buf.Bytes(), &resp); err != nil {
		c.log.WithField("path", audioPath).WithError(err).Warn("transcription request failed")
		return "", &TranscriptionError{Path: audioPath, Err: err}
	}

	return strings.TrimSpace(resp.Text), nil
}

const analysisSystemPrompt = "You are an AI assistant that analyzes civic complaints from Kenyan citizens. " +
	"You extract key information and provide structured analysis."

func analysisPrompt(text string) string {
	return fmt.Sprintf(`Analyze this complaint from a Kenyan citizen and extract the following information:

Complaint text: %s

Please provide your analysis in the following JSON format:
{
    "summary": "A clear 2-3 sentence summary of the complaint",
    "category": "one of: corruption, delay, bribery, misconduct, lost_documents, infrastructure_damage, other",
    "urgency": "one of: low, medium, high, critical",
    "county": "The Kenyan county mentioned (or 'Unknown' if not specified)",
    "sentiment": "negative, neutral, or positive"
}

Guidelines:
- Summary should be professional and concise
- Category should best match the nature of the complaint
- Urgency should reflect the severity and time-sensitivity
- County should be a valid Kenyan county name
- Sentiment should reflect the emotional tone

Respond ONLY with the JSON object, no additional text.`, text)
}

type chatCompletionRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	Temperature    float64           `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze classifies complaint text. The returned Analysis is always valid:
// category, urgency and sentiment are clamped to their closed sets and county
// is resolved against the canonical list. Remote failures come back as
// *AnalysisServiceError, unparseable output as *AnalysisParseError.
func (c *OpenAIClient) Analyze(ctx context.Context, text string) (*Analysis, error) {
	reqBody, err := json.Marshal(chatCompletionRequest{
		Model: c.analysisModel,
		Messages: []chatMessage{
			{Role: "system", Content: analysisSystemPrompt},
			{Role: "user", Content: analysisPrompt(text)},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.3,
	})
	if err != nil {
		return nil, &AnalysisServiceError{Err: err}
	}

	var resp chatCompletionResponse
	if err := c.doWithRetry(ctx, "/v1/chat/completions", "application/json", reqBody, &resp); err != nil {
		var he *httpError
		if errors.As(err, &he) {
			return nil, &AnalysisServiceError{StatusCode: he.StatusCode, Err: err}
		}
		return nil, &AnalysisServiceError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &AnalysisParseError{Err: errors.New("no choices in response")}
	}

	return ParseAnalysis(resp.Choices[0].Message.Content)
}

// ParseAnalysis decodes the model output into an Analysis and clamps every
// field. Providers that ignore the JSON-object response mode may wrap the
// object in prose, so the first JSON-looking substring is extracted before
// parsing.
func ParseAnalysis(content string) (*Analysis, error) {
	raw := extractJSONObject(content)
	if raw == "" {
		return nil, &AnalysisParseError{Raw: content, Err: errors.New("no JSON object in model output")}
	}

	var a Analysis
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, &AnalysisParseError{Raw: content, Err: err}
	}

	a.Category = models.ClampCategory(a.Category)
	a.Urgency = models.ClampUrgency(a.Urgency)
	a.Sentiment = models.ClampSentiment(a.Sentiment)
	a.County = MatchCounty(a.County)
	return &a, nil
}

// extractJSONObject returns the first "{...}" span of s, or "" when none.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

var _ Client = (*OpenAIClient)(nil)
