package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/niksmo/shop-fusion/internal/core/domain"
	"github.com/niksmo/shop-fusion/internal/core/port"
	"github.com/niksmo/shop-fusion/pkg/retry"
	"google.golang.org/genai"
)

const (
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "imagen-3.0-generate-001"

	retryDelay = 200 * time.Millisecond
)

const (
	descriptionNoKey   = "API Key missing. Please set your API Key to use AI features."
	descriptionEmpty   = "No description generated."
	descriptionFailure = "Failed to generate description."

	adviceNoKey   = "I can't provide advice without an API key. Please check your configuration."
	adviceEmpty   = "I'm having trouble finding the perfect match right now."
	adviceFailure = "Sorry, I'm currently offline. Please try again later."
)

var _ port.Advisor = (*Advisor)(nil)

var errNoImage = errors.New("no image in response")

type Config struct {
	APIKey      string
	TextModel   string
	ImageModel  string
	MaxAttempts int
}

// Generator is the subset of the generative API the advisor calls.
type Generator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
	GenerateImage(ctx context.Context, model, prompt string) ([]byte, error)
}

type genaiGenerator struct {
	cl *genai.Client
}

func (g genaiGenerator) GenerateText(
	ctx context.Context, model, prompt string,
) (string, error) {
	resp, err := g.cl.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (g genaiGenerator) GenerateImage(
	ctx context.Context, model, prompt string,
) ([]byte, error) {
	resp, err := g.cl.Models.GenerateImages(ctx, model, prompt,
		&genai.GenerateImagesConfig{
			NumberOfImages: 1,
			AspectRatio:    "1:1",
			OutputMIMEType: "image/jpeg",
		},
	)
	if err != nil {
		return nil, err
	}
	if len(resp.GeneratedImages) == 0 {
		return nil, errNoImage
	}
	img := resp.GeneratedImages[0].Image
	if img == nil || len(img.ImageBytes) == 0 {
		return nil, errNoImage
	}
	return img.ImageBytes, nil
}

// Advisor is a fail-open client of the Gemini API. Without an API key it
// answers every call with a fallback and never reaches the network.
type Advisor struct {
	gen      Generator
	cfg      Config
	retryCfg retry.RetryConfig
}

func New(ctx context.Context, cfg Config) (*Advisor, error) {
	const op = "gemini.New"
	log := slog.With("op", op)

	if cfg.APIKey == "" {
		log.Warn("api key is not set, advisory features are disabled")
		return NewWithGenerator(cfg, nil), nil
	}

	cl, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("advisory client is created",
		"textModel", cfg.TextModel, "imageModel", cfg.ImageModel)
	return NewWithGenerator(cfg, genaiGenerator{cl}), nil
}

// NewWithGenerator builds an advisor over gen. A nil gen or an empty API
// key leaves the advisor unconfigured.
func NewWithGenerator(cfg Config, gen Generator) *Advisor {
	if cfg.TextModel == "" {
		cfg.TextModel = DefaultTextModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultImageModel
	}
	if cfg.APIKey == "" {
		gen = nil
	}
	return &Advisor{
		gen: gen,
		cfg: cfg,
		retryCfg: retry.RetryConfig{
			MaxAttempts: cfg.MaxAttempts,
			Backoff:     retry.ExponentialBackoff(retryDelay),
			ShouldRetry: isTransient,
		},
	}
}

func (a *Advisor) configured() bool {
	return a.gen != nil
}

func (a *Advisor) GenerateDescription(
	ctx context.Context, name, category string,
) string {
	const op = "Advisor.GenerateDescription"
	log := slog.With("op", op)

	if !a.configured() {
		return descriptionNoKey
	}

	text, err := retry.DoWithResult(ctx, a.retryCfg, func() (string, error) {
		return a.gen.GenerateText(ctx, a.cfg.TextModel, descriptionPrompt(name, category))
	})
	if err != nil {
		log.Error("failed to generate description", "err", err)
		return descriptionFailure
	}
	if strings.TrimSpace(text) == "" {
		return descriptionEmpty
	}
	return text
}

func (a *Advisor) GenerateImage(ctx context.Context, prompt string) (string, bool) {
	const op = "Advisor.GenerateImage"
	log := slog.With("op", op)

	if !a.configured() {
		log.Error("api key missing")
		return "", false
	}

	b, err := retry.DoWithResult(ctx, a.retryCfg, func() ([]byte, error) {
		return a.gen.GenerateImage(ctx, a.cfg.ImageModel, imagePrompt(prompt))
	})
	if err != nil {
		log.Error("failed to generate image", "err", err)
		return "", false
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(b), true
}

func (a *Advisor) GetAdvice(
	ctx context.Context, query string, catalog []domain.Product,
) string {
	const op = "Advisor.GetAdvice"
	log := slog.With("op", op)

	if !a.configured() {
		return adviceNoKey
	}

	prompt := advicePrompt(query, catalog)
	text, err := retry.DoWithResult(ctx, a.retryCfg, func() (string, error) {
		return a.gen.GenerateText(ctx, a.cfg.TextModel, prompt)
	})
	if err != nil {
		log.Error("failed to get stylist advice", "err", err)
		return adviceFailure
	}
	if strings.TrimSpace(text) == "" {
		return adviceEmpty
	}
	return text
}

// isTransient reports whether err is worth another attempt: rate limiting
// and server side failures.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests ||
			apiErr.Code >= http.StatusInternalServerError
	}
	return false
}
