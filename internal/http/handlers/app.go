package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"listingcopy/internal/copywriter"
	"listingcopy/internal/infra"
	"listingcopy/internal/middleware"
)

// Copywriter produces one listing description per call.
type Copywriter interface {
	Generate(ctx context.Context, in copywriter.Input) (string, error)
}

type App struct {
	Copywriter     Copywriter
	Logger         *infra.Logger
	MaxImages      int
	MaxUploadBytes int64
	Model          string
	Now            func() time.Time
}

func NewApp(cw Copywriter, cfg *infra.Config, logger *infra.Logger) *App {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &App{
		Copywriter:     cw,
		Logger:         logger,
		MaxImages:      cfg.MaxUploadImages,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Model:          cfg.GeminiModel,
		Now:            time.Now,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse carries the request ID so a user report can be matched to the
// server log line.
type errorResponse struct {
	ErrorKind string   `json:"error_kind"`
	Error     string   `json:"error"`
	Details   []string `json:"details,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

// error writes a request-level failure. The message is looked up in the
// caller's locale.
func (a *App) error(w http.ResponseWriter, r *http.Request, code int, kind string, details ...string) {
	msg := requestMessage(kind, middleware.LocaleFromContext(r.Context()))
	if kind == kindTooManyImages {
		msg = fmt.Sprintf(msg, a.MaxImages)
	}
	a.json(w, code, errorResponse{
		ErrorKind: kind,
		Error:     msg,
		Details:   details,
		RequestID: middleware.RequestIDFromContext(r.Context()),
	})
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

const (
	kindBadRequest       = "bad_request"
	kindTooManyImages    = "too_many_images"
	kindUnsupportedImage = "unsupported_image"
	kindPayloadTooLarge  = "payload_too_large"
)

var requestMessages = map[string]map[string]string{
	"ko": {
		kindBadRequest:       "요청 형식이 올바르지 않습니다.",
		kindTooManyImages:    "사진은 최대 %d장까지 첨부할 수 있습니다.",
		kindUnsupportedImage: "이미지 파일만 첨부할 수 있습니다.",
		kindPayloadTooLarge:  "첨부 파일 용량이 너무 큽니다.",
	},
	"en": {
		kindBadRequest:       "The request is not valid.",
		kindTooManyImages:    "You can attach up to %d photos.",
		kindUnsupportedImage: "Only image files can be attached.",
		kindPayloadTooLarge:  "The attachments are too large.",
	},
}

func requestMessage(kind, locale string) string {
	messages, ok := requestMessages[locale]
	if !ok {
		messages = requestMessages["ko"]
	}
	if msg, ok := messages[kind]; ok {
		return msg
	}
	return messages[kindBadRequest]
}
