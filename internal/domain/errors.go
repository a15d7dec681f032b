package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failed generation for callers and end users.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindConfiguration     ErrorKind = "configuration"
	KindUpstream          ErrorKind = "upstream"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindInternal          ErrorKind = "internal"
)

// ValidationError reports required listing facts that were left blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required listing facts: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Kind() ErrorKind { return KindValidation }

// ConfigurationError reports a setting that must be present before any call.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Setting)
}

func (e *ConfigurationError) Kind() ErrorKind { return KindConfiguration }

// UpstreamError is a non-success answer from the generation service, or a
// transport failure (StatusCode 0). Body is for logs only.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("generation service unreachable: %v", e.Err)
	}
	return fmt.Sprintf("generation service status %d", e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Kind() ErrorKind { return KindUpstream }

// MalformedResponseError is a success status whose body has no candidate text.
type MalformedResponseError struct {
	Reason string
	Body   string
}

func (e *MalformedResponseError) Error() string {
	return "malformed generation response: " + e.Reason
}

func (e *MalformedResponseError) Kind() ErrorKind { return KindMalformedResponse }

// KindOf classifies err. Unknown errors are KindInternal.
func KindOf(err error) ErrorKind {
	var kinded interface{ Kind() ErrorKind }
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	return KindInternal
}

var userMessages = map[string]map[ErrorKind]string{
	"ko": {
		KindValidation:    "평수, 가격, 위치를 모두 입력해주세요!",
		KindConfiguration: "GEMINI_API_KEY가 설정되지 않았습니다.",
		KindUpstream:      "Gemini API 오류가 발생했습니다.",
		KindInternal:      "AI 생성 중 오류가 발생했습니다.",
	},
	"en": {
		KindValidation:    "Please fill in area, price and location.",
		KindConfiguration: "GEMINI_API_KEY is not configured.",
		KindUpstream:      "The generation service returned an error.",
		KindInternal:      "Something went wrong while generating the description.",
	},
}

// UserMessage returns the end-user text for kind. Upstream and malformed
// responses share one message; the difference only matters in logs.
func UserMessage(kind ErrorKind, locale string) string {
	messages, ok := userMessages[locale]
	if !ok {
		messages = userMessages["ko"]
	}
	if kind == KindMalformedResponse {
		kind = KindUpstream
	}
	if msg, ok := messages[kind]; ok {
		return msg
	}
	return messages[KindInternal]
}

// NewResult folds the outcome of one generation into a GenerationResult.
func NewResult(description string, err error, locale string) GenerationResult {
	if err == nil {
		return GenerationResult{Description: description}
	}
	kind := KindOf(err)
	return GenerationResult{ErrorKind: kind, Message: UserMessage(kind, locale)}
}
