package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseToneFallsBackToDefault(t *testing.T) {
	tests := map[string]Tone{
		"professional": ToneProfessional,
		" Friendly ":   ToneFriendly,
		"LUXURY":       ToneLuxury,
		"default":      ToneDefault,
		"normal":       ToneDefault,
		"":             ToneDefault,
		"sarcastic":    ToneDefault,
	}
	for raw, want := range tests {
		if got := ParseTone(raw); got != want {
			t.Fatalf("ParseTone(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestParseLengthFallsBackToNormal(t *testing.T) {
	tests := map[string]LengthHint{
		"short":  LengthShort,
		"LONG":   LengthLong,
		"normal": LengthNormal,
		"":       LengthNormal,
		"epic":   LengthNormal,
	}
	for raw, want := range tests {
		if got := ParseLength(raw); got != want {
			t.Fatalf("ParseLength(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestMissingRequired(t *testing.T) {
	facts := ListingFacts{Area: "25평", Price: "  ", Location: "\t"}
	got := facts.MissingRequired()
	if len(got) != 2 || got[0] != "price" || got[1] != "location" {
		t.Fatalf("MissingRequired = %v, want [price location]", got)
	}
	full := ListingFacts{Area: "25평", Price: "전세 3억", Location: "강남역"}
	if missing := full.MissingRequired(); len(missing) != 0 {
		t.Fatalf("MissingRequired = %v, want none", missing)
	}
}

func TestKindOfUnwrapsWrappedErrors(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{fmt.Errorf("compose: %w", &ValidationError{Fields: []string{"area"}}), KindValidation},
		{&ConfigurationError{Setting: "GEMINI_API_KEY"}, KindConfiguration},
		{fmt.Errorf("call: %w", &UpstreamError{StatusCode: 500}), KindUpstream},
		{&MalformedResponseError{Reason: "no candidates"}, KindMalformedResponse},
		{errors.New("boom"), KindInternal},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Fatalf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestNewResultSharesUpstreamMessage(t *testing.T) {
	upstream := NewResult("", &UpstreamError{StatusCode: 503}, "ko")
	malformed := NewResult("", &MalformedResponseError{Reason: "no candidates"}, "ko")
	if upstream.Message != malformed.Message {
		t.Fatalf("messages differ: %q vs %q", upstream.Message, malformed.Message)
	}
	if malformed.ErrorKind != KindMalformedResponse {
		t.Fatalf("ErrorKind = %q, want %q", malformed.ErrorKind, KindMalformedResponse)
	}

	ok := NewResult("설명문", nil, "ko")
	if !ok.Succeeded() || ok.Description != "설명문" {
		t.Fatalf("unexpected success result: %#v", ok)
	}
}

func TestUserMessageUnknownLocaleUsesKorean(t *testing.T) {
	if got, want := UserMessage(KindValidation, "fr"), UserMessage(KindValidation, "ko"); got != want {
		t.Fatalf("UserMessage fr = %q, want %q", got, want)
	}
}
