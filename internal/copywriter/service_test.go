package copywriter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"listingcopy/internal/domain"
	"listingcopy/internal/infra/credentials"
	"listingcopy/internal/providers/gemini"
)

// upstreamStub records every prompt it receives and answers with a fixed
// status and body.
type upstreamStub struct {
	mu      sync.Mutex
	status  int
	body    string
	prompts []string
}

func (u *upstreamStub) RoundTrip(r *http.Request) (*http.Response, error) {
	var payload struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, err
	}
	u.mu.Lock()
	u.prompts = append(u.prompts, payload.Contents[0].Parts[0].Text)
	u.mu.Unlock()
	return &http.Response{
		StatusCode: u.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(u.body)),
	}, nil
}

func (u *upstreamStub) calls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.prompts)
}

func newService(t *testing.T, key string, stub *upstreamStub) *Service {
	t.Helper()
	client, err := gemini.NewClient(gemini.Options{
		Credentials: credentials.Static(key),
		HTTPClient:  &http.Client{Transport: stub},
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return NewService(client, nil)
}

func gangnamInput() Input {
	return Input{
		Facts:  domain.ListingFacts{Area: "25py", Price: "lease 300M", Location: "Gangnam Station"},
		Tone:   domain.ToneFriendly,
		Length: domain.LengthNormal,
	}
}

func candidateBody(text string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{"parts": []any{map[string]any{"text": text}}},
		}},
	})
	return string(body)
}

func TestGenerateFriendlyGangnamScenario(t *testing.T) {
	const text = "Right by Gangnam Station! ..."
	stub := &upstreamStub{status: http.StatusOK, body: candidateBody(text)}
	svc := newService(t, "secret", stub)

	got, err := svc.Generate(context.Background(), gangnamInput())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	result := domain.NewResult(got, err, "en")
	if result.Description != text {
		t.Fatalf("Description = %q, want %q", result.Description, text)
	}

	if stub.calls() != 1 {
		t.Fatalf("upstream calls = %d, want 1", stub.calls())
	}
	prompt := stub.prompts[0]
	for _, want := range []string{"친근하고 편안한 톤", "25py", "lease 300M", "Gangnam Station"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "첨부된 매물 사진") {
		t.Fatal("prompt contains the image block without images")
	}
}

func TestGenerateWithoutCredentialMakesNoCall(t *testing.T) {
	stub := &upstreamStub{status: http.StatusOK, body: candidateBody("unused")}
	svc := newService(t, "", stub)

	_, err := svc.Generate(context.Background(), gangnamInput())
	if kind := domain.KindOf(err); kind != domain.KindConfiguration {
		t.Fatalf("kind = %q, want %q (err=%v)", kind, domain.KindConfiguration, err)
	}
	if stub.calls() != 0 {
		t.Fatalf("upstream calls = %d, want 0", stub.calls())
	}
}

func TestGenerateValidationNeverReachesUpstream(t *testing.T) {
	stub := &upstreamStub{status: http.StatusOK, body: candidateBody("unused")}
	svc := newService(t, "secret", stub)

	in := gangnamInput()
	in.Facts.Price = "  "
	_, err := svc.Generate(context.Background(), in)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *domain.ValidationError", err)
	}
	if stub.calls() != 0 {
		t.Fatalf("upstream calls = %d, want 0", stub.calls())
	}
}

func TestGenerateUpstreamFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   domain.ErrorKind
	}{
		{"server error", http.StatusInternalServerError, `{"error":{"message":"boom"}}`, domain.KindUpstream},
		{"missing candidates", http.StatusOK, `{"usageMetadata":{}}`, domain.KindMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &upstreamStub{status: tt.status, body: tt.body}
			svc := newService(t, "secret", stub)
			_, err := svc.Generate(context.Background(), gangnamInput())
			if kind := domain.KindOf(err); kind != tt.want {
				t.Fatalf("kind = %q, want %q (err=%v)", kind, tt.want, err)
			}
			result := domain.NewResult("", err, "ko")
			if result.Succeeded() || result.Description != "" {
				t.Fatalf("failure produced a partial result: %#v", result)
			}
		})
	}
}

func TestGenerateTwiceSendsIdenticalPrompts(t *testing.T) {
	stub := &upstreamStub{status: http.StatusOK, body: candidateBody("same")}
	svc := newService(t, "secret", stub)
	in := gangnamInput()
	in.Images = []domain.ImageAttachment{{MIMEType: "image/jpeg", Data: []byte{0xff, 0xd8}}}

	for i := 0; i < 2; i++ {
		if _, err := svc.Generate(context.Background(), in); err != nil {
			t.Fatalf("Generate #%d returned error: %v", i+1, err)
		}
	}
	if stub.calls() != 2 {
		t.Fatalf("upstream calls = %d, want 2", stub.calls())
	}
	if stub.prompts[0] != stub.prompts[1] {
		t.Fatal("identical inputs produced different prompts")
	}
}

func TestGenerateConcurrentCallsAreIndependent(t *testing.T) {
	stub := &upstreamStub{status: http.StatusOK, body: candidateBody("parallel")}
	svc := newService(t, "secret", stub)

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Generate(context.Background(), gangnamInput())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent Generate returned error: %v", err)
		}
	}
	if stub.calls() != 4 {
		t.Fatalf("upstream calls = %d, want 4", stub.calls())
	}
}
