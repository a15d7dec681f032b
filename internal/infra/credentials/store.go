package credentials

import (
	"context"
	"os"
	"strings"
)

const (
	GeminiAPIKeyEnv = "GEMINI_API_KEY"
)

// LookupFunc mirrors os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Store resolves provider credentials from the process environment each time
// they are requested, so nothing is cached between calls.
type Store struct {
	lookup LookupFunc
}

// NewStore returns a Store backed by os.LookupEnv.
func NewStore() *Store {
	return &Store{lookup: os.LookupEnv}
}

// NewStoreWithLookup returns a Store that reads through lookup.
func NewStoreWithLookup(lookup LookupFunc) *Store {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Store{lookup: lookup}
}

// GeminiAPIKey returns the trimmed GEMINI_API_KEY, or "" when unset.
func (s *Store) GeminiAPIKey(ctx context.Context) (string, error) {
	return s.Token(ctx, GeminiAPIKeyEnv)
}

// Token returns the trimmed value of the named variable.
func (s *Store) Token(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, ok := s.lookup(name)
	if !ok {
		return "", nil
	}
	return strings.TrimSpace(v), nil
}

// Static is a fixed credential, used when a key is passed explicitly on the
// command line.
type Static string

func (s Static) GeminiAPIKey(ctx context.Context) (string, error) {
	return strings.TrimSpace(string(s)), nil
}
