// Package llm wraps the model vendors the ask server can route to.
package llm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnsupportedVendor is returned for an llm_choice with no configured
// provider.
var ErrUnsupportedVendor = errors.New("unsupported LLM vendor")

const systemPrompt = "You are a career assistant for an individual contributor. " +
	"Answer from the context you are given and say plainly when information is missing. " +
	"Keep answers concise and practical."

// Provider generates a plain-text answer for a single prompt.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
	Ping(ctx context.Context) bool
}

// Registry resolves vendor names case-insensitively.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: map[string]Provider{}}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register adds p under its Name. Nil providers are skipped so optional
// vendors can be passed straight from their constructors.
func (r *Registry) Register(p Provider) {
	if isNil(p) {
		return
	}
	r.providers[normalizeVendor(p.Name())] = p
}

func (r *Registry) Resolve(vendor string) (Provider, error) {
	p, ok := r.providers[normalizeVendor(vendor)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVendor, strings.TrimSpace(vendor))
	}
	return p, nil
}

// Names lists registered vendors in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, p.Name())
	}
	sort.Strings(out)
	return out
}

func (r *Registry) All() []Provider {
	out := make([]Provider, 0, len(r.providers))
	for _, name := range r.Names() {
		out = append(out, r.providers[normalizeVendor(name)])
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.providers)
}

func normalizeVendor(vendor string) string {
	return strings.ToLower(strings.TrimSpace(vendor))
}

func isNil(p Provider) bool {
	switch v := p.(type) {
	case nil:
		return true
	case *OpenAIProvider:
		return v == nil
	case *GeminiProvider:
		return v == nil
	case *AnthropicProvider:
		return v == nil
	case *OllamaProvider:
		return v == nil
	default:
		return false
	}
}
