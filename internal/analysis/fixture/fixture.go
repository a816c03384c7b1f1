package fixture

import (
	"context"
	"sync/atomic"
)

var lines = []string{
	"Both benches are locked in and every trip down the floor is being contested. The team that wins the rebounding battle from here likely takes this one.",
	"The pace has picked up and the defense is answering every run. Expect the coaches to lean on their best closers as the clock winds down.",
	"Shot selection is the story so far, with good looks coming off ball movement. A couple of stops in a row could swing the momentum for good.",
}

// Provider returns canned commentary for local runs without an API key.
type Provider struct {
	next atomic.Uint64
}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// Generate returns the next canned line, cycling in order.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_ = prompt
	i := p.next.Add(1) - 1
	return lines[i%uint64(len(lines))], nil
}
