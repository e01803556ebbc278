package marketdata

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// ThrottledEquityProvider serializes requests to an EquityPriceProvider
// through a single FIFO queue with a minimum spacing between outbound calls.
// Concurrent callers share the one queue and each receives its own result;
// ordering is strictly first-in first-out, with no priorities.
type ThrottledEquityProvider struct {
	provider EquityPriceProvider
	requests chan *priceRequest
	limiter  *rate.Limiter
}

type priceRequest struct {
	ctx    context.Context
	symbol string
	done   chan priceResult
}

type priceResult struct {
	quote *Quote
	err   error
}

// NewThrottledEquityProvider wraps provider with a FIFO dispatch queue that
// leaves at least spacing between consecutive provider calls.
func NewThrottledEquityProvider(provider EquityPriceProvider, spacing time.Duration) *ThrottledEquityProvider {
	t := &ThrottledEquityProvider{
		provider: provider,
		requests: make(chan *priceRequest, 64),
		limiter:  rate.NewLimiter(rate.Every(spacing), 1),
	}
	go t.dispatch()
	return t
}

// dispatch drains the queue one request at a time. The single goroutine plus
// the channel give strict FIFO ordering; the limiter enforces the spacing.
func (t *ThrottledEquityProvider) dispatch() {
	for req := range t.requests {
		if err := req.ctx.Err(); err != nil {
			req.done <- priceResult{err: err}
			continue
		}
		if err := t.limiter.Wait(req.ctx); err != nil {
			req.done <- priceResult{err: err}
			continue
		}
		quote, err := t.provider.GetPrice(req.ctx, req.symbol)
		req.done <- priceResult{quote: quote, err: err}
	}
}

// GetPrice enqueues a request and blocks until it is dispatched or ctx is
// cancelled. A cancelled caller simply stops waiting; its slot in the queue
// is consumed and discarded when reached.
func (t *ThrottledEquityProvider) GetPrice(ctx context.Context, symbol string) (*Quote, error) {
	req := &priceRequest{
		ctx:    ctx,
		symbol: symbol,
		done:   make(chan priceResult, 1),
	}

	select {
	case t.requests <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case res := <-req.done:
		return res.quote, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the dispatch goroutine. Pending requests already queued are
// still served.
func (t *ThrottledEquityProvider) Close() {
	close(t.requests)
}
