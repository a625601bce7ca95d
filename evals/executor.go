package evals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prashantgupta17/evaltemplates/llm"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// runAll calls fn for every index in [0, n) with at most o.concurrency calls in flight.
//
// Without continueOnError the first failure cancels the remaining work and is returned.
// With it, failures are collected per index and only a cancelled parent context aborts.
func runAll(ctx context.Context, n int, o *options, fn func(ctx context.Context, i int) error) ([]error, error) {
	errs := make([]error, n)

	if !o.continueOnError {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(o.concurrency)
		for i := 0; i < n; i++ {
			g.Go(func() error {
				return fn(gctx, i)
			})
		}
		return errs, g.Wait()
	}

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := fn(ctx, i); err != nil {
				errs[i] = err
				o.logger.Warn("record failed", zap.Int("record", i), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
	return errs, ctx.Err()
}

// completeWithRetries retries failed calls with exponential backoff.
func completeWithRetries(ctx context.Context, model llm.Model, req llm.Request, o *options) (llm.Response, error) {
	backoff := o.retryBackoff
	var lastErr error
	for attempt := 0; attempt <= o.maxRetries; attempt++ {
		resp, err := model.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			break
		}
		if attempt == o.maxRetries {
			break
		}

		o.logger.Debug("retrying model call",
			zap.String("model", model.Name()),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return llm.Response{}, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return llm.Response{}, fmt.Errorf("model %s: %w", model.Name(), lastErr)
}
