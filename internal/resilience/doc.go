// Package resilience groups the fault tolerance building blocks the page
// fetcher depends on: bounded retry with exponential backoff and a circuit
// breaker around the target site.
//
// Usage:
//
//	cb := circuitbreaker.New(circuitbreaker.PageFetchConfig())
//	err := retry.WithBackoff(ctx, retry.PageFetchConfig(), func() error {
//		_, err := cb.Execute(fetchPage)
//		return err
//	})
package resilience
