// Package resilience provides fault tolerance patterns for calls to external
// services.
//
// The circuitbreaker subpackage wraps sony/gobreaker with presets tuned for
// the translation providers (Claude, OpenAI). A tripped breaker fails fast so
// a slow or dead provider cannot stall every publish.
//
// Usage:
//
//	cb := circuitbreaker.New(circuitbreaker.OpenAIAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callProvider()
//	})
package resilience
