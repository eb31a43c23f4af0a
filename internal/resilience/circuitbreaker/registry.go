package circuitbreaker

import "sync"

// registry tracks every breaker created through New so health checks can
// report upstream state without threading breaker references through the
// whole wiring.
var registry struct {
	mu       sync.Mutex
	breakers []*CircuitBreaker
}

func register(cb *CircuitBreaker) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.breakers = append(registry.breakers, cb)
}

// All returns the breakers created so far, in creation order.
func All() []*CircuitBreaker {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	out := make([]*CircuitBreaker, len(registry.breakers))
	copy(out, registry.breakers)
	return out
}
