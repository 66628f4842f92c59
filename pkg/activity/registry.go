package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/obeli-sk/components-flyio/pkg/log"
	"github.com/obeli-sk/components-flyio/pkg/metrics"
)

// Handler executes one activity. Input is the raw JSON payload the host
// supplies; the returned value is serialized as the activity result.
type Handler func(ctx context.Context, input json.RawMessage) (any, error)

// Result is the envelope an invocation produces. Errors cross the boundary
// as plain strings.
type Result struct {
	InvocationID string          `json:"invocation_id"`
	Activity     string          `json:"activity"`
	Output       json.RawMessage `json:"output,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// Registry maps activity names to handlers and dispatches invocations.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler under a name. Registering the same name twice is
// an error; names are fixed at wiring time.
func (r *Registry) Register(name string, handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("activity '%s' is already registered", name)
	}
	r.handlers[name] = handler
	return nil
}

// MustRegister is Register, panicking on error. Wiring happens at startup
// where a duplicate name is a programming mistake.
func (r *Registry) MustRegister(name string, handler Handler) {
	if err := r.Register(name, handler); err != nil {
		panic(err)
	}
}

// Names returns the registered activity names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke dispatches one invocation. Every invocation gets a fresh uuid, a
// child logger carrying it, and duration/outcome metrics. Handler errors
// come back inside the Result, not as the second return value; that is
// reserved for dispatch failures (unknown activity, unserializable output).
func (r *Registry) Invoke(ctx context.Context, name string, input json.RawMessage) (*Result, error) {
	r.mu.RLock()
	handler, ok := r.handlers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown activity '%s'", name)
	}

	invocationID := uuid.New().String()
	logger := log.WithInvocationID(invocationID).With().Str("activity", name).Logger()

	logger.Debug().Msg("activity invocation started")
	timer := metrics.NewTimer()

	output, err := handler(ctx, input)

	timer.ObserveDuration(metrics.ActivityDuration.WithLabelValues(name))

	result := &Result{
		InvocationID: invocationID,
		Activity:     name,
	}

	if err != nil {
		metrics.ActivityInvocationsTotal.WithLabelValues(name, "error").Inc()
		logger.Error().Err(err).Msg("activity invocation failed")
		result.Error = err.Error()
		return result, nil
	}

	if output != nil {
		encoded, marshalErr := json.Marshal(output)
		if marshalErr != nil {
			return nil, fmt.Errorf("failed to serialize result of activity '%s': %w", name, marshalErr)
		}
		result.Output = encoded
	}

	metrics.ActivityInvocationsTotal.WithLabelValues(name, "success").Inc()
	logger.Info().Msg("activity invocation succeeded")
	return result, nil
}
