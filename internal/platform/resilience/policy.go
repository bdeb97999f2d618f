package resilience

import (
	"context"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
)

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = circuitbreaker.ErrOpen

type CircuitState string

const (
	CircuitStateDisabled CircuitState = "disabled"
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// FailureFunc reports whether a call outcome counts as a dependency failure.
// Only failures are retried and recorded by the breaker.
type FailureFunc[R any] func(result R, err error) bool

// Policy guards calls to one remote dependency with retries wrapped around
// a circuit breaker.
type Policy[R any] struct {
	name     string
	executor failsafe.Executor[R]
	breaker  circuitbreaker.CircuitBreaker[R]
}

func NewPolicy[R any](
	name string,
	breakerCfg CircuitBreakerConfig,
	retryCfg RetryConfig,
	isFailure FailureFunc[R],
	logger *logging.Logger,
) *Policy[R] {
	if logger == nil {
		logger = logging.Default()
	}
	if isFailure == nil {
		isFailure = func(_ R, err error) bool { return err != nil }
	}

	p := &Policy[R]{name: name}
	policies := make([]failsafe.Policy[R], 0, 2)

	retryCfg = NormalizeRetryConfig(retryCfg)
	if retryCfg.MaxRetries > 0 {
		policies = append(policies, retrypolicy.NewBuilder[R]().
			HandleIf(func(result R, err error) bool {
				return isFailure(result, err)
			}).
			WithMaxRetries(retryCfg.MaxRetries).
			WithBackoff(retryCfg.BaseDelay, retryCfg.MaxDelay).
			WithJitterFactor(0.1).
			ReturnLastFailure().
			Build())
	}

	if breakerCfg.Enabled {
		breakerCfg = NormalizeCircuitBreakerConfig(breakerCfg)
		p.breaker = circuitbreaker.NewBuilder[R]().
			HandleIf(func(result R, err error) bool {
				return isFailure(result, err)
			}).
			WithFailureThreshold(uint(breakerCfg.FailureThreshold)).
			WithDelay(breakerCfg.OpenTimeout).
			WithSuccessThreshold(uint(breakerCfg.HalfOpenMaxReq)).
			OnStateChanged(func(event circuitbreaker.StateChangedEvent) {
				logger.Warn("circuit breaker state change",
					"dependency", name,
					"from_state", string(convertState(event.OldState)),
					"to_state", string(convertState(event.NewState)),
				)
			}).
			Build()
		policies = append(policies, p.breaker)
	}

	if len(policies) > 0 {
		p.executor = failsafe.With(policies...)
	}
	return p
}

// Get runs fn through the configured policies.
func (p *Policy[R]) Get(ctx context.Context, fn func(ctx context.Context) (R, error)) (R, error) {
	if p == nil || p.executor == nil {
		return fn(ctx)
	}
	return p.executor.WithContext(ctx).Get(func() (R, error) {
		return fn(ctx)
	})
}

func (p *Policy[R]) State() CircuitState {
	if p == nil || p.breaker == nil {
		return CircuitStateDisabled
	}
	return convertState(p.breaker.State())
}

func (p *Policy[R]) Name() string {
	if p == nil {
		return ""
	}
	return p.name
}

func convertState(state circuitbreaker.State) CircuitState {
	switch state {
	case circuitbreaker.OpenState:
		return CircuitStateOpen
	case circuitbreaker.HalfOpenState:
		return CircuitStateHalfOpen
	default:
		return CircuitStateClosed
	}
}
