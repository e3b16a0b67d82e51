package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errBoom = errors.New("boom")

const testOpenTimeout = 50 * time.Millisecond

func newTestBreaker() *CircuitBreaker {
	return NewCircuitBreaker(BreakerConfig{
		Name:             "test",
		FailureThreshold: 2,
		SuccessThreshold: 2,
		OpenTimeout:      testOpenTimeout,
	})
}

func fail() error { return errBoom }
func ok() error   { return nil }

func TestBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	cb := newTestBreaker()

	assert.ErrorIs(t, cb.Execute(fail), errBoom)
	assert.Equal(t, BreakerClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(fail), errBoom)
	assert.Equal(t, BreakerOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := newTestBreaker()

	_ = cb.Execute(fail)
	assert.NoError(t, cb.Execute(ok))
	_ = cb.Execute(fail)
	assert.Equal(t, BreakerClosed, cb.State())
}

func TestBreaker_HalfOpenRecovery(t *testing.T) {
	cb := newTestBreaker()
	_ = cb.Execute(fail)
	_ = cb.Execute(fail)

	time.Sleep(testOpenTimeout + 20*time.Millisecond)
	assert.Equal(t, BreakerHalfOpen, cb.State())

	assert.NoError(t, cb.Execute(ok))
	assert.Equal(t, BreakerHalfOpen, cb.State())
	assert.NoError(t, cb.Execute(ok))
	assert.Equal(t, BreakerClosed, cb.State())
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := newTestBreaker()
	_ = cb.Execute(fail)
	_ = cb.Execute(fail)

	time.Sleep(testOpenTimeout + 20*time.Millisecond)
	assert.ErrorIs(t, cb.Execute(fail), errBoom)
	assert.Equal(t, BreakerOpen, cb.State())
}

func TestBreaker_Defaults(t *testing.T) {
	cb := NewCircuitBreaker(BreakerConfig{})
	assert.Equal(t, 5, cb.cfg.FailureThreshold)
	assert.Equal(t, 1, cb.cfg.SuccessThreshold)
	assert.Equal(t, 60*time.Second, cb.cfg.OpenTimeout)
	assert.Equal(t, "closed", cb.State().String())

	for i := 0; i < 4; i++ {
		_ = cb.Execute(fail)
	}
	assert.Equal(t, BreakerClosed, cb.State())
	_ = cb.Execute(fail)
	assert.Equal(t, BreakerOpen, cb.State())
}
