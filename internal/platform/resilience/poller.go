// internal/platform/resilience/poller.go
package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrPollExhausted se retorna cuando se agotan los intentos sin resultado.
var ErrPollExhausted = errors.New("poll attempts exhausted")

// PollState es el estado de la máquina de polling.
//
//	Submitted -> Polling(n) -> Ready | TimedOut | Failed
type PollState int

const (
	PollSubmitted PollState = iota
	PollPolling
	PollReady
	PollTimedOut
	PollFailed
)

// String retorna una representación legible del estado.
func (s PollState) String() string {
	switch s {
	case PollSubmitted:
		return "submitted"
	case PollPolling:
		return "polling"
	case PollReady:
		return "ready"
	case PollTimedOut:
		return "timed_out"
	case PollFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s PollState) Terminal() bool {
	return s == PollReady || s == PollTimedOut || s == PollFailed
}

// PollFunc consulta una vez el recurso remoto. done=true lo marca listo;
// un error no nil termina el polling en Failed.
type PollFunc func(ctx context.Context, attempt int) (done bool, err error)

// SleepFunc duerme d o retorna antes si ctx termina.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Poller espera un resultado remoto con retardo inicial e intervalo fijos,
// acotado por MaxAttempts.
type Poller struct {
	InitialDelay time.Duration
	Interval     time.Duration
	MaxAttempts  int
	Sleep        SleepFunc
}

// PollResult es el estado terminal alcanzado y cuántas consultas se hicieron.
type PollResult struct {
	State    PollState
	Attempts int
	Err      error
}

// NewPoller crea un poller con sleep real.
func NewPoller(initialDelay, interval time.Duration, maxAttempts int) Poller {
	return Poller{
		InitialDelay: initialDelay,
		Interval:     interval,
		MaxAttempts:  maxAttempts,
		Sleep:        SleepContext,
	}
}

// Run ejecuta la máquina de estados hasta un estado terminal.
func (p Poller) Run(ctx context.Context, fn PollFunc) PollResult {
	sleep := p.Sleep
	if sleep == nil {
		sleep = SleepContext
	}
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	res := PollResult{State: PollSubmitted}

	if err := sleep(ctx, p.InitialDelay); err != nil {
		res.State = PollFailed
		res.Err = err
		return res
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		res.State = PollPolling
		res.Attempts = attempt

		done, err := fn(ctx, attempt)
		if err != nil {
			res.State = PollFailed
			res.Err = err
			return res
		}
		if done {
			res.State = PollReady
			return res
		}

		if attempt < maxAttempts {
			if err := sleep(ctx, p.Interval); err != nil {
				res.State = PollFailed
				res.Err = err
				return res
			}
		}
	}

	res.State = PollTimedOut
	res.Err = fmt.Errorf("%w after %d attempts", ErrPollExhausted, maxAttempts)
	return res
}

// Budget es el tiempo máximo que Run puede dormir.
func (p Poller) Budget() time.Duration {
	if p.MaxAttempts <= 1 {
		return p.InitialDelay
	}
	return p.InitialDelay + time.Duration(p.MaxAttempts-1)*p.Interval
}

// SleepContext duerme d respetando la cancelación de ctx.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
