package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Evicter drops expired entries and reports how many were removed.
type Evicter interface {
	EvictExpired() int
}

// Janitor periodically evicts expired upstream cache entries.
type Janitor struct {
	evicter      Evicter
	interval     time.Duration
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	startOnce    sync.Once
	shutdownOnce sync.Once
}

func NewJanitor(evicter Evicter, interval time.Duration) *Janitor {
	ctx, cancel := context.WithCancel(context.Background())

	return &Janitor{
		evicter:  evicter,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (j *Janitor) Start() {
	j.startOnce.Do(func() {
		log.Info().
			Dur("interval", j.interval).
			Msg("Starting cache janitor")

		j.wg.Add(1)
		go j.run()
	})
}

func (j *Janitor) run() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.ctx.Done():
			log.Debug().Msg("Cache janitor shutting down")
			return

		case <-ticker.C:
			if removed := j.evicter.EvictExpired(); removed > 0 {
				log.Debug().
					Int("removed", removed).
					Msg("Evicted expired cache entries")
			}
		}
	}
}

func (j *Janitor) Shutdown(timeout time.Duration) error {
	var shutdownErr error

	j.shutdownOnce.Do(func() {
		log.Info().Msg("Shutting down cache janitor")

		j.cancel()

		done := make(chan struct{})
		go func() {
			j.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(timeout):
			log.Warn().Msg("Cache janitor shutdown timeout")
			shutdownErr = context.DeadlineExceeded
		}
	})

	return shutdownErr
}
