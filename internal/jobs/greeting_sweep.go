package jobs

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fuelinnovation/line-autoreply/internal/repository"
)

// GreetingSweepJob bounds the greeting cache: it drops users idle longer
// than idle and trims the cache to maxEntries.
type GreetingSweepJob struct {
	repo       repository.GreetingRepository
	idle       time.Duration
	maxEntries int
	interval   time.Duration
	now        func() time.Time
	done       chan struct{}
	stopOnce   sync.Once
}

func NewGreetingSweepJob(
	repo repository.GreetingRepository,
	idle time.Duration,
	maxEntries int,
	interval time.Duration,
) *GreetingSweepJob {
	return &GreetingSweepJob{
		repo:       repo,
		idle:       idle,
		maxEntries: maxEntries,
		interval:   interval,
		now:        time.Now,
		done:       make(chan struct{}),
	}
}

func (j *GreetingSweepJob) Start() {
	go j.run()
	log.Info().
		Dur("interval", j.interval).
		Dur("idle", j.idle).
		Int("maxEntries", j.maxEntries).
		Msg("greeting sweep job started")
}

func (j *GreetingSweepJob) Stop() {
	j.stopOnce.Do(func() {
		close(j.done)
		log.Info().Msg("greeting sweep job stopped")
	})
}

func (j *GreetingSweepJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *GreetingSweepJob) sweep() int64 {
	var cutoff time.Time
	if j.idle > 0 {
		cutoff = j.now().Add(-j.idle)
	}

	removed := j.repo.DeleteIdle(cutoff, j.maxEntries)
	if removed > 0 {
		log.Info().
			Int64("count", removed).
			Int("remaining", j.repo.Count()).
			Msg("swept greeting cache")
	}
	return removed
}
