// Package worker provides write-behind persistence of completed rounds.
package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/vekt0r-github/osu-heardle/internal/core/domain"
	"github.com/vekt0r-github/osu-heardle/internal/core/ports"
)

// Job carries one completed round to the history repository.
type Job struct {
	RoomCode string
	Summary  domain.RoundSummary
}

// Pool persists round summaries in the background so guess handling never
// waits on the database. Appends are idempotent downstream, so a drop under
// pressure loses durability for that round but never corrupts history.
type Pool struct {
	history ports.HistoryRepository
	timeout time.Duration
	jobs    chan Job
	wg      sync.WaitGroup
}

// NewPool creates a worker pool with the given queue size.
func NewPool(history ports.HistoryRepository, queueSize int, timeout time.Duration) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Pool{history: history, timeout: timeout, jobs: make(chan Job, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop waits for queued jobs to drain after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		log.Printf("WARN worker: dropping round %d for room %s", job.Summary.Song.ID, job.RoomCode)
	}
}

func (p *Pool) processJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.history.Append(ctx, job.RoomCode, job.Summary); err != nil {
		log.Printf("WARN worker: failed to save round %d for room %s: %v", job.Summary.Song.ID, job.RoomCode, err)
	}
}
