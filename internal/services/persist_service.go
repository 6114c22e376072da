package services

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	repository "task-board.com/task-board/internal/repositories"
	model "task-board.com/task-board/pkg/models"
)

type persistJob struct {
	seq      uint64
	snapshot model.Snapshot
}

// PersistService writes snapshots in the background. The queue holds one
// job; a newer snapshot replaces one that has not been picked up yet.
type PersistService struct {
	queue chan persistJob
	wg    sync.WaitGroup
	repo  repository.SnapshotRepository

	mu        sync.Mutex
	closed    bool
	submitted uint64
	saved     uint64
	lastErr   error
	savedCh   chan struct{}
}

func NewPersistService(repo repository.SnapshotRepository) *PersistService {
	p := &PersistService{
		queue:   make(chan persistJob, 1),
		repo:    repo,
		savedCh: make(chan struct{}),
	}

	p.wg.Add(1)
	go p.worker()

	return p
}

// Submit queues snapshot for writing without blocking.
func (p *PersistService) Submit(snapshot model.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		log.Warn("persist: snapshot submitted after shutdown, dropping")
		return
	}

	p.submitted++
	job := persistJob{seq: p.submitted, snapshot: snapshot}

	for {
		select {
		case p.queue <- job:
			return
		default:
		}

		select {
		case stale := <-p.queue:
			log.Debugf("persist: superseding snapshot %d with %d", stale.seq, job.seq)
		default:
		}
	}
}

func (p *PersistService) worker() {
	defer p.wg.Done()

	for job := range p.queue {
		err := p.repo.Save(context.Background(), job.snapshot)
		if err != nil {
			log.WithError(err).Errorf("persist: failed to save snapshot %d", job.seq)
		} else {
			log.Debugf("persist: saved snapshot %d (%d tasks)", job.seq, len(job.snapshot.Tasks))
		}
		p.markSaved(job.seq, err)
	}
}

func (p *PersistService) markSaved(seq uint64, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if seq <= p.saved {
		return
	}
	p.saved = seq
	p.lastErr = err
	close(p.savedCh)
	p.savedCh = make(chan struct{})
}

// Flush waits until everything submitted so far has been written and
// returns the error of the last write, if any.
func (p *PersistService) Flush(ctx context.Context) error {
	p.mu.Lock()
	target := p.submitted
	for p.saved < target {
		ch := p.savedCh
		p.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}

		p.mu.Lock()
	}
	err := p.lastErr
	p.mu.Unlock()

	return err
}

func (p *PersistService) Shutdown(ctx context.Context) {
	if err := p.Flush(ctx); err != nil {
		log.WithError(err).Warn("persist: final flush failed")
	}

	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("persist worker shut down cleanly")
	case <-ctx.Done():
		log.Warn("persist worker shutdown timed out")
	}
}
