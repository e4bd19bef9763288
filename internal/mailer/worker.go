package mailer

import (
	"sync"

	"estatery-api-io/api/pkg/models"
	"estatery-api-io/api/pkg/util"
)

// WorkerPool sends queued emails on a fixed number of goroutines.
type WorkerPool struct {
	jobs    chan Job
	size    int
	deliver func(Job) error

	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewWorkerPool(size, queue int, deliver func(Job) error) *WorkerPool {
	if size < 1 {
		size = 1
	}
	return &WorkerPool{
		jobs:    make(chan Job, queue),
		size:    size,
		deliver: deliver,
	}
}

func (pool *WorkerPool) Start() {
	for id := 0; id < pool.size; id++ {
		pool.wg.Add(1)
		go pool.work(id)
	}
	util.Log.WithField("workers", pool.size).Info("email workers started")
}

// Stop drains the queue and waits for the workers to exit.
func (pool *WorkerPool) Stop() {
	pool.stopOnce.Do(func() {
		close(pool.jobs)
	})
	pool.wg.Wait()
	util.LogInfo("email workers stopped")
}

// Enqueue adds a job without blocking. It reports false when the queue is full.
func (pool *WorkerPool) Enqueue(job Job) bool {
	select {
	case pool.jobs <- job:
		return true
	default:
		util.Log.WithField("to", job.To).WithField("type", job.Type).Warn("email queue full, dropping job")
		return false
	}
}

// SendWelcome queues the welcome email for a new account.
func (pool *WorkerPool) SendWelcome(user models.User) {
	pool.Enqueue(Job{Type: JobWelcome, To: user.Email, Username: user.Username})
}

func (pool *WorkerPool) work(id int) {
	defer pool.wg.Done()
	for job := range pool.jobs {
		if err := pool.deliver(job); err != nil {
			util.Log.WithField("worker", id).WithError(err).Warn("email job failed")
		}
	}
}
