package pool

// Pool runs queued jobs on a fixed set of worker goroutines. Jobs are
// plain funcs; anything a job produces travels over channels the
// caller owns.
type Pool struct {
	workers int
	jobCh   chan func()
}

// New sizes the pool. backlog is how many jobs can queue before Add
// starts blocking.
func New(workers int, backlog int) *Pool {
	return &Pool{
		workers: workers,
		jobCh:   make(chan func(), backlog),
	}
}

// Start launches the worker goroutines. Call it once, before Add.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		go func() {
			for job := range p.jobCh {
				job()
			}
		}()
	}
}

// Add queues a job, blocking while the backlog is full.
func (p *Pool) Add(f func()) {
	p.jobCh <- f
}

// Stop lets the workers drain the queue and exit. Nothing may Add
// after Stop.
func (p *Pool) Stop() {
	close(p.jobCh)
}
