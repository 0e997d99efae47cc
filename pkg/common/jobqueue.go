package common

import (
	"errors"
	"sync"
)

var ErrQueueFull = errors.New("job queue is full")

type Job func() error

// JobQueue runs jobs one after another in a background goroutine, so that callers (for example, a chat read loop)
// never block on slow work.
type JobQueue struct {
	jobsChannel chan Job
	stopChannel chan struct{}
	stopOnce    sync.Once
	waitGroup   sync.WaitGroup
	logger      Logger
}

func NewJobQueue(capacity int, logger Logger) *JobQueue {
	if capacity <= 0 {
		capacity = 128
	}
	worker := &JobQueue{
		jobsChannel: make(chan Job, capacity),
		stopChannel: make(chan struct{}),
		logger:      logger,
	}
	worker.waitGroup.Add(1)
	go worker.run()
	return worker
}

// Enqueue schedules the job. Returns ErrQueueFull instead of blocking if the queue is at capacity.
func (j *JobQueue) Enqueue(job Job) error {
	select {
	case j.jobsChannel <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop waits for the job in progress (if any) and stops the worker. Jobs still in the queue are dropped.
func (j *JobQueue) Stop() {
	j.stopOnce.Do(func() {
		close(j.stopChannel)
	})
	j.waitGroup.Wait()
}

func (j *JobQueue) run() {
	defer j.waitGroup.Done()
	for {
		select {
		case <-j.stopChannel:
			return
		default:
		}
		select {
		case job := <-j.jobsChannel:
			err := job()
			if err != nil {
				j.logger.Log("failed to process a job: " + err.Error())
			}
		case <-j.stopChannel:
			return
		}
	}
}
