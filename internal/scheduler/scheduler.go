package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Job pairs a cron cadence with the callback it fires. Jobs are
// independent and fire-and-forget: a failed run is logged and the next
// tick proceeds regardless.
type Job struct {
	Name    string
	Cadence string
	Run     func(context.Context) error
}

// Scheduler owns the registered jobs and the cron engine driving them.
// It holds no state beyond next fire times; missed ticks are not replayed.
type Scheduler struct {
	cron *cron.Cron
	jobs []Job
}

func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

func (s *Scheduler) Register(job Job) error {
	if job.Run == nil {
		return fmt.Errorf("job %q has no callback", job.Name)
	}

	_, err := s.cron.AddFunc(job.Cadence, func() {
		if err := job.Run(context.Background()); err != nil {
			log.Printf("scheduled job %s failed: %v", job.Name, err)
		}
	})
	if err != nil {
		return fmt.Errorf("register job %q with cadence %q: %w", job.Name, job.Cadence, err)
	}

	s.jobs = append(s.jobs, job)
	return nil
}

// Jobs returns the registered jobs so tests can fire callbacks
// synchronously instead of waiting on wall-clock timers.
func (s *Scheduler) Jobs() []Job {
	return s.jobs
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
