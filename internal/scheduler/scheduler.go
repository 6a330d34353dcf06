package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const jobTimeout = 2 * time.Minute

// DigestSender mails the unread contact requests and reports how many were sent
type DigestSender interface {
	SendUnreadDigest(ctx context.Context) (int, error)
}

// DigestJob runs the unread digest on a cron schedule
type DigestJob struct {
	cron   *cron.Cron
	sender DigestSender
	log    *logrus.Logger
}

// NewDigestJob registers the digest under a standard five-field cron spec
func NewDigestJob(schedule string, sender DigestSender, log *logrus.Logger) (*DigestJob, error) {
	j := &DigestJob{
		cron:   cron.New(),
		sender: sender,
		log:    log,
	}
	if _, err := j.cron.AddFunc(schedule, j.Run); err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", schedule, err)
	}
	return j, nil
}

// Run sends one digest. Errors are logged; the next tick retries.
func (j *DigestJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := j.sender.SendUnreadDigest(ctx)
	if err != nil {
		j.log.Errorf("Unread digest failed: %v", err)
		return
	}
	if n > 0 {
		j.log.Infof("Unread digest job mailed %d request(s)", n)
	}
}

// Start begins the schedule in the background
func (j *DigestJob) Start() {
	j.cron.Start()
	j.log.Info("Digest scheduler started")
}

// Stop halts the schedule and returns a context done when a running job finishes
func (j *DigestJob) Stop() context.Context {
	return j.cron.Stop()
}
