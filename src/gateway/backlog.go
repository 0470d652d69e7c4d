package gateway

import (
	"context"
	"time"

	"github.com/warp-contracts/batch-registry/src/batch"
	"github.com/warp-contracts/batch-registry/src/utils/config"
	"github.com/warp-contracts/batch-registry/src/utils/monitoring"
	"github.com/warp-contracts/batch-registry/src/utils/task"

	"github.com/robfig/cron"
)

// Periodically counts registered and verified batches
type Backlog struct {
	*task.Task

	cron    *cron.Cron
	query   *batch.Query
	monitor *monitoring.Monitor
}

func NewBacklog(config *config.Config) (self *Backlog) {
	self = new(Backlog)
	self.cron = cron.New()

	self.Task = task.NewTask(config, "backlog").
		WithOnBeforeStart(self.schedule).
		WithSubtaskFunc(self.run).
		WithOnStop(self.cron.Stop)

	return
}

func (self *Backlog) WithQuery(v *batch.Query) *Backlog {
	self.query = v
	return self
}

func (self *Backlog) WithMonitor(v *monitoring.Monitor) *Backlog {
	self.monitor = v
	return self
}

func (self *Backlog) schedule() (err error) {
	err = self.cron.AddFunc(self.Config.Backlog.Schedule, self.census)
	if err != nil {
		self.Log.WithError(err).WithField("schedule", self.Config.Backlog.Schedule).Error("Invalid census schedule")
		return
	}
	self.cron.Start()
	return
}

func (self *Backlog) run() error {
	// First census right away, cron fires only after the first period
	self.census()
	<-self.StopChannel
	return nil
}

func (self *Backlog) census() {
	report := self.monitor.GetReport().Backlog

	ctx, cancel := context.WithTimeout(self.Ctx, self.Config.Api.RequestTimeout)
	defer cancel()

	census, err := self.query.Census(ctx)
	if err != nil {
		report.Errors.Census.Inc()
		report.Errors.ConsecutiveFailures.Inc()
		self.Log.WithError(err).Error("Failed to count batches")
		return
	}
	report.Errors.ConsecutiveFailures.Store(0)

	report.State.Total.Store(int64(census.Total))
	report.State.Pending.Store(int64(census.ByStatus[batch.StatusRegistered]))
	report.State.Verified.Store(int64(census.ByStatus[batch.StatusVerified]))
	report.State.LastCensusTimestamp.Store(time.Now().Unix())

	self.Log.WithField("total", census.Total).
		WithField("pending", census.ByStatus[batch.StatusRegistered]).
		Debug("Batch census")
}
