package monitoring

import (
	"math"
	"net/http"
	"time"

	"github.com/warp-contracts/batch-registry/src/utils/monitoring/report"
	"github.com/warp-contracts/batch-registry/src/utils/task"

	"github.com/gammazero/deque"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Stores and computes monitor counters
type Monitor struct {
	*task.Task

	Report report.Report

	historySize int

	// Census fails this many times in a row before the service is reported unhealthy
	maxCensusFailures uint64

	collector *Collector

	// Request processing speed
	RequestCounts *deque.Deque[uint64]
}

func NewMonitor() (self *Monitor) {
	self = new(Monitor)

	self.Report = report.Report{
		Run:       &report.RunReport{},
		Gateway:   &report.GatewayReport{},
		Registry:  &report.RegistryReport{},
		Backlog:   &report.BacklogReport{},
		Publisher: &report.PublisherReport{},
	}

	// Initialization
	self.Report.Run.State.StartTimestamp.Store(time.Now().Unix())
	self.maxCensusFailures = 3

	self.collector = NewCollector().WithMonitor(self)

	self.Task = task.NewTask(nil, "monitor").
		WithPeriodicSubtaskFunc(time.Minute, self.monitorRequests)

	return self.WithMaxHistorySize(30)
}

func (self *Monitor) WithMaxHistorySize(maxHistorySize int) *Monitor {
	self.historySize = maxHistorySize
	self.RequestCounts = deque.New[uint64](self.historySize)
	return self
}

func (self *Monitor) GetReport() *report.Report {
	return &self.Report
}

func (self *Monitor) GetPrometheusCollector() (collector prometheus.Collector) {
	return self.collector
}

func round(f float64) float64 {
	return math.Round(f*100) / 100
}

// Measure request processing speed
func (self *Monitor) monitorRequests() (err error) {
	loaded := self.Report.Gateway.State.RequestsServed.Load()
	if loaded == 0 {
		// Neglect the first 0
		return
	}

	self.RequestCounts.PushBack(loaded)
	if self.RequestCounts.Len() > self.historySize {
		self.RequestCounts.PopFront()
	}
	value := float64(self.RequestCounts.Back()-self.RequestCounts.Front()) / float64(self.RequestCounts.Len())
	self.Report.Gateway.State.AverageRequestsPerMinute.Store(round(value))
	return
}

func (self *Monitor) IsOK() bool {
	return self.Report.Backlog.Errors.ConsecutiveFailures.Load() < self.maxCensusFailures
}

func (self *Monitor) OnGetState(c *gin.Context) {
	self.Report.Run.State.UpForSeconds.Store(uint64(time.Now().Unix() - self.Report.Run.State.StartTimestamp.Load()))
	c.JSON(http.StatusOK, &self.Report)
}

func (self *Monitor) OnGetHealth(c *gin.Context) {
	if self.IsOK() {
		c.Status(http.StatusOK)
	} else {
		c.Status(http.StatusServiceUnavailable)
	}
}
