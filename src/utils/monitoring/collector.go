package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	monitor *Monitor

	// Run
	UpForSeconds *prometheus.Desc

	// Gateway
	RequestsServed           *prometheus.Desc
	BatchesRegistered        *prometheus.Desc
	BatchesVerified          *prometheus.Desc
	AverageRequestsPerMinute *prometheus.Desc
	InvalidInputErrors       *prometheus.Desc
	UnauthorizedErrors       *prometheus.Desc
	NotFoundErrors           *prometheus.Desc
	ConflictErrors           *prometheus.Desc
	UpstreamErrors           *prometheus.Desc

	// Registry
	RegistryReadErrors      *prometheus.Desc
	RegistryWriteErrors     *prometheus.Desc
	RegistryVersionConflict *prometheus.Desc
	DirectoryErrors         *prometheus.Desc

	// Backlog
	BacklogTotal        *prometheus.Desc
	BacklogPending      *prometheus.Desc
	BacklogVerified     *prometheus.Desc
	BacklogCensusErrors *prometheus.Desc

	// Publisher
	PublisherMessagesPublished *prometheus.Desc
	PublisherErrors            *prometheus.Desc
	PublisherDropped           *prometheus.Desc
}

func NewCollector() *Collector {
	labels := prometheus.Labels{
		"app": "batch_registry",
	}

	return &Collector{
		// Run
		UpForSeconds: prometheus.NewDesc("up_for_seconds", "", nil, labels),

		// Gateway
		RequestsServed:           prometheus.NewDesc("gateway_requests_served", "", nil, labels),
		BatchesRegistered:        prometheus.NewDesc("gateway_batches_registered", "", nil, labels),
		BatchesVerified:          prometheus.NewDesc("gateway_batches_verified", "", nil, labels),
		AverageRequestsPerMinute: prometheus.NewDesc("gateway_average_requests_per_minute", "", nil, labels),
		InvalidInputErrors:       prometheus.NewDesc("gateway_error_invalid_input", "", nil, labels),
		UnauthorizedErrors:       prometheus.NewDesc("gateway_error_unauthorized", "", nil, labels),
		NotFoundErrors:           prometheus.NewDesc("gateway_error_not_found", "", nil, labels),
		ConflictErrors:           prometheus.NewDesc("gateway_error_conflict", "", nil, labels),
		UpstreamErrors:           prometheus.NewDesc("gateway_error_upstream", "", nil, labels),

		// Registry
		RegistryReadErrors:      prometheus.NewDesc("registry_error_read", "", nil, labels),
		RegistryWriteErrors:     prometheus.NewDesc("registry_error_write", "", nil, labels),
		RegistryVersionConflict: prometheus.NewDesc("registry_error_version_conflict", "", nil, labels),
		DirectoryErrors:         prometheus.NewDesc("registry_error_directory", "", nil, labels),

		// Backlog
		BacklogTotal:        prometheus.NewDesc("backlog_total", "", nil, labels),
		BacklogPending:      prometheus.NewDesc("backlog_pending", "", nil, labels),
		BacklogVerified:     prometheus.NewDesc("backlog_verified", "", nil, labels),
		BacklogCensusErrors: prometheus.NewDesc("backlog_error_census", "", nil, labels),

		// Publisher
		PublisherMessagesPublished: prometheus.NewDesc("publisher_messages_published", "", nil, labels),
		PublisherErrors:            prometheus.NewDesc("publisher_error_publish", "", nil, labels),
		PublisherDropped:           prometheus.NewDesc("publisher_error_dropped", "", nil, labels),
	}
}

func (self *Collector) WithMonitor(m *Monitor) *Collector {
	self.monitor = m
	return self
}

func (self *Collector) Describe(ch chan<- *prometheus.Desc) {
	// Run
	ch <- self.UpForSeconds

	// Gateway
	ch <- self.RequestsServed
	ch <- self.BatchesRegistered
	ch <- self.BatchesVerified
	ch <- self.AverageRequestsPerMinute
	ch <- self.InvalidInputErrors
	ch <- self.UnauthorizedErrors
	ch <- self.NotFoundErrors
	ch <- self.ConflictErrors
	ch <- self.UpstreamErrors

	// Registry
	ch <- self.RegistryReadErrors
	ch <- self.RegistryWriteErrors
	ch <- self.RegistryVersionConflict
	ch <- self.DirectoryErrors

	// Backlog
	ch <- self.BacklogTotal
	ch <- self.BacklogPending
	ch <- self.BacklogVerified
	ch <- self.BacklogCensusErrors

	// Publisher
	ch <- self.PublisherMessagesPublished
	ch <- self.PublisherErrors
	ch <- self.PublisherDropped
}

// Collect implements required collect function for all promehteus collectors
func (self *Collector) Collect(ch chan<- prometheus.Metric) {
	report := self.monitor.GetReport()

	// Run
	ch <- prometheus.MustNewConstMetric(self.UpForSeconds, prometheus.GaugeValue, float64(report.Run.State.UpForSeconds.Load()))

	// Gateway
	ch <- prometheus.MustNewConstMetric(self.RequestsServed, prometheus.CounterValue, float64(report.Gateway.State.RequestsServed.Load()))
	ch <- prometheus.MustNewConstMetric(self.BatchesRegistered, prometheus.CounterValue, float64(report.Gateway.State.BatchesRegistered.Load()))
	ch <- prometheus.MustNewConstMetric(self.BatchesVerified, prometheus.CounterValue, float64(report.Gateway.State.BatchesVerified.Load()))
	ch <- prometheus.MustNewConstMetric(self.AverageRequestsPerMinute, prometheus.GaugeValue, report.Gateway.State.AverageRequestsPerMinute.Load())
	ch <- prometheus.MustNewConstMetric(self.InvalidInputErrors, prometheus.CounterValue, float64(report.Gateway.Errors.InvalidInput.Load()))
	ch <- prometheus.MustNewConstMetric(self.UnauthorizedErrors, prometheus.CounterValue, float64(report.Gateway.Errors.Unauthorized.Load()))
	ch <- prometheus.MustNewConstMetric(self.NotFoundErrors, prometheus.CounterValue, float64(report.Gateway.Errors.NotFound.Load()))
	ch <- prometheus.MustNewConstMetric(self.ConflictErrors, prometheus.CounterValue, float64(report.Gateway.Errors.Conflict.Load()))
	ch <- prometheus.MustNewConstMetric(self.UpstreamErrors, prometheus.CounterValue, float64(report.Gateway.Errors.Upstream.Load()))

	// Registry
	ch <- prometheus.MustNewConstMetric(self.RegistryReadErrors, prometheus.CounterValue, float64(report.Registry.Errors.Read.Load()))
	ch <- prometheus.MustNewConstMetric(self.RegistryWriteErrors, prometheus.CounterValue, float64(report.Registry.Errors.Write.Load()))
	ch <- prometheus.MustNewConstMetric(self.RegistryVersionConflict, prometheus.CounterValue, float64(report.Registry.Errors.VersionConflict.Load()))
	ch <- prometheus.MustNewConstMetric(self.DirectoryErrors, prometheus.CounterValue, float64(report.Registry.Errors.Directory.Load()))

	// Backlog
	ch <- prometheus.MustNewConstMetric(self.BacklogTotal, prometheus.GaugeValue, float64(report.Backlog.State.Total.Load()))
	ch <- prometheus.MustNewConstMetric(self.BacklogPending, prometheus.GaugeValue, float64(report.Backlog.State.Pending.Load()))
	ch <- prometheus.MustNewConstMetric(self.BacklogVerified, prometheus.GaugeValue, float64(report.Backlog.State.Verified.Load()))
	ch <- prometheus.MustNewConstMetric(self.BacklogCensusErrors, prometheus.CounterValue, float64(report.Backlog.Errors.Census.Load()))

	// Publisher
	ch <- prometheus.MustNewConstMetric(self.PublisherMessagesPublished, prometheus.CounterValue, float64(report.Publisher.State.MessagesPublished.Load()))
	ch <- prometheus.MustNewConstMetric(self.PublisherErrors, prometheus.CounterValue, float64(report.Publisher.Errors.Publish.Load()))
	ch <- prometheus.MustNewConstMetric(self.PublisherDropped, prometheus.CounterValue, float64(report.Publisher.Errors.Dropped.Load()))
}
