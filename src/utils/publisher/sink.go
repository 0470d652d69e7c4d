package publisher

import (
	"github.com/warp-contracts/batch-registry/src/batch"
	"github.com/warp-contracts/batch-registry/src/utils/logger"
	"github.com/warp-contracts/batch-registry/src/utils/monitoring"

	"github.com/sirupsen/logrus"
)

// Buffers batch events for the publisher. Requests never wait for the publisher,
// an event that doesn't fit in the buffer is dropped.
type EventSink struct {
	log     *logrus.Entry
	monitor *monitoring.Monitor
	output  chan *batch.Event
}

func NewEventSink(size int) (self *EventSink) {
	self = new(EventSink)
	self.log = logger.NewSublogger("event-sink")
	self.output = make(chan *batch.Event, size)
	return
}

func (self *EventSink) WithMonitor(monitor *monitoring.Monitor) *EventSink {
	self.monitor = monitor
	return self
}

func (self *EventSink) Output() <-chan *batch.Event {
	return self.output
}

func (self *EventSink) OnEvent(event *batch.Event) {
	select {
	case self.output <- event:
		self.monitor.GetReport().Publisher.State.MessagesQueued.Inc()
	default:
		self.monitor.GetReport().Publisher.Errors.Dropped.Inc()
		self.log.WithField("token_id", event.TokenId).WithField("type", event.Type).Warn("Event queue full, dropping event")
	}
}
