package ledger

import (
	"github.com/warp-contracts/batch-registry/src/utils/logger"

	"github.com/sirupsen/logrus"
)

// Transforms all resty logs to trace
type restyLogger struct {
	log *logrus.Entry
}

func newRestyLogger() (self *restyLogger) {
	self = new(restyLogger)
	self.log = logger.NewSublogger("ledger-resty")
	return
}

func (self *restyLogger) Errorf(format string, v ...interface{}) {
	self.log.Tracef(format, v...)
}

func (self *restyLogger) Warnf(format string, v ...interface{}) {
	self.log.Tracef(format, v...)
}

func (self *restyLogger) Debugf(format string, v ...interface{}) {
	self.log.Tracef(format, v...)
}
