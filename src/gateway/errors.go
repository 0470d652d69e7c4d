package gateway

import (
	"errors"
	"net/http"

	"github.com/warp-contracts/batch-registry/src/batch"
	. "github.com/warp-contracts/batch-registry/src/utils/logger"

	"github.com/gin-gonic/gin"
)

// Conflicts are checked before upstream failures, a stale write is both
func (self *Server) classify(err error) int {
	report := self.monitor.GetReport()

	switch {
	case errors.Is(err, batch.ErrRegistryRead):
		report.Registry.Errors.Read.Inc()
	case errors.Is(err, batch.ErrRegistryWrite):
		report.Registry.Errors.Write.Inc()
	case errors.Is(err, batch.ErrDirectory):
		report.Registry.Errors.Directory.Inc()
	}

	switch {
	case errors.Is(err, batch.ErrInvalidInput), errors.Is(err, batch.ErrInvalidScoreInput):
		report.Gateway.Errors.InvalidInput.Inc()
		return http.StatusBadRequest
	case errors.Is(err, batch.ErrUnknownFarmer), errors.Is(err, batch.ErrRecordNotFound):
		report.Gateway.Errors.NotFound.Inc()
		return http.StatusNotFound
	case errors.Is(err, batch.ErrVersionConflict):
		report.Registry.Errors.VersionConflict.Inc()
		report.Gateway.Errors.Conflict.Inc()
		return http.StatusConflict
	case errors.Is(err, batch.ErrAlreadyVerified):
		report.Gateway.Errors.Conflict.Inc()
		return http.StatusConflict
	}

	report.Gateway.Errors.Upstream.Inc()
	return http.StatusInternalServerError
}

// Responds with the status matching the error. Details of upstream failures stay in the logs.
func (self *Server) abort(c *gin.Context, err error, msg string) {
	status := self.classify(err)
	if status == http.StatusInternalServerError {
		LOGE(c, errors.New(msg), status).WithField("cause", err.Error()).Error(msg)
		return
	}
	LOGE(c, err, status).Info(msg)
}

func (self *Server) abortBadRequest(c *gin.Context, err error, msg string) {
	self.monitor.GetReport().Gateway.Errors.InvalidInput.Inc()
	LOGE(c, err, http.StatusBadRequest).Info(msg)
}
