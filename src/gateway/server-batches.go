package gateway

import (
	"errors"
	"net/http"

	"github.com/warp-contracts/batch-registry/src/batch"
	"github.com/warp-contracts/batch-registry/src/gateway/request"
	"github.com/warp-contracts/batch-registry/src/gateway/response"
	. "github.com/warp-contracts/batch-registry/src/utils/logger"

	"github.com/gin-gonic/gin"
)

var ErrCoordinatesIncomplete = errors.New("latitude and longitude must be given together")

func (self *Server) onMint(c *gin.Context) {
	var in = new(request.Mint)
	err := c.ShouldBindJSON(in)
	if err != nil {
		self.abortBadRequest(c, err, "Failed to parse request")
		return
	}

	req := &batch.RegistrationRequest{
		FarmerId:   in.FarmerId,
		FarmerName: in.FarmerName,
		Weight:     in.Weight.String(),
		CowBreed:   in.CowBreed,
		FeedType:   in.FeedType,
	}
	switch {
	case in.Latitude != nil && in.Longitude != nil:
		req.Coordinates = &batch.Coordinates{Latitude: *in.Latitude, Longitude: *in.Longitude}
	case in.Latitude != nil || in.Longitude != nil:
		self.abortBadRequest(c, ErrCoordinatesIncomplete, "Incomplete coordinates")
		return
	}

	ctx, cancel := self.requestContext(c)
	defer cancel()

	confirmation, err := self.registrar.Register(ctx, req)
	if err != nil {
		self.abort(c, err, "Failed to register batch")
		return
	}

	self.monitor.GetReport().Gateway.State.BatchesRegistered.Inc()
	LOG(c).WithField("token_id", confirmation.TokenId).Debug("Batch minted")

	c.JSON(http.StatusOK, response.MintToResponse(confirmation))
}

func (self *Server) onUpdate(c *gin.Context) {
	var in = new(request.Update)
	err := c.ShouldBindJSON(in)
	if err != nil {
		self.abortBadRequest(c, err, "Failed to parse request")
		return
	}

	ctx, cancel := self.requestContext(c)
	defer cancel()

	confirmation, err := self.verifier.Verify(ctx, &batch.VerificationRequest{
		TokenId:       in.TokenId.String(),
		CollectorName: in.CollectorName,
		Moisture:      in.Moisture.String(),
		Purity:        in.Purity.String(),
		QualityScore:  in.QualityScore.String(),
	})
	if err != nil {
		self.abort(c, err, "Failed to verify batch")
		return
	}

	self.monitor.GetReport().Gateway.State.BatchesVerified.Inc()
	LOG(c).WithField("token_id", confirmation.TokenId).
		WithField("score", confirmation.QualityScore.String()).
		Debug("Batch updated")

	c.JSON(http.StatusOK, response.UpdateToResponse(confirmation))
}

func (self *Server) onGetBatches(c *gin.Context) {
	ctx, cancel := self.requestContext(c)
	defer cancel()

	records, err := self.query.ListAll(ctx)
	if err != nil {
		self.abort(c, err, "Failed to fetch batches")
		return
	}

	LOG(c).WithField("num", len(records)).Debug("Return batches")
	c.JSON(http.StatusOK, response.BatchesToResponse(records))
}

func (self *Server) onGetPendingBatches(c *gin.Context) {
	ctx, cancel := self.requestContext(c)
	defer cancel()

	records, err := self.query.ListPending(ctx)
	if err != nil {
		self.abort(c, err, "Failed to fetch pending batches")
		return
	}

	LOG(c).WithField("num", len(records)).Debug("Return pending batches")
	c.JSON(http.StatusOK, response.BatchesToResponse(records))
}

// Preview of the score, nothing is written
func (self *Server) onGetScore(c *gin.Context) {
	score := batch.ParseScore(c.Query("moisture"), c.Query("purity"))
	c.JSON(http.StatusOK, response.ScoreToResponse(score))
}
