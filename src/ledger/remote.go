package ledger

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/warp-contracts/batch-registry/src/batch"
	"github.com/warp-contracts/batch-registry/src/utils/build_info"
	"github.com/warp-contracts/batch-registry/src/utils/config"
	"github.com/warp-contracts/batch-registry/src/utils/logger"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Client of an external ledger exposing batches over REST.
// Requests are never retried, retrying belongs to the caller.
type Remote struct {
	config  *config.Registry
	log     *logrus.Entry
	client  *resty.Client
	limiter *rate.Limiter
}

func NewRemote(config *config.Registry) (self *Remote) {
	self = new(Remote)
	self.config = config
	self.log = logger.NewSublogger("ledger-remote")
	self.limiter = rate.NewLimiter(rate.Every(config.LimiterInterval), config.LimiterBurstSize)

	self.client = resty.New().
		SetBaseURL(config.Url).
		SetTimeout(config.RequestTimeout).
		SetHeader("User-Agent", "warp.cc/batch-registry/"+build_info.Version).
		SetRetryCount(0).
		SetLogger(newRestyLogger()).
		SetTransport(self.createTransport()).
		OnBeforeRequest(self.onRateLimit).
		OnAfterResponse(self.onStatusToError)

	if config.ApiKey != "" {
		self.client.SetHeader("X-Api-Key", config.ApiKey)
	}
	return
}

func (self *Remote) createTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   self.config.DialerTimeout,
		KeepAlive: self.config.DialerKeepAlive,
	}

	return &http.Transport{
		// Some config options disable http2, try it anyway
		ForceAttemptHTTP2: true,

		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   self.config.TLSHandshakeTimeout,
		ExpectContinueTimeout: 1 * time.Second,

		IdleConnTimeout:     self.config.IdleConnTimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     10,
	}
}

// Blocks till the request is possible or ctx gets canceled
func (self *Remote) onRateLimit(c *resty.Client, req *resty.Request) (err error) {
	err = self.limiter.Wait(req.Context())
	if err != nil {
		self.log.WithError(err).Error("Rate limiting failed")
	}
	return
}

// Converts HTTP status to errors
func (self *Remote) onStatusToError(c *resty.Client, resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	switch resp.StatusCode() {
	case http.StatusNotFound:
		return batch.ErrRecordNotFound
	case http.StatusConflict, http.StatusPreconditionFailed:
		return batch.ErrVersionConflict
	}

	if resp.StatusCode() > 399 && resp.StatusCode() < 500 {
		self.log.WithField("status", resp.StatusCode()).
			WithField("resp", string(resp.Body())).
			WithField("url", resp.Request.URL).
			Debug("Bad request")
	}
	return fmt.Errorf("unexpected status: %s", resp.Status())
}

func (self *Remote) Create(ctx context.Context, record *batch.Record) (out *batch.Receipt, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		SetBody(createBatchRequest{
			Name:        record.Name,
			Description: record.Description,
			Properties:  record.Properties,
		}).
		SetResult(&receiptResponse{}).
		ForceContentType("application/json").
		Post("/batches")
	if err != nil {
		return
	}

	return self.receipt(resp)
}

func (self *Remote) Get(ctx context.Context, tokenId string) (out *batch.Record, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		SetPathParam("id", tokenId).
		SetResult(&batch.Record{}).
		ForceContentType("application/json").
		Get("/batches/{id}")
	if err != nil {
		return
	}

	out, ok := resp.Result().(*batch.Record)
	if !ok {
		return nil, ErrFailedToParse
	}
	if out.TokenId == "" {
		out.TokenId = tokenId
	}
	return
}

// Sends the version that was read, the ledger rejects stale writes
func (self *Remote) Update(ctx context.Context, record *batch.Record) (out *batch.Receipt, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		SetPathParam("id", record.TokenId).
		SetHeader("If-Match", strconv.FormatUint(record.Version, 10)).
		SetBody(createBatchRequest{
			Name:        record.Name,
			Description: record.Description,
			Properties:  record.Properties,
		}).
		SetResult(&receiptResponse{}).
		ForceContentType("application/json").
		Put("/batches/{id}")
	if err != nil {
		return
	}

	return self.receipt(resp)
}

func (self *Remote) List(ctx context.Context) (out []*batch.Record, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		SetResult(&[]*batch.Record{}).
		ForceContentType("application/json").
		Get("/batches")
	if err != nil {
		return
	}

	list, ok := resp.Result().(*[]*batch.Record)
	if !ok {
		return nil, ErrFailedToParse
	}
	return *list, nil
}

func (self *Remote) receipt(resp *resty.Response) (out *batch.Receipt, err error) {
	result, ok := resp.Result().(*receiptResponse)
	if !ok || result.TokenId == "" {
		return nil, ErrFailedToParse
	}
	return result.toReceipt(), nil
}
