package gateway

import (
	"context"
	"net/http"
	"runtime"

	"github.com/warp-contracts/batch-registry/src/auth"
	"github.com/warp-contracts/batch-registry/src/batch"
	"github.com/warp-contracts/batch-registry/src/utils/config"
	"github.com/warp-contracts/batch-registry/src/utils/logger"
	"github.com/warp-contracts/batch-registry/src/utils/monitoring"
	"github.com/warp-contracts/batch-registry/src/utils/task"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/teivah/onecontext"
	"golang.org/x/time/rate"
)

// REST API of the registry
type Server struct {
	*task.Task

	httpServer *http.Server
	Router     *gin.Engine

	monitor  *monitoring.Monitor
	auth     auth.Verifier
	limiter  *rate.Limiter
	registry *prometheus.Registry

	registrar *batch.Registrar
	verifier  *batch.Verifier
	query     *batch.Query
}

func NewServer(config *config.Config) (self *Server) {
	self = new(Server)

	self.Task = task.NewTask(config, "server").
		WithSubtaskFunc(self.run).
		WithOnStop(self.stop)

	self.Router = gin.New()
	self.auth = auth.None{}
	self.registry = prometheus.NewRegistry()

	if config.Api.LimiterRate > 0 {
		self.limiter = rate.NewLimiter(rate.Limit(config.Api.LimiterRate), config.Api.LimiterBurstSize)
	}

	self.httpServer = &http.Server{
		Addr:    config.Api.ListenAddress,
		Handler: self.Router,
	}

	return
}

func (self *Server) WithMonitor(monitor *monitoring.Monitor) *Server {
	self.monitor = monitor
	self.registry.MustRegister(monitor.GetPrometheusCollector())
	return self
}

func (self *Server) WithAuth(v auth.Verifier) *Server {
	self.auth = v
	return self
}

func (self *Server) WithRegistrar(v *batch.Registrar) *Server {
	self.registrar = v
	return self
}

func (self *Server) WithVerifier(v *batch.Verifier) *Server {
	self.verifier = v
	return self
}

func (self *Server) WithQuery(v *batch.Query) *Server {
	self.query = v
	return self
}

// Registers all routes. Called once before the server starts.
func (self *Server) Setup() *Server {
	self.Router.Use(
		gin.Recovery(),
		logger.RequestId(),
		self.cors(),
		self.rateLimit(),
		self.countRequests(),
	)

	self.Router.POST("mint", self.authorize(auth.RoleFarmer), self.onMint)
	self.Router.POST("update", self.authorize(auth.RoleCollector), self.onUpdate)
	self.Router.GET("get-batches", self.authorize(auth.RoleOwner), self.onGetBatches)
	self.Router.GET("get-pending-batches", self.authorize(auth.RoleCollector), self.onGetPendingBatches)

	v1 := self.Router.Group("v1")
	{
		v1.GET("health", self.monitor.OnGetHealth)
		v1.GET("state", self.monitor.OnGetState)
		v1.GET("metrics", gin.WrapH(promhttp.HandlerFor(self.registry, promhttp.HandlerOpts{})))
		v1.GET("score", self.onGetScore)
	}

	if self.Config.Profiler.Enabled {
		runtime.SetBlockProfileRate(self.Config.Profiler.BlockProfileRate)
		pprof.Register(self.Router)
	}

	return self
}

// Context of a single request. Cancelled when the client goes away,
// the server stops or the request takes too long.
func (self *Server) requestContext(c *gin.Context) (ctx context.Context, cancel context.CancelFunc) {
	merged, cancelMerged := onecontext.Merge(c.Request.Context(), self.Ctx)
	ctx, cancelTimeout := context.WithTimeout(merged, self.Config.Api.RequestTimeout)
	return ctx, func() {
		cancelTimeout()
		cancelMerged()
	}
}

func (self *Server) run() (err error) {
	if !self.Config.IsDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	self.Log.WithField("address", self.httpServer.Addr).Info("Starting REST server")
	err = self.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		self.Log.WithError(err).Error("Failed to start REST server")
		return
	}
	return nil
}

func (self *Server) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), self.Config.StopTimeout)
	defer cancel()

	err := self.httpServer.Shutdown(ctx)
	if err != nil {
		self.Log.WithError(err).Error("Failed to gracefully shutdown REST server")
		return
	}
}
