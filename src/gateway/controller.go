package gateway

import (
	"github.com/warp-contracts/batch-registry/src/auth"
	"github.com/warp-contracts/batch-registry/src/batch"
	"github.com/warp-contracts/batch-registry/src/directory"
	"github.com/warp-contracts/batch-registry/src/ledger"
	"github.com/warp-contracts/batch-registry/src/utils/config"
	"github.com/warp-contracts/batch-registry/src/utils/monitoring"
	"github.com/warp-contracts/batch-registry/src/utils/publisher"
	"github.com/warp-contracts/batch-registry/src/utils/task"
)

type Controller struct {
	*task.Task
}

// Main class that orchestrates the registry service.
// Sets up the registry, the farmer directory, the REST API and event publishing.
func NewController(config *config.Config) (self *Controller, err error) {
	self = new(Controller)

	self.Task = task.NewTask(config, "controller")

	registry, err := ledger.New(self.Ctx, config)
	if err != nil {
		return
	}

	farmers, err := directory.New(config)
	if err != nil {
		return
	}

	verifier, err := auth.New(&config.Auth)
	if err != nil {
		return
	}

	return self.WithComponents(registry, farmers, verifier), nil
}

// Wires services around already constructed collaborators
func (self *Controller) WithComponents(registry batch.Registry, farmers batch.Directory, verifier auth.Verifier) *Controller {
	config := self.Config

	monitor := monitoring.NewMonitor().
		WithMaxHistorySize(30)

	explorer := batch.NewExplorer(config.Registry.ExplorerUrl)

	var observer batch.Observer = noopObserver{}
	var redisPublisher *publisher.RedisPublisher[*batch.Event]
	if config.Events.Enabled {
		sink := publisher.NewEventSink(config.Events.QueueSize).
			WithMonitor(monitor)

		redisPublisher = publisher.NewRedisPublisher[*batch.Event](config, config.Redis, "publisher").
			WithInputChannel(sink.Output()).
			WithChannelName(config.Events.ChannelName).
			WithMonitor(monitor)

		observer = sink
	}

	query := batch.NewQuery(registry)

	registrar := batch.NewRegistrar(registry, farmers).
		WithExplorer(explorer).
		WithObserver(observer)

	batchVerifier := batch.NewVerifier(registry).
		WithExplorer(explorer).
		WithObserver(observer).
		WithAllowRescoring(config.Verification.AllowRescoring)

	server := NewServer(config).
		WithMonitor(monitor).
		WithAuth(verifier).
		WithRegistrar(registrar).
		WithVerifier(batchVerifier).
		WithQuery(query).
		Setup()

	self.Task = self.Task.
		WithSubtask(monitor.Task).
		WithSubtask(server.Task)

	if config.Backlog.Enabled {
		backlog := NewBacklog(config).
			WithQuery(query).
			WithMonitor(monitor)
		self.Task = self.Task.WithSubtask(backlog.Task)
	}

	// Publishes whatever is still queued when stopping
	if redisPublisher != nil {
		self.Task = self.Task.WithSubtask(redisPublisher.Task)
	}

	return self
}

type noopObserver struct{}

func (noopObserver) OnEvent(*batch.Event) {}
