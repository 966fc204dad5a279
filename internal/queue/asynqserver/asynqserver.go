package asynqserver

import (
	"github.com/attendly/backend/internal/cache"
	"github.com/attendly/backend/internal/config"
	"github.com/attendly/backend/internal/queue/processor"
	"github.com/attendly/backend/internal/queue/task"
	"github.com/attendly/backend/internal/worker"

	"github.com/hibiken/asynq"
)

func New(cfg config.Cache, workers *worker.Workers) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(workers)
	srv := asynq.NewServer(
		RedisOptions(cfg),
		asynq.Config{
			Concurrency: 10,
			LogLevel:    asynq.ErrorLevel,
			Queues:      queues,
		},
	)

	return srv, mux
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	var opts asynq.RedisConnOpt
	if cfg.Type == cache.RedisTypeCluster {
		opts = asynq.RedisClusterClientOpt{Addrs: cfg.RedisCluster.Addresses}
	} else {
		opts = asynq.RedisClientOpt{Addr: cfg.Redis.Address}
	}
	return opts
}

func getQueues(workers *worker.Workers) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.SendVerificationEmailTaskName, processor.NewSendVerificationEmailProcessor(workers))
	mux.Handle(task.SendNotificationEmailTaskName, processor.NewSendNotificationEmailProcessor(workers))
	queues := map[string]int{
		task.EmailQueueName: 1,
	}
	return mux, queues
}
