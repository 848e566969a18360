package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hibiken/asynq"

	"github.com/iljicevs/eduportal/core"
	emailsvc "github.com/iljicevs/eduportal/services/email"
	logsvc "github.com/iljicevs/eduportal/services/logger"
	tasksvc "github.com/iljicevs/eduportal/services/tasks"
)

// The worker drains the task queue: rendered emails enqueued by the
// web app are delivered here, through sendgrid in deployed envs and
// the console in DEV.
func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "WORKER : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	var deliverSvc core.EmailService
	if conf.Debug {
		deliverSvc = emailsvc.NewConsoleService(conf)
	} else {
		deliverSvc = emailsvc.NewSendgridService(conf, logger)
	}

	srv := asynq.NewServer(
		tasksvc.RedisOpt(conf),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasksvc.TypeEmailDeliver, tasksvc.NewEmailHandler(deliverSvc, logger))

	logger.Info(fmt.Sprintf("Worker starting : version %q", conf.Build))
	if err := srv.Run(mux); err != nil {
		logger.Fatal(fmt.Sprintf("worker stopped: %v", err), err)
	}
}
