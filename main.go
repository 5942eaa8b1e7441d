package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/clicepfl/roboclic/bot"
	"github.com/clicepfl/roboclic/config"
	"github.com/clicepfl/roboclic/database"
	"github.com/clicepfl/roboclic/logging"
	"github.com/clicepfl/roboclic/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}

	logger := logging.NewLogger(logging.LogLevel(cfg.LogLevel), os.Stdout)

	// listen and serve for metrics server.
	server := metrics.SetupServer(cfg.MetricsAddr)
	go server.Run()

	// setup postgres connection, runs migrations on connect
	db, err := database.NewPostgres(cfg.PostgresURL, logger)
	if err != nil {
		log.Fatalln(err)
	}

	session, err := bot.Setup(cfg, db, logger)
	if err != nil {
		db.Close()
		log.Fatalln(err)
	}

	go session.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	session.Stop()
	db.Close()
}
