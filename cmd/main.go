package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mayhew-amaya/taskflow-api/internal/app"
	"github.com/mayhew-amaya/taskflow-api/internal/config"
	"github.com/mayhew-amaya/taskflow-api/internal/lib/logger/handlers/logruspretty"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

//	@title			TaskFlow API
//	@version		1.0
//	@description	Minimal REST service for managing task records.
//	@BasePath		/
func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env, cfg.LogsPath)

	log.WithField("env", cfg.Env).Info("application start")

	application, err := app.New(cfg, log)
	if err != nil {
		panic(err)
	}

	application.Run()

	<-application.Done
	log.Info("application stopped")
}

func setupLogger(env string, logFilePath string) *logrus.Entry {
	var log = logrus.New()

	switch env {
	case envLocal:
		log.SetLevel(logrus.DebugLevel)
		return setupPrettyLog(log)
	case envDev:
		setupFileLog(log, logFilePath)
		log.SetLevel(logrus.InfoLevel)
	case envProd:
		setupFileLog(log, logFilePath)
		log.SetLevel(logrus.WarnLevel)
	default:
		setupFileLog(log, logFilePath)
		log.SetLevel(logrus.WarnLevel)
	}

	return logrus.NewEntry(log)
}

func setupFileLog(log *logrus.Logger, logFilePath string) {
	logFile, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		panic(err)
	}

	log.SetOutput(logFile)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
}

func setupPrettyLog(log *logrus.Logger) *logrus.Entry {
	prettyHandler := logruspretty.NewPrettyHandler(os.Stdout)
	log.SetOutput(prettyHandler.Writer())
	log.SetFormatter(prettyHandler)
	return logrus.NewEntry(log)
}
