package main

import (
	"github.com/profilenet/backend/internal/server"
	"github.com/profilenet/backend/internal/util"
	"github.com/profilenet/backend/pkg/logger"
	"github.com/profilenet/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Prefix: "api",
		Debug:  debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
