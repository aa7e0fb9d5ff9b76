package main

import (
	"flag"
	"fmt"

	"github.com/ro-aviation/skyhub/internal/base"
	"github.com/ro-aviation/skyhub/internal/http_server"
	"github.com/ro-aviation/skyhub/internal/interfaces"
	"github.com/ro-aviation/skyhub/internal/interfaces/global"
	storeInterface "github.com/ro-aviation/skyhub/internal/interfaces/store"
	"github.com/ro-aviation/skyhub/internal/store"
)

func recoverFromError() {
	if r := recover(); r != nil {
		fmt.Printf("It looks like there are some serious errors, the details are as follows: %v", r)
	}
}

func main() {
	flag.Parse()

	defer recoverFromError()

	logger := base.NewLogger()
	logger.Init(*global.DebugMode)

	logger.Info("Application initializing...")

	cleaner := base.NewCleaner(logger)
	cleaner.Init()
	defer cleaner.Clean()

	configManager := base.NewManager(logger)
	config := configManager.Config()

	// Without a working database the site still starts: the lists stay
	// empty and mutations report the store as unavailable.
	var recordStore storeInterface.RecordStore = store.NewDisabled()
	if config.Database.Enabled {
		shutdownCallback, documentStore, err := store.ConnectDatabase(logger, config, *global.DebugMode)
		if err != nil {
			logger.ErrorF("Record store unavailable, continuing degraded: %v", err)
		} else {
			cleaner.Add(shutdownCallback)
			if config.Nats.Enabled {
				natsShutdown, bridge, err := store.ConnectNats(logger, config.Nats, documentStore)
				if err != nil {
					logger.ErrorF("NATS relay unavailable, running single-instance: %v", err)
				} else {
					cleaner.Add(natsShutdown)
					documentStore.SetRelay(bridge)
				}
			}
			recordStore = documentStore
		}
	} else {
		logger.Warn("Database disabled, record lists stay empty")
	}

	applicationContent := interfaces.NewApplicationContent(configManager, cleaner, logger, recordStore)

	http_server.StartHttpServer(applicationContent)
}
