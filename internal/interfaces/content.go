// Package interfaces
package interfaces

import (
	"github.com/ro-aviation/skyhub/internal/interfaces/config"
	"github.com/ro-aviation/skyhub/internal/interfaces/global"
	"github.com/ro-aviation/skyhub/internal/interfaces/log"
	"github.com/ro-aviation/skyhub/internal/interfaces/store"
)

type ConfigManagerInterface interface {
	Config() *config.Config
	SaveConfig() error
}

type CleanerInterface interface {
	Add(callable global.Callable)
}

type ApplicationContent struct {
	configManager ConfigManagerInterface
	cleaner       CleanerInterface
	logger        log.LoggerInterface
	recordStore   store.RecordStore
}

func NewApplicationContent(
	configManager ConfigManagerInterface,
	cleaner CleanerInterface,
	logger log.LoggerInterface,
	recordStore store.RecordStore,
) *ApplicationContent {
	return &ApplicationContent{
		configManager: configManager,
		cleaner:       cleaner,
		logger:        logger,
		recordStore:   recordStore,
	}
}

func (app *ApplicationContent) ConfigManager() ConfigManagerInterface { return app.configManager }

func (app *ApplicationContent) Cleaner() CleanerInterface { return app.cleaner }

func (app *ApplicationContent) Logger() log.LoggerInterface { return app.logger }

func (app *ApplicationContent) RecordStore() store.RecordStore { return app.recordStore }
