package commands

import (
	"context"

	"go.uber.org/zap"

	"blood-connect/internal/config"
	"blood-connect/internal/repository"
	"blood-connect/internal/service"
)

// AppContext holds what every command needs. It is populated once the root
// command's pre-run hook has opened the store.
type AppContext struct {
	Ctx        context.Context
	Cfg        *config.Config
	Logger     *zap.Logger
	Repos      *repository.Repositories
	Services   *service.Services
	CloseStore func() error
}

func (a *AppContext) Close() {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.CloseStore != nil {
		_ = a.CloseStore()
	}
}
