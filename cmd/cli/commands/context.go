package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/internal/config"
	"github.com/felixgrant/shiftwise/pkg/db"
	"github.com/felixgrant/shiftwise/pkg/notify"
	"github.com/felixgrant/shiftwise/pkg/roster"
	"github.com/felixgrant/shiftwise/pkg/shiftcatalog"
	"github.com/felixgrant/shiftwise/pkg/utils/keymutex"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Roster   *roster.Provider
	Catalog  *shiftcatalog.Catalog
	Notifier notify.Notifier
	Locks    *keymutex.KeyMutex
	Logger   *zap.Logger
	Ctx      context.Context
	// Actor identifies the operator for audit fields, from the --actor flag
	Actor string
}
