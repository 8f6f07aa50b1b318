package app

import (
	"gorm.io/gorm"

	"github.com/talkincode/taskrest/config"
	"github.com/talkincode/taskrest/internal/repository"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// ConnectionsProvider hands out per-call database connections
type ConnectionsProvider interface {
	Connections() repository.ConnectionProvider
}

// AppContext combines all provider interfaces for full application context
type AppContext interface {
	DBProvider
	ConfigProvider
	ConnectionsProvider

	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
