package main

import (
	"fmt"
	"log/slog"

	"github.com/doodlesbykumbi/folio/pkg/config"
	"github.com/doodlesbykumbi/folio/pkg/db"
	"github.com/doodlesbykumbi/folio/pkg/server"
	gormstore "github.com/doodlesbykumbi/folio/pkg/server/store/gorm"
	"github.com/doodlesbykumbi/folio/pkg/server/store/memory"
)

// openStores builds the configured backend. The returned func releases it.
func openStores(cfg *config.FolioConfig, logger *slog.Logger) (server.Stores, func(), error) {
	switch cfg.Store {
	case config.StoreMemory:
		logger.Warn("using the in-memory store; data is lost on exit")
		mem := memory.NewStore()
		return server.Stores{
			Users:    mem.Users(),
			Blogs:    mem.Blogs(),
			Projects: mem.Projects(),
			Skills:   mem.Skills(),
			Contacts: mem.Contacts(),
			Health:   mem.Health(),
		}, func() {}, nil

	case config.StorePostgres:
		database, err := db.Connect(db.Config{URL: cfg.DatabaseURL, Debug: cfg.LogLevel == "debug"})
		if err != nil {
			return server.Stores{}, nil, err
		}
		closeDB := func() {
			if sqlDB, err := database.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return server.Stores{
			Users:    gormstore.NewUsersStore(database, logger),
			Blogs:    gormstore.NewBlogsStore(database, logger),
			Projects: gormstore.NewProjectsStore(database, logger),
			Skills:   gormstore.NewSkillsStore(database, logger),
			Contacts: gormstore.NewContactsStore(database, logger),
			Health:   gormstore.NewHealthStore(database),
		}, closeDB, nil
	}
	return server.Stores{}, nil, fmt.Errorf("unknown store %q", cfg.Store)
}
