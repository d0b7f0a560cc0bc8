package server

import (
	"fmt"
	"log"

	"taskflow/internal/config"
	"taskflow/internal/model"
	"taskflow/internal/repository"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openStore picks the task store named by cfg.DBDriver. The memory driver
// returns a nil *gorm.DB.
func openStore(cfg *config.Config) (*gorm.DB, repository.TaskRepositoryInterface, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "memory":
		log.Println("⚠️  Using in-memory task store, tasks are lost on restart")
		return nil, repository.NewMemoryTaskRepository(), nil
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	case "postgres", "":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
		)
		dialector = postgres.Open(dsn)
	default:
		return nil, nil, fmt.Errorf("❌ unknown DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Printf("✅ Connected to %s database", dialector.Name())

	if err := db.AutoMigrate(&model.Task{}); err != nil {
		return nil, nil, fmt.Errorf("❌ failed to migrate tasks table: %w", err)
	}

	return db, repository.NewTaskRepository(db), nil
}
