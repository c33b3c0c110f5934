package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	types "github.com/igrejaviva/media-backend/internal/domain"
	"github.com/igrejaviva/media-backend/internal/platform/envutil"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := envutil.Get("POSTGRES_HOST", "localhost")
	port := envutil.Get("POSTGRES_PORT", "5432")
	user := envutil.Get("POSTGRES_USER", "postgres")
	password := envutil.Get("POSTGRES_PASSWORD", "")
	name := envutil.Get("POSTGRES_NAME", "media")
	sslmode := envutil.Get("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, password, host, port, name, sslmode)

	serviceLog.Info("Connecting to Postgres...", "host", host, "db", name)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.Admin{},
		&types.AdminToken{},
		&types.Teaching{},
		&types.Track{},
		&types.SoloAudio{},
		&types.Poster{},
		&types.Event{},
		&types.TeachingText{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	if err := s.db.Exec(`
		ALTER TABLE "track"
		DROP CONSTRAINT IF EXISTS "fk_track_teaching_id"
	`).Error; err != nil {
		return fmt.Errorf("failed to drop fk_track_teaching_id: %w", err)
	}
	if err := s.db.Exec(`
		ALTER TABLE "track"
		ADD CONSTRAINT "fk_track_teaching_id"
		FOREIGN KEY ("teaching_id")
		REFERENCES "teaching"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_track_teaching_id: %w", err)
	}
	if err := s.db.Exec(`
		ALTER TABLE "admin_token"
		DROP CONSTRAINT IF EXISTS "fk_admin_token_admin_id"
	`).Error; err != nil {
		return fmt.Errorf("failed to drop fk_admin_token_admin_id: %w", err)
	}
	if err := s.db.Exec(`
		ALTER TABLE "admin_token"
		ADD CONSTRAINT "fk_admin_token_admin_id"
		FOREIGN KEY ("admin_id")
		REFERENCES "admin"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_admin_token_admin_id: %w", err)
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
