package database

import (
	"embed"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func (s *DB) migrateDB() error {
	log := s.log.Function("migrateDB")

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return log.Err("failed to get database for migrations", err)
	}

	source := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}

	applied, err := migrate.Exec(sqlDB, "sqlite3", source, migrate.Up)
	if err != nil {
		return log.Err("failed to run migrations", err)
	}

	log.Info("Migrations applied", "count", applied)
	return nil
}
