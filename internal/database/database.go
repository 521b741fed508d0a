package database

import (
	"fmt"
	"strings"

	"recstudio/internal/domain"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// registers the cgo-free "sqlite" driver used below
	_ "modernc.org/sqlite"
)

// Connect opens Postgres when the DSN carries a postgres scheme, otherwise
// treats the DSN as a SQLite file path (dev and tests).
func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate brings the schema up to date. On Postgres it additionally installs
// exclusion constraints so overlapping non-cancelled sessions on the same
// room or engineer are rejected by the database itself, closing the window
// between the application-level conflict check and the insert. SQLite has no
// equivalent; there the application check is the only guard.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Studio{},
		&domain.Member{},
		&domain.Room{},
		&domain.Client{},
		&domain.Gear{},
		&domain.StudioDefaults{},
		&domain.Session{},
		&domain.GearAssignment{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	if err := db.Exec(
		`CREATE INDEX IF NOT EXISTS idx_sessions_studio_start ON sessions (studio_id, start_time)`,
	).Error; err != nil {
		return fmt.Errorf("create sessions index: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		return installOverlapGuards(db)
	}
	return nil
}

func installOverlapGuards(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("create btree_gist extension: %w", err)
	}

	stmts := []string{
		`DO $$
BEGIN
    IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'sessions_room_no_overlap') THEN
        ALTER TABLE sessions
            ADD CONSTRAINT sessions_room_no_overlap
            EXCLUDE USING gist (
                room_id WITH =,
                tstzrange(start_time, end_time, '[)') WITH &&
            ) WHERE (status <> 'cancelled');
    END IF;
END$$`,
		`DO $$
BEGIN
    IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'sessions_engineer_no_overlap') THEN
        ALTER TABLE sessions
            ADD CONSTRAINT sessions_engineer_no_overlap
            EXCLUDE USING gist (
                engineer_id WITH =,
                tstzrange(start_time, end_time, '[)') WITH &&
            ) WHERE (status <> 'cancelled' AND engineer_id IS NOT NULL);
    END IF;
END$$`,
	}

	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("install overlap guard: %w", err)
		}
	}
	return nil
}
