package db

import "strings"

// Migration is one versioned schema change. Up holds the DDL per dialect name
// (see dbal.Dialect.Name).
type Migration struct {
	Version int
	Name    string
	Up      map[string][]string
}

// migrations is the list of all migrations in order.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_fleets",
		Up: map[string][]string{
			"sqlite": {
				`CREATE TABLE IF NOT EXISTS fleets (
	fleet_id INTEGER PRIMARY KEY AUTOINCREMENT,
	fleet_owner INTEGER NOT NULL DEFAULT 0,
	fleet_mission INTEGER NOT NULL DEFAULT 0,
	fleet_amount REAL NOT NULL DEFAULT 0,
	fleet_array TEXT NOT NULL DEFAULT '',
	fleet_start_time INTEGER NOT NULL DEFAULT 0,
	fleet_start_planet_id INTEGER NOT NULL DEFAULT 0,
	fleet_start_galaxy INTEGER NOT NULL DEFAULT 0,
	fleet_start_system INTEGER NOT NULL DEFAULT 0,
	fleet_start_planet INTEGER NOT NULL DEFAULT 0,
	fleet_start_type INTEGER NOT NULL DEFAULT 1,
	fleet_end_time INTEGER NOT NULL DEFAULT 0,
	fleet_end_stay INTEGER NOT NULL DEFAULT 0,
	fleet_end_planet_id INTEGER NOT NULL DEFAULT 0,
	fleet_end_galaxy INTEGER NOT NULL DEFAULT 0,
	fleet_end_system INTEGER NOT NULL DEFAULT 0,
	fleet_end_planet INTEGER NOT NULL DEFAULT 0,
	fleet_end_type INTEGER NOT NULL DEFAULT 1,
	fleet_resource_metal TEXT NOT NULL DEFAULT '0',
	fleet_resource_crystal TEXT NOT NULL DEFAULT '0',
	fleet_resource_deuterium TEXT NOT NULL DEFAULT '0',
	fleet_target_owner INTEGER NOT NULL DEFAULT 0,
	fleet_group TEXT NOT NULL DEFAULT '',
	fleet_mess INTEGER NOT NULL DEFAULT 0,
	start_time INTEGER NOT NULL DEFAULT 0
)`,
				`CREATE INDEX IF NOT EXISTS idx_fleets_owner ON fleets(fleet_owner)`,
				`CREATE INDEX IF NOT EXISTS idx_fleets_group ON fleets(fleet_group)`,
			},
			"postgres": {
				`CREATE TABLE IF NOT EXISTS fleets (
	fleet_id BIGSERIAL PRIMARY KEY,
	fleet_owner BIGINT NOT NULL DEFAULT 0,
	fleet_mission INTEGER NOT NULL DEFAULT 0,
	fleet_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
	fleet_array TEXT NOT NULL DEFAULT '',
	fleet_start_time BIGINT NOT NULL DEFAULT 0,
	fleet_start_planet_id BIGINT NOT NULL DEFAULT 0,
	fleet_start_galaxy INTEGER NOT NULL DEFAULT 0,
	fleet_start_system INTEGER NOT NULL DEFAULT 0,
	fleet_start_planet INTEGER NOT NULL DEFAULT 0,
	fleet_start_type INTEGER NOT NULL DEFAULT 1,
	fleet_end_time BIGINT NOT NULL DEFAULT 0,
	fleet_end_stay BIGINT NOT NULL DEFAULT 0,
	fleet_end_planet_id BIGINT NOT NULL DEFAULT 0,
	fleet_end_galaxy INTEGER NOT NULL DEFAULT 0,
	fleet_end_system INTEGER NOT NULL DEFAULT 0,
	fleet_end_planet INTEGER NOT NULL DEFAULT 0,
	fleet_end_type INTEGER NOT NULL DEFAULT 1,
	fleet_resource_metal NUMERIC(32,8) NOT NULL DEFAULT 0,
	fleet_resource_crystal NUMERIC(32,8) NOT NULL DEFAULT 0,
	fleet_resource_deuterium NUMERIC(32,8) NOT NULL DEFAULT 0,
	fleet_target_owner BIGINT NOT NULL DEFAULT 0,
	fleet_group VARCHAR(64) NOT NULL DEFAULT '',
	fleet_mess SMALLINT NOT NULL DEFAULT 0,
	start_time BIGINT NOT NULL DEFAULT 0
)`,
				`CREATE INDEX IF NOT EXISTS idx_fleets_owner ON fleets(fleet_owner)`,
				`CREATE INDEX IF NOT EXISTS idx_fleets_group ON fleets(fleet_group)`,
			},
			"mysql": {
				`CREATE TABLE IF NOT EXISTS fleets (
	fleet_id BIGINT AUTO_INCREMENT PRIMARY KEY,
	fleet_owner BIGINT NOT NULL DEFAULT 0,
	fleet_mission INT NOT NULL DEFAULT 0,
	fleet_amount DOUBLE NOT NULL DEFAULT 0,
	fleet_array VARCHAR(2048) NOT NULL DEFAULT '',
	fleet_start_time BIGINT NOT NULL DEFAULT 0,
	fleet_start_planet_id BIGINT NOT NULL DEFAULT 0,
	fleet_start_galaxy INT NOT NULL DEFAULT 0,
	fleet_start_system INT NOT NULL DEFAULT 0,
	fleet_start_planet INT NOT NULL DEFAULT 0,
	fleet_start_type INT NOT NULL DEFAULT 1,
	fleet_end_time BIGINT NOT NULL DEFAULT 0,
	fleet_end_stay BIGINT NOT NULL DEFAULT 0,
	fleet_end_planet_id BIGINT NOT NULL DEFAULT 0,
	fleet_end_galaxy INT NOT NULL DEFAULT 0,
	fleet_end_system INT NOT NULL DEFAULT 0,
	fleet_end_planet INT NOT NULL DEFAULT 0,
	fleet_end_type INT NOT NULL DEFAULT 1,
	fleet_resource_metal DECIMAL(32,8) NOT NULL DEFAULT 0,
	fleet_resource_crystal DECIMAL(32,8) NOT NULL DEFAULT 0,
	fleet_resource_deuterium DECIMAL(32,8) NOT NULL DEFAULT 0,
	fleet_target_owner BIGINT NOT NULL DEFAULT 0,
	fleet_group VARCHAR(64) NOT NULL DEFAULT '',
	fleet_mess TINYINT NOT NULL DEFAULT 0,
	start_time BIGINT NOT NULL DEFAULT 0,
	INDEX idx_fleets_owner (fleet_owner),
	INDEX idx_fleets_group (fleet_group)
) ENGINE=InnoDB`,
			},
		},
	},
	{
		Version: 2,
		Name:    "create_fleet_logs",
		Up: map[string][]string{
			"sqlite": {
				`CREATE TABLE IF NOT EXISTS fleet_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	fleet_id INTEGER NOT NULL,
	actor_id TEXT NOT NULL DEFAULT '',
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT NOT NULL DEFAULT '',
	old_value TEXT NOT NULL DEFAULT '',
	new_value TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
)`,
				`CREATE INDEX IF NOT EXISTS idx_fleet_logs_fleet ON fleet_logs(fleet_id)`,
				`CREATE INDEX IF NOT EXISTS idx_fleet_logs_created ON fleet_logs(created_at)`,
			},
			"postgres": {
				`CREATE TABLE IF NOT EXISTS fleet_logs (
	id BIGSERIAL PRIMARY KEY,
	fleet_id BIGINT NOT NULL,
	actor_id TEXT NOT NULL DEFAULT '',
	action VARCHAR(16) NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT NOT NULL DEFAULT '',
	old_value TEXT NOT NULL DEFAULT '',
	new_value TEXT NOT NULL DEFAULT '',
	created_at BIGINT NOT NULL
)`,
				`CREATE INDEX IF NOT EXISTS idx_fleet_logs_fleet ON fleet_logs(fleet_id)`,
				`CREATE INDEX IF NOT EXISTS idx_fleet_logs_created ON fleet_logs(created_at)`,
			},
			"mysql": {
				`CREATE TABLE IF NOT EXISTS fleet_logs (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	fleet_id BIGINT NOT NULL,
	actor_id VARCHAR(128) NOT NULL DEFAULT '',
	action VARCHAR(16) NOT NULL,
	field_name VARCHAR(64) NOT NULL DEFAULT '',
	old_value VARCHAR(2048) NOT NULL DEFAULT '',
	new_value VARCHAR(2048) NOT NULL DEFAULT '',
	created_at BIGINT NOT NULL,
	INDEX idx_fleet_logs_fleet (fleet_id),
	INDEX idx_fleet_logs_created (created_at)
) ENGINE=InnoDB`,
			},
		},
	},
}

// GetSchemaSQL returns the complete SQLite schema for use by tests.
// It is assembled from the migrations so tests cannot drift from production.
func GetSchemaSQL() string {
	var b strings.Builder
	for _, m := range migrations {
		for _, stmt := range m.Up["sqlite"] {
			b.WriteString(stmt)
			b.WriteString(";\n")
		}
	}
	return b.String()
}

// LatestVersion returns the highest migration version.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}
