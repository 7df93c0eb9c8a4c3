package repository

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id UUID PRIMARY KEY,
		share_code TEXT NOT NULL UNIQUE,
		group_code TEXT,
		seed TEXT,
		team_score DOUBLE PRECISION NOT NULL,
		used_fallback_stats BOOLEAN NOT NULL DEFAULT FALSE,
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS runs_leaderboard_idx ON runs (group_code, team_score DESC, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS run_picks (
		run_id UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		slot TEXT NOT NULL,
		player_name TEXT NOT NULL,
		team_abbr TEXT NOT NULL,
		team_name TEXT NOT NULL,
		bpm DOUBLE PRECISION NOT NULL,
		ws48 DOUBLE PRECISION NOT NULL,
		vorp DOUBLE PRECISION NOT NULL,
		epm DOUBLE PRECISION NOT NULL,
		norm_bpm DOUBLE PRECISION NOT NULL,
		norm_ws48 DOUBLE PRECISION NOT NULL,
		norm_vorp DOUBLE PRECISION NOT NULL,
		norm_epm DOUBLE PRECISION NOT NULL,
		contribution DOUBLE PRECISION NOT NULL,
		used_fallback BOOLEAN NOT NULL DEFAULT FALSE,
		is_penalty BOOLEAN NOT NULL DEFAULT FALSE,
		seasons_used JSONB,
		PRIMARY KEY (run_id, slot)
	)`,
	`CREATE TABLE IF NOT EXISTS draft_sessions (
		id UUID PRIMARY KEY,
		session_token TEXT NOT NULL UNIQUE,
		group_code TEXT,
		seed TEXT,
		draw_sequence JSONB NOT NULL,
		current_draw_index INTEGER NOT NULL DEFAULT 0,
		lineup JSONB NOT NULL,
		chosen_players JSONB NOT NULL,
		draw_started_at BIGINT NOT NULL,
		status TEXT NOT NULL DEFAULT 'DRAFTING',
		run_id UUID REFERENCES runs(id),
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		share_code TEXT NOT NULL UNIQUE,
		group_code TEXT,
		seed TEXT,
		team_score REAL NOT NULL,
		used_fallback_stats INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS runs_leaderboard_idx ON runs (group_code, team_score DESC, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS run_picks (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		slot TEXT NOT NULL,
		player_name TEXT NOT NULL,
		team_abbr TEXT NOT NULL,
		team_name TEXT NOT NULL,
		bpm REAL NOT NULL,
		ws48 REAL NOT NULL,
		vorp REAL NOT NULL,
		epm REAL NOT NULL,
		norm_bpm REAL NOT NULL,
		norm_ws48 REAL NOT NULL,
		norm_vorp REAL NOT NULL,
		norm_epm REAL NOT NULL,
		contribution REAL NOT NULL,
		used_fallback INTEGER NOT NULL DEFAULT 0,
		is_penalty INTEGER NOT NULL DEFAULT 0,
		seasons_used BLOB,
		PRIMARY KEY (run_id, slot)
	)`,
	`CREATE TABLE IF NOT EXISTS draft_sessions (
		id TEXT PRIMARY KEY,
		session_token TEXT NOT NULL UNIQUE,
		group_code TEXT,
		seed TEXT,
		draw_sequence BLOB NOT NULL,
		current_draw_index INTEGER NOT NULL DEFAULT 0,
		lineup BLOB NOT NULL,
		chosen_players BLOB NOT NULL,
		draw_started_at INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'DRAFTING',
		run_id TEXT REFERENCES runs(id),
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
}
