package store

// schemaVersion is the target schema version for this build.
const schemaVersion = 1

var schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	scenario   TEXT NOT NULL DEFAULT '',
	m0 REAL NOT NULL, m1 REAL NOT NULL, m2 REAL NOT NULL,
	c0 REAL NOT NULL, c1 REAL NOT NULL, c2 REAL NOT NULL,
	x0 REAL NOT NULL, x1 REAL NOT NULL, x2 REAL NOT NULL,
	mediator   REAL NOT NULL,
	efg_path   TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS outcomes (
	run_id    TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position  INTEGER NOT NULL,
	label     TEXT NOT NULL,
	coalition INTEGER NOT NULL,
	p0 REAL NOT NULL, p1 REAL NOT NULL, p2 REAL NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
