package store

// Schema is the analyses schema, applied on every Open.
const Schema = `
CREATE TABLE IF NOT EXISTS analyses (
    id              TEXT PRIMARY KEY,
    url             TEXT NOT NULL,
    device_type     TEXT NOT NULL DEFAULT 'desktop',
    title           TEXT NOT NULL DEFAULT '',
    total_score     INTEGER NOT NULL,
    report_json     TEXT NOT NULL,
    screenshot_path TEXT NOT NULL DEFAULT '',
    snapshot_path   TEXT NOT NULL DEFAULT '',
    duration_ms     INTEGER NOT NULL DEFAULT 0,
    created_at      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_time ON analyses(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_analyses_url ON analyses(url, created_at DESC);
`
