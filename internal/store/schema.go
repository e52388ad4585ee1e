package store

// Schema holds catalog responses only. Media bytes and settings live on disk.
const Schema = `
CREATE TABLE IF NOT EXISTS catalog_cache (
	key TEXT PRIMARY KEY,
	data BLOB,
	expires_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_catalog_cache_expires_at ON catalog_cache(expires_at);
`
