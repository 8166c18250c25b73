package store

// Schema DDL for the configuration store.
const createConfigurations = `CREATE TABLE IF NOT EXISTS configurations (
    config_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    context TEXT NOT NULL,
    payload TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
