// Package config resolves application settings from flags, environment
// variables, an optional config file and a .env file.
//
// Environment variables use the BIBLIOTHEK_ prefix, for example
// BIBLIOTHEK_DB_PATH or BIBLIOTHEK_CACHE_TTL=30m. The API key is read from
// BIBLIOTHEK_API_KEY, then GEMINI_API_KEY, then API_KEY.
package config
