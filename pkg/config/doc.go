// Package config loads simple-rbac configuration from the environment.
//
// Every setting is a field with cleanenv `env` and `env-default` tags, so a
// bare environment yields a runnable in-memory server:
//
//	cfg, err := config.Load(".env")
//	if err != nil {
//		// unreadable or invalid environment
//	}
//
// # Persistence
//
//	IDM_PERSISTENCE=memory|postgres|gorm-postgres|gorm-sqlite
//	IDM_SQLITE_PATH=idm.db
//	IDM_PG_MIGRATE=true
//	IDM_PG_HOST, IDM_PG_PORT, IDM_PG_DATABASE, IDM_PG_USER, IDM_PG_PASSWORD, IDM_PG_SCHEMA
//
// # Password hashing
//
//	PASSWORD_HASH_ALGORITHM=bcrypt|argon2id
//	PASSWORD_BCRYPT_COST=10
//
// # HTTP
//
//	HTTP_HOST, HTTP_PORT
//	API_PREFIX_BASE, API_PREFIX_PRIVILEGES, API_PREFIX_ROLES, API_PREFIX_USERS
package config
