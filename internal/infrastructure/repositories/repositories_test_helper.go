package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		username TEXT UNIQUE,
		password_hash TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		is_admin BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createCredentialTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE credentials (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		data_encrypted BLOB NOT NULL,
		iv BLOB,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createShareTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE shares (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		credential_id INTEGER NOT NULL,
		shared_with_user_id INTEGER NOT NULL,
		permission TEXT NOT NULL DEFAULT 'read',
		expires_at DATETIME,
		created_at DATETIME,
		UNIQUE (credential_id, shared_with_user_id)
	);`)
}

func createEkycSessionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE ekyc_sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		provider TEXT,
		reference_id TEXT,
		result_json TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createAuditLogTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE audit_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER,
		action TEXT NOT NULL,
		resource_type TEXT,
		resource_id INTEGER,
		ip_address TEXT,
		user_agent TEXT,
		created_at DATETIME
	);`)
}

func createVaultTables(t *testing.T, db *gorm.DB) {
	createUserTable(t, db)
	createCredentialTable(t, db)
	createShareTable(t, db)
	createEkycSessionTable(t, db)
	createAuditLogTable(t, db)
}
