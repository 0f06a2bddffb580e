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
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT,
		name TEXT,
		password_hash TEXT,
		role TEXT,
		is_active BOOLEAN,
		verification_status TEXT,
		priority_level INTEGER,
		priority_score INTEGER,
		is_single_mother BOOLEAN,
		is_disabled BOOLEAN,
		is_orphanage BOOLEAN,
		family_size INTEGER,
		monthly_income_range TEXT,
		items_received_this_month INTEGER,
		eco_score INTEGER,
		cnic TEXT,
		id_front_key TEXT,
		id_back_key TEXT,
		selfie_with_id_key TEXT,
		needs_description TEXT,
		rejection_reason TEXT,
		verified_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createItemTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE items (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		item_type TEXT NOT NULL,
		category TEXT NOT NULL,
		condition TEXT NOT NULL,
		location TEXT,
		image_keys TEXT,
		asking_price INTEGER,
		status TEXT NOT NULL,
		expires_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createDonationRequestTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE donation_requests (
		id TEXT PRIMARY KEY,
		item_id TEXT NOT NULL,
		receiver_id TEXT NOT NULL,
		donor_id TEXT NOT NULL,
		message TEXT,
		status TEXT NOT NULL,
		priority_score INTEGER,
		meeting_date DATETIME,
		meeting_location TEXT,
		rejection_reason TEXT,
		completed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createPhotoProofTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE photo_proofs (
		id TEXT PRIMARY KEY,
		donation_id TEXT NOT NULL UNIQUE,
		uploader_id TEXT NOT NULL,
		image_key TEXT NOT NULL,
		message TEXT,
		status TEXT NOT NULL,
		rejection_reason TEXT,
		uploaded_at DATETIME,
		verified_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createMessageTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE messages (
		id TEXT PRIMARY KEY,
		sender_id TEXT NOT NULL,
		recipient_id TEXT NOT NULL,
		item_id TEXT,
		content TEXT NOT NULL,
		is_read BOOLEAN,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}
