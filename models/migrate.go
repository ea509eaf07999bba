package models

import "gorm.io/gorm"

// Migrate runs the schema migration and creates the indexes AutoMigrate
// cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &Tool{}, &Loan{}, &Room{}, &Reservation{}, &Report{}, &PushToken{}); err != nil {
		return err
	}

	// Backstop for concurrent reservation creation: at most one live
	// (pending/approved) reservation may start at a given room, date and
	// time. The availability pre-check catches ordinary overlaps; this
	// index makes the check-then-insert safe against races on the same
	// slot. Partial indexes work on both PostgreSQL and SQLite.
	if err := db.Exec(`
	  CREATE UNIQUE INDEX IF NOT EXISTS reservations_one_live_per_slot
	  ON reservations (room_id, date, start_time)
	  WHERE state IN ('pending', 'approved');
	`).Error; err != nil {
		return err
	}

	// Speeds up the per-day availability listing.
	if err := db.Exec(`
	  CREATE INDEX IF NOT EXISTS reservations_room_date
	  ON reservations (room_id, date);
	`).Error; err != nil {
		return err
	}

	return nil
}
