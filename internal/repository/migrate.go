package repository

import "gorm.io/gorm"

// Migrate creates the tables owned by this service. Production schemas
// additionally carry a capacity guard (trigger or exclusion constraint)
// on bookings so two concurrent inserts cannot both take the last room;
// its violation surfaces to the service layer as a 23505/23P01 error.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&propertyModel{}, &bookingModel{}); err != nil {
		return err
	}
	return db.Exec(
		`CREATE INDEX IF NOT EXISTS idx_bookings_conflict_scan
		 ON bookings (property_id, status, date_from, date_to)`,
	).Error
}
