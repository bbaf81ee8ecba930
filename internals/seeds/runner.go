package seeds

import (
	"context"
	"log"

	"presensi_backend/internals/seeds/staff"

	"gorm.io/gorm"
)

func RunAllSeeds(db *gorm.DB, staffFile string) {
	//* Staff roster
	n, err := staff.SeedStaffFromJSON(context.Background(), db, staffFile)
	if err != nil {
		log.Printf("❌ Seed staff gagal: %v", err)
		return
	}
	log.Printf("🌱 Seed staff selesai: %d baru", n)
}
