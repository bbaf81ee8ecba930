package staff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"presensi_backend/internals/features/staff/staff/dto"
	"presensi_backend/internals/features/staff/staff/repository"

	"gorm.io/gorm"
)

// SeedStaffFromJSON: isi roster dari file JSON; id yang sudah ada dilewati.
// Return jumlah staff baru.
func SeedStaffFromJSON(ctx context.Context, db *gorm.DB, filePath string) (int, error) {
	log.Println("📥 Membaca file staff:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var inputs []dto.CreateStaffRequest
	if err := json.Unmarshal(file, &inputs); err != nil {
		return 0, fmt.Errorf("decode seed file: %w", err)
	}

	repo := repository.NewStaffRepo(db)
	created := 0
	for _, data := range inputs {
		m, err := data.ToModel()
		if err != nil {
			log.Printf("❌ Data staff tidak valid (%q): %v", data.ID, err)
			continue
		}
		if err := repo.PutIfAbsent(ctx, &m); err != nil {
			if errors.Is(err, repository.ErrStaffExists) {
				log.Printf("ℹ️ Staff id=%d sudah ada, dilewati.", m.StaffID)
				continue
			}
			return created, fmt.Errorf("seed staff %d: %w", m.StaffID, err)
		}
		created++
		log.Printf("✅ Berhasil insert staff id=%d '%s'", m.StaffID, m.StaffName)
	}
	return created, nil
}
