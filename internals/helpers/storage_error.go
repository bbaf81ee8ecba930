package helper

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IgnoreDuplicates: klausa insert yang melewati baris dengan key yang sudah ada.
// MySQL → INSERT IGNORE (DoNothing di dialek mysql menjadi ON DUPLICATE KEY UPDATE col=col,
// yang ikut terhitung sebagai affected row); postgres/sqlite → ON CONFLICT DO NOTHING.
func IgnoreDuplicates(db *gorm.DB) clause.Expression {
	if db.Dialector.Name() == "mysql" {
		return clause.Insert{Modifier: "IGNORE"}
	}
	return clause.OnConflict{DoNothing: true}
}

// MapStorageError: error GORM/driver → (status HTTP, pesan).
func MapStorageError(err error) (int, string) {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict, "Data duplikat (unique violation)."
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "Data tidak ditemukan."
	}

	// 23505 = unique_violation, 23503 = foreign_key_violation
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return http.StatusConflict, "Data duplikat (unique violation)."
		case "23503":
			return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."
		}
	}
	return http.StatusInternalServerError, err.Error()
}
