package helper

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
)

// Kandidat nama field multipart yang umum dipakai FE/Postman.
var defaultFileFieldCandidates = []string{"file", "files", "files[]", "upload", "attachment"}

// FirstUploadFile mengambil file pertama dari form multipart sesuai urutan kandidat field.
// Return nil kalau request bukan multipart atau tidak ada file.
func FirstUploadFile(c *fiber.Ctx, candidates ...string) *multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil || form.File == nil {
		return nil
	}
	if len(candidates) == 0 {
		candidates = defaultFileFieldCandidates
	}
	for _, key := range candidates {
		for _, fh := range form.File[key] {
			if fh != nil && fh.Filename != "" {
				return fh
			}
		}
	}
	return nil
}
