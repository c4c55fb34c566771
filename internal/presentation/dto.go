package presentation

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/zjrosen/skinstore/internal/skin"
)

// RecordDTO describes a stored skin without its raw payloads.
type RecordDTO struct {
	Name          string `json:"name"`
	ID            string `json:"id"`
	GeometryName  string `json:"geometry_name"`
	ImageBytes    int    `json:"image_bytes"`
	CapeBytes     int    `json:"cape_bytes"`
	GeometryBytes int    `json:"geometry_bytes"`
	ImageSHA256   string `json:"image_sha256"`
	Current       bool   `json:"current,omitempty"`
}

// FromRecord converts a stored record to a DTO.
func FromRecord(name string, rec skin.Record, current bool) RecordDTO {
	sum := sha256.Sum256(rec.ImageData)
	return RecordDTO{
		Name:          name,
		ID:            rec.ID,
		GeometryName:  rec.GeometryName,
		ImageBytes:    len(rec.ImageData),
		CapeBytes:     len(rec.CapeData),
		GeometryBytes: len(rec.GeometryData),
		ImageSHA256:   hex.EncodeToString(sum[:]),
		Current:       current,
	}
}
