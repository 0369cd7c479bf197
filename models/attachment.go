package models

import (
	"time"
)

// MaxAttachmentSize is the upload size cap per receipt file (50 MB).
const MaxAttachmentSize = 50 * 1024 * 1024

// Attachment is a receipt file tied to a claim. Attachments are created
// together with their claim and never mutated afterwards.
type Attachment struct {
	AttachmentID uint      `gorm:"primaryKey;column:attachment_id" json:"attachment_id"`
	ClaimID      string    `gorm:"column:claim_id" json:"claim_id"`
	FileName     string    `gorm:"column:file_name" json:"file_name"`
	FileURL      string    `gorm:"column:file_url" json:"file_url"`
	FileSize     int64     `gorm:"column:file_size" json:"file_size"`
	MimeType     string    `gorm:"column:mime_type" json:"mime_type"`
	CreateAt     time.Time `gorm:"column:create_at" json:"create_at"`
}

// TableName overrides
func (Attachment) TableName() string {
	return "attachments"
}

// AllowedAttachmentType reports whether a MIME type may be attached to a
// claim. Receipts are limited to JPEG, PNG and PDF.
func AllowedAttachmentType(mimeType string) bool {
	validTypes := []string{"image/jpeg", "image/png", "application/pdf"}
	for _, validType := range validTypes {
		if mimeType == validType {
			return true
		}
	}
	return false
}

// GetFileSizeInMB returns the attachment size in megabytes.
func (a *Attachment) GetFileSizeInMB() float64 {
	return float64(a.FileSize) / (1024 * 1024)
}
