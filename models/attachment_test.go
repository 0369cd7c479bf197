package models

import "testing"

func TestAllowedAttachmentType(t *testing.T) {
	for _, mimeType := range []string{"image/jpeg", "image/png", "application/pdf"} {
		if !AllowedAttachmentType(mimeType) {
			t.Errorf("expected %s to be allowed", mimeType)
		}
	}
	for _, mimeType := range []string{"", "image/gif", "text/plain", "application/msword"} {
		if AllowedAttachmentType(mimeType) {
			t.Errorf("expected %s to be rejected", mimeType)
		}
	}
}

func TestGetFileSizeInMB(t *testing.T) {
	attachment := Attachment{FileSize: 5 * 1024 * 1024}
	if got := attachment.GetFileSizeInMB(); got != 5 {
		t.Errorf("expected 5 MB, got %v", got)
	}
}
