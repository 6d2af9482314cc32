package domain

import "time"

// TicketAttachment stores metadata for an uploaded file. FileName keeps the
// original name for display; URL points at the sanitized stored copy.
type TicketAttachment struct {
	ID         string
	TicketID   string
	FileName   string
	FileType   string
	FileSize   int64
	URL        string
	UploadedAt time.Time
}
