package constant

import "time"

const (
	QUERY_TIMEOUT_DURATION = 10 * time.Second

	REQUEST_SUCCESSFUL   = "Request successful"
	REQUEST_UNSUCCESSFUL = "Request unsuccessful"
)

const (
	MinChecklistItems         = 1
	MaxChecklistItems         = 10
	MaxItemTitleLength        = 100
	MaxItemDescriptionLength  = 300
	ChecklistSlugLength       = 16
	ChecklistAdminKeyLength   = 16
	UnclassifiedLabel         = "Unclassified"
	ArchiveDownloadNamePrefix = "DocCollect"
	TemporaryArchiveDirectory = "temp-zips"
	PdfContentType            = "application/pdf"
	ZipContentType            = "application/zip"
	AdminKeyHeader            = "X-Admin-Key"
	AdminKeyQuery             = "key"
	ContextChecklistKey       = "checklist"
)
