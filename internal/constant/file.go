package constant

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// FileStatus is the placement state of an uploaded document.
// Only the two values below exist, anything else is rejected on the way in and out of the database.
type FileStatus string

const (
	FileStatusUploaded     FileStatus = "uploaded"
	FileStatusUnclassified FileStatus = "unclassified"
)

func (s FileStatus) Valid() bool {
	switch s {
	case FileStatusUploaded, FileStatusUnclassified:
		return true
	}
	return false
}

func (s FileStatus) String() string {
	return string(s)
}

func (s FileStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid file status: %q", string(s))
	}
	return string(s), nil
}

func (s *FileStatus) Scan(value any) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into FileStatus", value)
	}

	status := FileStatus(raw)
	if !status.Valid() {
		return fmt.Errorf("invalid file status: %q", raw)
	}
	*s = status
	return nil
}

func (s *FileStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	status := FileStatus(raw)
	if !status.Valid() {
		return fmt.Errorf("invalid file status: %q", raw)
	}
	*s = status
	return nil
}

// Derive status from placement, a file is uploaded exactly when it sits on an item.
func FileStatusForItem(itemID *string) FileStatus {
	if itemID == nil || *itemID == "" {
		return FileStatusUnclassified
	}
	return FileStatusUploaded
}

// ItemStatus is what the public checklist shows per requirement.
type ItemStatus string

const (
	ItemStatusMissing  ItemStatus = "missing"
	ItemStatusUploaded ItemStatus = "uploaded"
)
