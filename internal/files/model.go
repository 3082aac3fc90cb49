package files

import "time"

// FileID is an opaque reference to a stored FileRecord.
type FileID string

// Same reports whether two references identify the same stored file.
// The comparison is on identity, not content: two uploads of byte-identical
// files get distinct IDs and are treated as different files.
func (id FileID) Same(other FileID) bool {
	return id != "" && id == other
}

func (id FileID) String() string { return string(id) }

// FileRecord describes one uploaded document. Records are immutable once
// created; a re-upload always creates a new record and old ones are kept.
type FileRecord struct {
	ID         FileID    `json:"id"`
	FileName   string    `json:"fileName"`
	FileURL    string    `json:"fileUrl"`
	FileType   string    `json:"fileType"`
	UploadDate time.Time `json:"uploadDate"`
}
