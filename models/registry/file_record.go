package registry

import (
	"encoding/json"
	"time"

	"github.com/filedepot/gateway-services/constants"
)

// FileRecord is the metadata document describing one uploaded file.
// Each record is intended to correspond to exactly one blob object at
// BlobKey(), though nothing enforces that: an upload that fails between
// the blob write and the record write leaves an orphaned blob, and a
// delete that fails between the blob delete and the record delete
// leaves a dangling record. audit.Reconciler reports both.
type FileRecord struct {
	// ID is assigned by the metadata store when the record is first
	// saved. It is never changed afterward.
	ID string `json:"id"`

	// FileName is the client-supplied logical name, used verbatim as
	// the blob key suffix. Names are not unique: a second upload with
	// the same name overwrites the blob and adds a second record.
	FileName string `json:"file_name"`

	// UploadDate is set once, when the upload is recorded.
	UploadDate time.Time `json:"upload_date"`

	// FileURL is the presigned read link captured at upload time.
	// It expires eventually and is never refreshed in place.
	FileURL string `json:"file_url"`
}

// FileRecordFromJSON creates a FileRecord from its JSON representation.
func FileRecordFromJSON(jsonData string) (*FileRecord, error) {
	r := &FileRecord{}
	err := json.Unmarshal([]byte(jsonData), r)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ToJSON converts this FileRecord to its JSON representation.
func (r *FileRecord) ToJSON() (string, error) {
	bytes, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// BlobKey returns the key of the blob object this record describes.
func (r *FileRecord) BlobKey() string {
	return constants.BlobPrefix + r.FileName
}

// DisplayDate returns the upload date as an RFC 3339 UTC string,
// which is how the List operation presents it to clients.
func (r *FileRecord) DisplayDate() string {
	return r.UploadDate.UTC().Format(time.RFC3339)
}
