package registry

import (
	"encoding/json"
	"time"
)

// DownloadEvent records a single successful download. The gateway
// publishes one to NSQ per download; the download_recorder worker
// appends it to the metadata store's download_events collection.
// The statistics aggregator reads only the collection's size.
type DownloadEvent struct {
	FileName     string    `json:"file_name"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// NewDownloadEvent returns a DownloadEvent for fileName stamped
// with the current UTC time.
func NewDownloadEvent(fileName string) *DownloadEvent {
	return &DownloadEvent{
		FileName:     fileName,
		DownloadedAt: time.Now().UTC(),
	}
}

// DownloadEventFromJSON creates a DownloadEvent from its JSON
// representation.
func DownloadEventFromJSON(jsonData string) (*DownloadEvent, error) {
	e := &DownloadEvent{}
	err := json.Unmarshal([]byte(jsonData), e)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ToJSON converts this DownloadEvent to its JSON representation.
func (e *DownloadEvent) ToJSON() (string, error) {
	bytes, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
