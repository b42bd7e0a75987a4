package registry_test

import (
	"testing"
	"time"

	"github.com/filedepot/gateway-services/models/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRecordBlobKey(t *testing.T) {
	record := &registry.FileRecord{FileName: "report.pdf"}
	assert.Equal(t, "files/report.pdf", record.BlobKey())
}

func TestFileRecordDisplayDate(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	record := &registry.FileRecord{
		UploadDate: time.Date(2024, 5, 4, 15, 30, 0, 0, loc),
	}
	assert.Equal(t, "2024-05-04T12:30:00Z", record.DisplayDate())
}

func TestFileRecordJSON(t *testing.T) {
	record := &registry.FileRecord{
		ID:         "abc-123",
		FileName:   "report.pdf",
		UploadDate: time.Date(2024, 5, 4, 12, 30, 0, 0, time.UTC),
		FileURL:    "https://example.com/signed",
	}
	jsonData, err := record.ToJSON()
	require.NoError(t, err)

	restored, err := registry.FileRecordFromJSON(jsonData)
	require.NoError(t, err)
	assert.Equal(t, record.ID, restored.ID)
	assert.Equal(t, record.FileName, restored.FileName)
	assert.True(t, record.UploadDate.Equal(restored.UploadDate))
	assert.Equal(t, record.FileURL, restored.FileURL)
}

func TestDownloadEventJSON(t *testing.T) {
	event := registry.NewDownloadEvent("report.pdf")
	assert.Equal(t, "report.pdf", event.FileName)
	assert.False(t, event.DownloadedAt.IsZero())

	jsonData, err := event.ToJSON()
	require.NoError(t, err)
	restored, err := registry.DownloadEventFromJSON(jsonData)
	require.NoError(t, err)
	assert.Equal(t, event.FileName, restored.FileName)
}
