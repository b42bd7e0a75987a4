package network_test

import (
	"testing"
	"time"

	"github.com/filedepot/gateway-services/models/registry"
	"github.com/filedepot/gateway-services/network"
	"github.com/filedepot/gateway-services/util/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetadataClient(t *testing.T) *network.MetadataClient {
	server := testutil.NewRedisServer()
	t.Cleanup(server.Close)
	return network.NewMetadataClient(server.Addr(), "", 0)
}

func TestMetadataPing(t *testing.T) {
	client := newMetadataClient(t)
	response, err := client.Ping()
	require.NoError(t, err)
	assert.Equal(t, "PONG", response)
}

func TestFileRecordSaveAssignsID(t *testing.T) {
	client := newMetadataClient(t)
	record := &registry.FileRecord{
		FileName:   "report.pdf",
		UploadDate: time.Now().UTC(),
		FileURL:    "https://example.com/signed",
	}
	require.NoError(t, client.FileRecordSave(record))
	assert.NotEmpty(t, record.ID)

	retrieved, err := client.FileRecordGet(record.ID)
	require.NoError(t, err)
	require.NotNil(t, retrieved)
	assert.Equal(t, record.FileName, retrieved.FileName)
	assert.Equal(t, record.FileURL, retrieved.FileURL)
}

func TestFileRecordGetMissing(t *testing.T) {
	client := newMetadataClient(t)
	record, err := client.FileRecordGet("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestFileRecordListOrder(t *testing.T) {
	client := newMetadataClient(t)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	offsets := map[string]time.Duration{
		"first.txt":  0,
		"second.txt": time.Hour,
		"third.txt":  2 * time.Hour,
	}
	// Inserted out of date order; listing sorts oldest first.
	for _, name := range []string{"third.txt", "first.txt", "second.txt"} {
		record := &registry.FileRecord{
			FileName:   name,
			UploadDate: base.Add(offsets[name]),
			FileURL:    "https://example.com/" + name,
		}
		require.NoError(t, client.FileRecordSave(record))
	}
	records, err := client.FileRecordList()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "first.txt", records[0].FileName)
	assert.Equal(t, "second.txt", records[1].FileName)
	assert.Equal(t, "third.txt", records[2].FileName)
}

func TestFileRecordDelete(t *testing.T) {
	client := newMetadataClient(t)
	record := &registry.FileRecord{FileName: "report.pdf", UploadDate: time.Now().UTC()}
	require.NoError(t, client.FileRecordSave(record))

	require.NoError(t, client.FileRecordDelete(record.ID))
	retrieved, err := client.FileRecordGet(record.ID)
	require.NoError(t, err)
	assert.Nil(t, retrieved)

	// Deleting again is not an error.
	assert.NoError(t, client.FileRecordDelete(record.ID))
}

func TestDownloadEvents(t *testing.T) {
	client := newMetadataClient(t)
	count, err := client.DownloadCount()
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	require.NoError(t, client.DownloadEventAdd(registry.NewDownloadEvent("a.txt")))
	require.NoError(t, client.DownloadEventAdd(registry.NewDownloadEvent("b.txt")))

	count, err = client.DownloadCount()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
