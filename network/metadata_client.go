package network

import (
	"fmt"
	"sort"

	"github.com/filedepot/gateway-services/constants"
	"github.com/filedepot/gateway-services/models/registry"
	"github.com/go-redis/redis/v7"
	"github.com/google/uuid"
)

// MetadataClient is the document store adapter. FileRecords live as
// JSON in one redis hash keyed by record ID; download events live as
// JSON in a separate redis list, appended by the download_recorder
// worker and read (length only) by the statistics aggregator.
type MetadataClient struct {
	client *redis.Client
}

func NewMetadataClient(address, password string, db int) *MetadataClient {
	return &MetadataClient{
		client: redis.NewClient(&redis.Options{
			Addr:     address,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *MetadataClient) Ping() (string, error) {
	return c.client.Ping().Result()
}

// FileRecordSave stores the record. If the record has no ID yet, this
// assigns one. Records are never updated in place by the gateway, but
// the store itself does not forbid it.
func (c *MetadataClient) FileRecordSave(record *registry.FileRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	jsonData, err := record.ToJSON()
	if err != nil {
		return err
	}
	_, err = c.client.HSet(constants.FileRecordsKey, record.ID, jsonData).Result()
	return err
}

// FileRecordGet returns the record with the given ID, or nil if no
// such record exists. A missing record is not an error here; callers
// decide whether absence is a problem.
func (c *MetadataClient) FileRecordGet(id string) (*registry.FileRecord, error) {
	data, err := c.client.HGet(constants.FileRecordsKey, id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FileRecordGet (%s): %s", id, err.Error())
	}
	return registry.FileRecordFromJSON(data)
}

// FileRecordList returns all records, oldest upload first. There is
// no pagination; the result is as large as the corpus.
func (c *MetadataClient) FileRecordList() ([]*registry.FileRecord, error) {
	data, err := c.client.HGetAll(constants.FileRecordsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("FileRecordList: %s", err.Error())
	}
	records := make([]*registry.FileRecord, 0, len(data))
	for id, jsonData := range data {
		record, err := registry.FileRecordFromJSON(jsonData)
		if err != nil {
			return nil, fmt.Errorf("FileRecordList (%s): %s", id, err.Error())
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].UploadDate.Equal(records[j].UploadDate) {
			return records[i].FileName < records[j].FileName
		}
		return records[i].UploadDate.Before(records[j].UploadDate)
	})
	return records, nil
}

// FileRecordDelete removes the record with the given ID. Deleting a
// record that does not exist is not an error.
func (c *MetadataClient) FileRecordDelete(id string) error {
	_, err := c.client.HDel(constants.FileRecordsKey, id).Result()
	return err
}

// DownloadEventAdd appends one event document to the download events
// collection.
func (c *MetadataClient) DownloadEventAdd(event *registry.DownloadEvent) error {
	jsonData, err := event.ToJSON()
	if err != nil {
		return err
	}
	_, err = c.client.RPush(constants.DownloadEventsKey, jsonData).Result()
	return err
}

// DownloadCount returns the size of the download events collection,
// which by contract equals the total number of downloads.
func (c *MetadataClient) DownloadCount() (int64, error) {
	return c.client.LLen(constants.DownloadEventsKey).Result()
}
