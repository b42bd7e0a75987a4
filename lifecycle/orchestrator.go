package lifecycle

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/filedepot/gateway-services/constants"
	"github.com/filedepot/gateway-services/models/common"
	"github.com/filedepot/gateway-services/models/registry"
	"github.com/filedepot/gateway-services/models/service"
)

// Orchestrator coordinates the blob store and the metadata store to
// implement upload, list, download and delete as compound operations.
// There are no transactions across the two stores. Every compound
// operation has a documented partial-failure mode and no compensating
// rollback; audit.Reconciler reports the resulting drift.
type Orchestrator struct {
	Context *common.Context
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(context *common.Context) *Orchestrator {
	return &Orchestrator{Context: context}
}

// UploadPayload is one file in an upload batch: the payload stream,
// its size and the content type the client declared for it.
type UploadPayload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// ListEntry is one row of the List result, with the upload date
// already converted to its display string.
type ListEntry struct {
	ID         string `json:"id"`
	FileName   string `json:"fileName"`
	UploadDate string `json:"uploadDate"`
	FileURL    string `json:"fileURL"`
}

// DownloadResult carries the blob stream and the metadata a caller
// needs to relay it. The caller must close Body.
type DownloadResult struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Upload stores each payload in the blob store under
// "files/<name>" and appends a FileRecord for it, strictly in input
// order. It returns one presigned read link per file on full success.
//
// The batch is not transactional. If file k fails, files 1..k-1 stay
// committed in both stores, files k+1..n are never attempted, and the
// whole call reports failure. Within one file the blob write happens
// before the record write, so a record-write failure leaves an
// orphaned blob. A retry of the full batch overwrites the blobs of
// the files that already succeeded and duplicates their records;
// callers must tolerate that.
func (o *Orchestrator) Upload(payloads []*UploadPayload, names []string) ([]string, error) {
	if len(payloads) == 0 || len(names) == 0 {
		return nil, service.NewOperationError(service.KindValidation, "",
			"upload requires at least one file and one file name", nil)
	}
	if len(payloads) != len(names) {
		return nil, service.NewOperationError(service.KindValidation, "",
			fmt.Sprintf("got %d files but %d file names", len(payloads), len(names)), nil)
	}
	links := make([]string, 0, len(payloads))
	for i, payload := range payloads {
		name := names[i]
		link, err := o.uploadOne(payload, name)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

// uploadOne commits a single file: blob first, then link, then record.
func (o *Orchestrator) uploadOne(payload *UploadPayload, name string) (string, error) {
	contentType := payload.ContentType
	if contentType == "" {
		contentType = constants.DefaultContentType
	}
	key := constants.BlobPrefix + name
	err := o.Context.BlobClient.Put(key, payload.Reader, payload.Size, contentType)
	if err != nil {
		return "", service.NewOperationError(service.KindStorageWrite, name,
			fmt.Sprintf("error writing %s to blob store", key), err)
	}
	link, err := o.Context.BlobClient.PresignedGet(key, o.Context.Config.LinkMaxAge)
	if err != nil {
		// The blob is committed but no record will reference it.
		return "", service.NewOperationError(service.KindStorageWrite, name,
			fmt.Sprintf("error generating read link for %s", key), err)
	}
	record := &registry.FileRecord{
		FileName:   name,
		UploadDate: time.Now().UTC(),
		FileURL:    link.String(),
	}
	err = o.Context.MetadataClient.FileRecordSave(record)
	if err != nil {
		return "", service.NewOperationError(service.KindMetadataWrite, name,
			fmt.Sprintf("error saving record for %s; blob %s is now orphaned", name, key), err)
	}
	o.Context.Logger.Infof("Uploaded %s as record %s", key, record.ID)
	return link.String(), nil
}

// List returns one entry per metadata record, oldest upload first.
// This is a pure metadata read; it never touches the blob store, and
// the links it returns are the possibly stale ones captured at upload
// time.
func (o *Orchestrator) List() ([]*ListEntry, error) {
	records, err := o.Context.MetadataClient.FileRecordList()
	if err != nil {
		return nil, service.NewOperationError(service.KindMetadataRead, "",
			"error listing file records", err)
	}
	entries := make([]*ListEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, &ListEntry{
			ID:         record.ID,
			FileName:   record.FileName,
			UploadDate: record.DisplayDate(),
			FileURL:    record.FileURL,
		})
	}
	return entries, nil
}

// Download returns the blob stored for fileName. It checks existence
// first and reports not_found before attempting any read. On success
// it publishes a download event; publication is advisory and a
// failure there is logged, never surfaced.
func (o *Orchestrator) Download(fileName string) (*DownloadResult, error) {
	key := constants.BlobPrefix + fileName
	exists, err := o.Context.BlobClient.Exists(key)
	if err != nil {
		return nil, service.NewOperationError(service.KindStorageRead, fileName,
			fmt.Sprintf("error checking existence of %s", key), err)
	}
	if !exists {
		return nil, service.NewOperationError(service.KindNotFound, fileName,
			fmt.Sprintf("no file stored at %s", key), nil)
	}
	obj, err := o.Context.BlobClient.Get(key)
	if err != nil {
		return nil, service.NewOperationError(service.KindDownload, fileName,
			fmt.Sprintf("error fetching %s", key), err)
	}
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, service.NewOperationError(service.KindDownload, fileName,
			fmt.Sprintf("error reading metadata of %s", key), err)
	}
	event := registry.NewDownloadEvent(fileName)
	if err := o.Context.EventClient.PublishDownload(event); err != nil {
		o.Context.Logger.Warningf("Could not publish download event for %s: %v", fileName, err)
	}
	return &DownloadResult{
		Body:        obj,
		ContentType: info.ContentType,
		Size:        info.Size,
	}, nil
}

// Delete removes the file the record with the given ID describes:
// blob first, then record. If the blob delete fails the record
// survives untouched. If the blob delete succeeds and the record
// delete fails, the record dangles, pointing at a blob that no longer
// exists. A blob that is already gone is tolerated with a warning,
// since a prior partial delete may have removed it.
func (o *Orchestrator) Delete(id string) error {
	record, err := o.Context.MetadataClient.FileRecordGet(id)
	if err != nil {
		return service.NewOperationError(service.KindMetadataRead, id,
			fmt.Sprintf("error looking up record %s", id), err)
	}
	if record == nil {
		return service.NewOperationError(service.KindNotFound, id,
			fmt.Sprintf("no record with id %s", id), nil)
	}
	key := record.BlobKey()
	err = o.Context.BlobClient.Remove(key)
	if err != nil {
		if strings.Contains(err.Error(), "key does not exist") {
			o.Context.Logger.Warningf("Blob %s does not exist. May have been deleted in a prior run.", key)
		} else {
			return service.NewOperationError(service.KindStorageDelete, id,
				fmt.Sprintf("error deleting blob %s", key), err)
		}
	}
	err = o.Context.MetadataClient.FileRecordDelete(id)
	if err != nil {
		return service.NewOperationError(service.KindMetadataDelete, id,
			fmt.Sprintf("error deleting record %s; blob %s is already gone", id, key), err)
	}
	o.Context.Logger.Infof("Deleted %s (record %s)", key, id)
	return nil
}
