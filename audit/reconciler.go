package audit

import (
	"sort"

	"github.com/filedepot/gateway-services/constants"
	"github.com/filedepot/gateway-services/models/common"
	"github.com/filedepot/gateway-services/models/service"
)

// Reconciler compares the blob store's listing against the metadata
// records and reports the drift the lifecycle operations can leave
// behind. Upload commits the blob before the record, so a failed
// upload leaves an orphaned blob; Delete removes the blob before the
// record, so a failed delete leaves a dangling record. Neither
// operation rolls back, so periodic reconciliation is how operators
// find and clean up the leftovers.
//
// The reconciler only reports. It never deletes a blob or a record.
type Reconciler struct {
	Context *common.Context
}

// NewReconciler creates a new Reconciler.
func NewReconciler(context *common.Context) *Reconciler {
	return &Reconciler{Context: context}
}

// Report describes the drift between the two stores at the time of
// the scan. With concurrent uploads and deletes in flight the report
// is only ever approximately current.
type Report struct {
	// OrphanedBlobs lists blob keys no metadata record points to.
	OrphanedBlobs []string `json:"orphanedBlobs"`

	// DanglingRecords lists IDs of records whose blob is missing.
	DanglingRecords []string `json:"danglingRecords"`

	// BlobCount and RecordCount are the raw sizes of the two sides.
	// They differ whenever either list above is non-empty, and also
	// when several records share one file name.
	BlobCount   int `json:"blobCount"`
	RecordCount int `json:"recordCount"`
}

// Run scans both stores and builds the report.
func (r *Reconciler) Run() (*Report, error) {
	records, err := r.Context.MetadataClient.FileRecordList()
	if err != nil {
		return nil, service.NewOperationError(service.KindMetadataRead, "",
			"error listing file records", err)
	}
	recordedKeys := make(map[string]bool, len(records))
	for _, record := range records {
		recordedKeys[record.BlobKey()] = true
	}

	blobKeys := make(map[string]bool)
	orphaned := make([]string, 0)
	for info := range r.Context.BlobClient.List(constants.BlobPrefix) {
		if info.Err != nil {
			return nil, service.NewOperationError(service.KindStorageRead, "",
				"error listing blob store", info.Err)
		}
		blobKeys[info.Key] = true
		if !recordedKeys[info.Key] {
			orphaned = append(orphaned, info.Key)
		}
	}

	dangling := make([]string, 0)
	for _, record := range records {
		if !blobKeys[record.BlobKey()] {
			dangling = append(dangling, record.ID)
		}
	}

	sort.Strings(orphaned)
	sort.Strings(dangling)
	report := &Report{
		OrphanedBlobs:   orphaned,
		DanglingRecords: dangling,
		BlobCount:       len(blobKeys),
		RecordCount:     len(records),
	}
	if len(orphaned) > 0 || len(dangling) > 0 {
		r.Context.Logger.Warningf("Reconciliation found %d orphaned blobs, %d dangling records",
			len(orphaned), len(dangling))
	}
	return report, nil
}
