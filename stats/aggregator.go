package stats

import (
	"math"

	"github.com/filedepot/gateway-services/constants"
	"github.com/filedepot/gateway-services/models/common"
	"github.com/filedepot/gateway-services/models/service"
	"github.com/filedepot/gateway-services/network"
	"github.com/filedepot/gateway-services/util"
)

// Aggregator computes corpus-wide statistics by scanning the blob
// store's full object listing. It is read-only and holds no state
// between calls: every call re-scans the store, so cost is linear in
// the number of stored objects.
//
// File counts come from the blob listing, not from the metadata
// records. Under the orphaned-blob and dangling-record hazards the
// two counts diverge; that divergence is the two stores telling
// their own truths, and audit.Reconciler is the place to see it.
type Aggregator struct {
	Context    *common.Context
	Blobs      network.BlobScanner
	Classifier *util.FormatClassifier
}

// NewAggregator creates an Aggregator scanning the context's blob
// client with the standard format label table.
func NewAggregator(context *common.Context) *Aggregator {
	return &Aggregator{
		Context:    context,
		Blobs:      context.BlobClient,
		Classifier: util.NewFormatClassifier(constants.FormatLabels),
	}
}

// Summary is the Statistics result.
type Summary struct {
	TotalDownloads int64   `json:"totalDownloads"`
	StorageUsedGB  float64 `json:"storageUsed"`
	TotalFiles     int     `json:"totalFiles"`
}

// Statistics scans every object under the files prefix and returns
// the download count, total storage in GB (rounded to two decimals)
// and the file count. An object whose metadata cannot be fetched is
// skipped with a logged warning and still counts toward TotalFiles;
// one bad object must not abort the aggregate.
func (a *Aggregator) Statistics() (*Summary, error) {
	downloads, err := a.Context.MetadataClient.DownloadCount()
	if err != nil {
		return nil, service.NewOperationError(service.KindMetadataRead, "",
			"error reading download count", err)
	}
	totalFiles := 0
	var totalBytes int64
	for info := range a.Blobs.List(constants.BlobPrefix) {
		if info.Err != nil {
			return nil, service.NewOperationError(service.KindStorageRead, "",
				"error listing blob store", info.Err)
		}
		totalFiles++
		stat, err := a.Blobs.Stat(info.Key)
		if err != nil {
			a.Context.Logger.Warningf("Skipping size of %s: %v", info.Key, err)
			continue
		}
		totalBytes += stat.Size
	}
	return &Summary{
		TotalDownloads: downloads,
		StorageUsedGB:  roundToGB(totalBytes),
		TotalFiles:     totalFiles,
	}, nil
}

// FileFormats scans every object under the files prefix and returns
// a histogram of classified format labels. Objects whose metadata
// cannot be fetched are skipped with a logged warning.
func (a *Aggregator) FileFormats() (map[string]int, error) {
	counts := make(map[string]int)
	for info := range a.Blobs.List(constants.BlobPrefix) {
		if info.Err != nil {
			return nil, service.NewOperationError(service.KindStorageRead, "",
				"error listing blob store", info.Err)
		}
		stat, err := a.Blobs.Stat(info.Key)
		if err != nil {
			a.Context.Logger.Warningf("Skipping format of %s: %v", info.Key, err)
			continue
		}
		label := a.Classifier.Label(stat.ContentType)
		counts[label]++
	}
	return counts, nil
}

func roundToGB(totalBytes int64) float64 {
	gb := float64(totalBytes) / float64(1<<30)
	return math.Round(gb*100) / 100
}
