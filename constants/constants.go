package constants

const (
	// BlobPrefix is the key prefix under which all uploaded files
	// live in the blob store. A file named "report.pdf" is stored
	// at "files/report.pdf".
	BlobPrefix = "files/"

	// FileRecordsKey is the redis hash holding one FileRecord
	// document per uploaded file, keyed by record ID.
	FileRecordsKey = "file_records"

	// DownloadEventsKey is the redis list holding one document per
	// download. The statistics aggregator reads only its length.
	DownloadEventsKey = "download_events"

	// TopicDownloadEvents is the NSQ topic the gateway publishes
	// download events to. The download_recorder worker consumes it.
	TopicDownloadEvents = "download_events"

	// ChannelDownloadRecorder is the NSQ channel name for the
	// download_recorder worker.
	ChannelDownloadRecorder = "recorder"

	// DefaultContentType is what we store when a client declares
	// no content type for an uploaded file.
	DefaultContentType = "application/octet-stream"

	// FormatUnknown is the classifier's label for an empty or
	// unparseable content type.
	FormatUnknown = "unknown"
)

// FormatLabels maps known content types to short, human-readable
// format labels. Content types not listed here fall back to the
// subtype after the slash. See util.FormatClassifier.
var FormatLabels = map[string]string{
	"application/gzip":              "GZIP",
	"application/json":              "JSON",
	"application/msword":            "Word",
	"application/octet-stream":      "Binary",
	"application/pdf":               "PDF",
	"application/vnd.ms-excel":      "Excel",
	"application/vnd.ms-powerpoint": "PowerPoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": "PowerPoint",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         "Excel",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   "Word",
	"application/x-tar": "TAR",
	"application/xml":   "XML",
	"application/zip":   "ZIP",
	"audio/mpeg":        "MP3",
	"audio/wav":         "WAV",
	"image/bmp":         "BMP",
	"image/gif":         "GIF",
	"image/jpeg":        "JPEG",
	"image/png":         "PNG",
	"image/svg+xml":     "SVG",
	"image/tiff":        "TIFF",
	"image/webp":        "WebP",
	"text/csv":          "CSV",
	"text/html":         "HTML",
	"text/markdown":     "Markdown",
	"text/plain":        "Text",
	"video/mp4":         "MP4",
	"video/mpeg":        "MPEG",
	"video/quicktime":   "QuickTime",
	"video/webm":        "WebM",
}
