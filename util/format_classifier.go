package util

import (
	"strings"

	"github.com/filedepot/gateway-services/constants"
)

// FormatClassifier maps raw content-type strings to short,
// human-readable format labels. The label table is copied at
// construction, so a classifier cannot be altered after the fact
// and tests can supply their own tables.
type FormatClassifier struct {
	labels map[string]string
}

// NewFormatClassifier returns a classifier using the given
// content-type to label table. Pass constants.FormatLabels for the
// standard table.
func NewFormatClassifier(labels map[string]string) *FormatClassifier {
	copied := make(map[string]string, len(labels))
	for contentType, label := range labels {
		copied[contentType] = label
	}
	return &FormatClassifier{labels: copied}
}

// Label returns the format label for contentType. Content types in
// the table get their mapped label. Anything else falls back to the
// subtype after the slash, so "application/x-custom" becomes
// "x-custom". Media type parameters such as "; charset=utf-8" are
// ignored. This never fails; an empty content type is labeled
// constants.FormatUnknown.
func (c *FormatClassifier) Label(contentType string) string {
	mediaType := strings.TrimSpace(contentType)
	if semicolon := strings.Index(mediaType, ";"); semicolon >= 0 {
		mediaType = strings.TrimSpace(mediaType[:semicolon])
	}
	mediaType = strings.ToLower(mediaType)
	if mediaType == "" {
		return constants.FormatUnknown
	}
	if label, ok := c.labels[mediaType]; ok {
		return label
	}
	if slash := strings.Index(mediaType, "/"); slash >= 0 {
		subtype := mediaType[slash+1:]
		if subtype != "" {
			return subtype
		}
	}
	return mediaType
}
