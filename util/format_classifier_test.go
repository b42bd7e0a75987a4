package util_test

import (
	"testing"

	"github.com/filedepot/gateway-services/constants"
	"github.com/filedepot/gateway-services/util"
	"github.com/stretchr/testify/assert"
)

func TestClassifierKnownTypes(t *testing.T) {
	classifier := util.NewFormatClassifier(constants.FormatLabels)
	assert.Equal(t, "PDF", classifier.Label("application/pdf"))
	assert.Equal(t, "JPEG", classifier.Label("image/jpeg"))
	assert.Equal(t, "Text", classifier.Label("text/plain"))
	assert.Equal(t, "Word", classifier.Label("application/vnd.openxmlformats-officedocument.wordprocessingml.document"))
	assert.Equal(t, "Binary", classifier.Label("application/octet-stream"))
}

func TestClassifierFallback(t *testing.T) {
	classifier := util.NewFormatClassifier(constants.FormatLabels)
	assert.Equal(t, "x-unknown", classifier.Label("application/x-unknown"))
	assert.Equal(t, "vnd.something.odd", classifier.Label("chemical/vnd.something.odd"))
	// No slash at all: return the type as-is.
	assert.Equal(t, "notamimetype", classifier.Label("notamimetype"))
}

func TestClassifierParametersAndCase(t *testing.T) {
	classifier := util.NewFormatClassifier(constants.FormatLabels)
	assert.Equal(t, "Text", classifier.Label("text/plain; charset=utf-8"))
	assert.Equal(t, "PDF", classifier.Label("Application/PDF"))
	assert.Equal(t, "Text", classifier.Label("  text/plain  "))
}

func TestClassifierEmpty(t *testing.T) {
	classifier := util.NewFormatClassifier(constants.FormatLabels)
	assert.Equal(t, constants.FormatUnknown, classifier.Label(""))
	assert.Equal(t, constants.FormatUnknown, classifier.Label("   "))
}

func TestClassifierTableIsolation(t *testing.T) {
	table := map[string]string{"application/pdf": "PDF"}
	classifier := util.NewFormatClassifier(table)
	// Mutating the caller's table after construction must not
	// affect the classifier.
	table["application/pdf"] = "Changed"
	assert.Equal(t, "PDF", classifier.Label("application/pdf"))
}
