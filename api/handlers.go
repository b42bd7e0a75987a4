package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/filedepot/gateway-services/audit"
	"github.com/filedepot/gateway-services/lifecycle"
	"github.com/filedepot/gateway-services/models/common"
	"github.com/filedepot/gateway-services/models/service"
	"github.com/filedepot/gateway-services/stats"
	"github.com/go-chi/chi/v5"
)

// Handler holds the components behind the HTTP endpoints. The
// handlers themselves are pass-through plumbing: parse the request,
// call one component, encode the result. All coordination logic
// lives in lifecycle, stats and audit.
type Handler struct {
	Context      *common.Context
	Orchestrator *lifecycle.Orchestrator
	Aggregator   *stats.Aggregator
	Reconciler   *audit.Reconciler
}

// NewHandler creates a Handler with all components wired to context.
func NewHandler(context *common.Context) *Handler {
	return &Handler{
		Context:      context,
		Orchestrator: lifecycle.NewOrchestrator(context),
		Aggregator:   stats.NewAggregator(context),
		Reconciler:   audit.NewReconciler(context),
	}
}

// Upload handles POST /api/upload. The request is multipart: one or
// more "files" parts plus a "fileNames" field holding a JSON array of
// declared names, one per file, in order.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(h.Context.Config.MaxUploadSize)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cannot parse multipart request"})
		return
	}
	var names []string
	namesJSON := r.FormValue("fileNames")
	if namesJSON != "" {
		if err := json.Unmarshal([]byte(namesJSON), &names); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "fileNames must be a JSON array of strings"})
			return
		}
	}
	fileHeaders := r.MultipartForm.File["files"]
	payloads := make([]*lifecycle.UploadPayload, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		file, err := header.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("cannot read uploaded file %s", header.Filename)})
			return
		}
		defer file.Close()
		payloads = append(payloads, &lifecycle.UploadPayload{
			Reader:      file,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
		})
	}
	links, err := h.Orchestrator.Upload(payloads, names)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "files uploaded successfully",
		"fileURLs": links,
	})
}

// List handles GET /api/files.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Orchestrator.List()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Download handles GET /api/download/{fileName}. It streams the blob
// back with Content-Disposition: attachment.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	fileName := chi.URLParam(r, "fileName")
	result, err := h.Orchestrator.Download(fileName)
	if err != nil {
		h.writeError(w, err)
		return
	}
	defer result.Body.Close()
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	if result.ContentType != "" {
		w.Header().Set("Content-Type", result.ContentType)
	}
	if result.Size > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", result.Size))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, result.Body); err != nil {
		// Headers are gone; all we can do is log.
		h.Context.Logger.Errorf("Error streaming %s to client: %v", fileName, err)
	}
}

// Delete handles DELETE /api/files/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Orchestrator.Delete(id); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "file deleted successfully"})
}

// Statistics handles GET /api/statistics.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Aggregator.Statistics()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// FileFormats handles GET /api/file-formats. The response lists
// [label, count] pairs sorted by label so repeated calls with no
// intervening mutation are byte-identical.
func (h *Handler) FileFormats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Aggregator.FileFormats()
	if err != nil {
		h.writeError(w, err)
		return
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	pairs := make([][]interface{}, 0, len(labels))
	for _, label := range labels {
		pairs = append(pairs, []interface{}{label, counts[label]})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"formats": pairs})
}

// Reconcile handles GET /api/reconcile.
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	report, err := h.Reconciler.Run()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Healthz handles GET /healthz. It pings both stores.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Context.MetadataClient.Ping(); err != nil {
		h.Context.Logger.Errorf("Health check: metadata store unreachable: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "metadata store unreachable"})
		return
	}
	if exists, err := h.Context.BlobClient.BucketExists(); err != nil || !exists {
		h.Context.Logger.Errorf("Health check: blob store unreachable or bucket missing: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "blob store unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps an operation error to a response. Validation
// errors surface their message; everything else gets a generic body
// and a detailed server-side log line.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var detail string
	if opErr, ok := err.(*service.OperationError); ok {
		detail = opErr.Detail()
	} else {
		detail = err.Error()
	}
	switch service.KindOf(err) {
	case service.KindValidation:
		h.Context.Logger.Infof("Rejected request: %s", detail)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case service.KindNotFound:
		h.Context.Logger.Infof("Not found: %s", detail)
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		h.Context.Logger.Errorf("Request failed: %s", detail)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
