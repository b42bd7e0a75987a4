package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
)

const BlobBucket = "depot-files"

type S3Server struct {
	server *httptest.Server
	URL    string
}

func NewS3Server() *S3Server {
	backend := s3mem.New()
	backend.CreateBucket(BlobBucket)
	faker := gofakes3.New(backend)
	handler := faker.Server()
	// The minio client sends "delimiter=" on every list request, and
	// gofakes3 treats the empty value as a real delimiter, answering
	// with CommonPrefixes instead of the objects. Strip the empty
	// param so listings return Contents.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Has("delimiter") && query.Get("delimiter") == "" {
			query.Del("delimiter")
			r.URL.RawQuery = query.Encode()
		}
		handler.ServeHTTP(w, r)
	}))
	return &S3Server{
		server: server,
		URL:    server.URL,
	}
}

// Host returns the server address without the scheme, in the form
// the minio client constructor wants.
func (s *S3Server) Host() string {
	return strings.TrimPrefix(s.URL, "http://")
}

func (s *S3Server) Close() {
	s.server.Close()
}
