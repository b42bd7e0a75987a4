package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/filedepot/gateway-services/models/common"
	"github.com/op/go-logging"
)

// FakeNsqd is an in-process stand-in for nsqd's HTTP publish
// interface. It records every published message body.
type FakeNsqd struct {
	URL    string
	server *httptest.Server

	mutex    sync.Mutex
	messages []string
}

func NewFakeNsqd() *FakeNsqd {
	fake := &FakeNsqd{}
	fake.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body.Close()
		fake.mutex.Lock()
		fake.messages = append(fake.messages, string(body))
		fake.mutex.Unlock()
		w.Write([]byte("OK"))
	}))
	fake.URL = fake.server.URL
	return fake
}

// Messages returns a copy of all message bodies published so far.
func (f *FakeNsqd) Messages() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	copied := make([]string, len(f.messages))
	copy(copied, f.messages)
	return copied
}

func (f *FakeNsqd) Close() {
	f.server.Close()
}

// TestServers holds the in-process services a test context talks to.
// Call Close when the test is done.
type TestServers struct {
	Redis *RedisServer
	S3    *S3Server
	Nsqd  *FakeNsqd
}

func (s *TestServers) Close() {
	s.Redis.Close()
	s.S3.Close()
	s.Nsqd.Close()
}

// NewTestContext returns a Context wired to in-process redis, S3 and
// nsqd servers, plus the servers themselves so tests can inspect or
// stop them.
func NewTestContext() (*common.Context, *TestServers) {
	servers := &TestServers{
		Redis: NewRedisServer(),
		S3:    NewS3Server(),
		Nsqd:  NewFakeNsqd(),
	}
	workDir, err := os.MkdirTemp("", "depot-test")
	if err != nil {
		panic(err)
	}
	config := &common.Config{
		BaseWorkingDir: workDir,
		BlobBucket:     BlobBucket,
		ConfigName:     "test",
		LinkMaxAge:     time.Hour,
		ListenAddr:     "127.0.0.1:0",
		LogDir:         workDir,
		LogLevel:       logging.DEBUG,
		MaxUploadSize:  32 << 20,
		NsqURL:         servers.Nsqd.URL,
		RedisURL:       servers.Redis.Addr(),
		S3Host:         servers.S3.Host(),
		S3KeyID:        "test-key",
		S3SecretKey:    "test-secret",
		S3UseSSL:       false,
	}
	return common.NewContextFromConfig(config), servers
}
