package network_test

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/filedepot/gateway-services/network"
	"github.com/filedepot/gateway-services/util/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlobClient(t *testing.T) *network.BlobClient {
	server := testutil.NewS3Server()
	t.Cleanup(server.Close)
	client, err := network.NewBlobClient(server.Host(), "test-key", "test-secret", false, testutil.BlobBucket)
	require.NoError(t, err)
	return client
}

func TestBlobPutGetStat(t *testing.T) {
	client := newBlobClient(t)
	payload := []byte("hello blob store")
	err := client.Put("files/hello.txt", bytes.NewReader(payload), int64(len(payload)), "text/plain")
	require.NoError(t, err)

	info, err := client.Stat("files/hello.txt")
	require.NoError(t, err)
	assert.EqualValues(t, len(payload), info.Size)
	assert.Equal(t, "text/plain", info.ContentType)

	obj, err := client.Get("files/hello.txt")
	require.NoError(t, err)
	defer obj.Close()
	data, err := io.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestBlobPutOverwrites(t *testing.T) {
	client := newBlobClient(t)
	first := []byte("first version")
	second := []byte("the second version is longer")
	require.NoError(t, client.Put("files/dup.txt", bytes.NewReader(first), int64(len(first)), "text/plain"))
	require.NoError(t, client.Put("files/dup.txt", bytes.NewReader(second), int64(len(second)), "text/plain"))

	info, err := client.Stat("files/dup.txt")
	require.NoError(t, err)
	assert.EqualValues(t, len(second), info.Size)
}

func TestBlobExists(t *testing.T) {
	client := newBlobClient(t)
	exists, err := client.Exists("files/nope.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	payload := []byte("x")
	require.NoError(t, client.Put("files/yep.txt", bytes.NewReader(payload), 1, "text/plain"))
	exists, err = client.Exists("files/yep.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBlobList(t *testing.T) {
	client := newBlobClient(t)
	for _, name := range []string{"files/a.txt", "files/b.txt", "other/c.txt"} {
		payload := []byte(name)
		require.NoError(t, client.Put(name, bytes.NewReader(payload), int64(len(payload)), "text/plain"))
	}
	keys := make([]string, 0)
	for info := range client.List("files/") {
		require.NoError(t, info.Err)
		keys = append(keys, info.Key)
	}
	assert.ElementsMatch(t, []string{"files/a.txt", "files/b.txt"}, keys)
}

func TestBlobRemove(t *testing.T) {
	client := newBlobClient(t)
	payload := []byte("x")
	require.NoError(t, client.Put("files/gone.txt", bytes.NewReader(payload), 1, "text/plain"))
	require.NoError(t, client.Remove("files/gone.txt"))
	exists, err := client.Exists("files/gone.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBlobPresignedGet(t *testing.T) {
	client := newBlobClient(t)
	payload := []byte("x")
	require.NoError(t, client.Put("files/link.txt", bytes.NewReader(payload), 1, "text/plain"))

	link, err := client.PresignedGet("files/link.txt", time.Hour)
	require.NoError(t, err)
	assert.True(t, strings.Contains(link.Path, "files/link.txt"))
	assert.NotEmpty(t, link.RawQuery)
}

func TestEnsureBucket(t *testing.T) {
	server := testutil.NewS3Server()
	t.Cleanup(server.Close)
	client, err := network.NewBlobClient(server.Host(), "test-key", "test-secret", false, "brand-new-bucket")
	require.NoError(t, err)

	exists, err := client.BucketExists()
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, client.EnsureBucket())
	exists, err = client.BucketExists()
	require.NoError(t, err)
	assert.True(t, exists)

	// Idempotent.
	assert.NoError(t, client.EnsureBucket())
}
