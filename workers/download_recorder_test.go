package workers_test

import (
	"testing"

	"github.com/filedepot/gateway-services/models/registry"
	"github.com/filedepot/gateway-services/util/testutil"
	"github.com/filedepot/gateway-services/workers"
	"github.com/nsqio/go-nsq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMessageRecordsDownload(t *testing.T) {
	context, servers := testutil.NewTestContext()
	defer servers.Close()
	recorder := workers.NewDownloadRecorder(context)

	event := registry.NewDownloadEvent("report.pdf")
	body, err := event.ToJSON()
	require.NoError(t, err)

	message := nsq.NewMessage(nsq.MessageID{}, []byte(body))
	require.NoError(t, recorder.HandleMessage(message))

	count, err := context.MetadataClient.DownloadCount()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestHandleMessageCountsAccumulate(t *testing.T) {
	context, servers := testutil.NewTestContext()
	defer servers.Close()
	recorder := workers.NewDownloadRecorder(context)

	for _, name := range []string{"a.txt", "b.txt", "a.txt"} {
		event := registry.NewDownloadEvent(name)
		body, err := event.ToJSON()
		require.NoError(t, err)
		require.NoError(t, recorder.HandleMessage(nsq.NewMessage(nsq.MessageID{}, []byte(body))))
	}

	count, err := context.MetadataClient.DownloadCount()
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestHandleMessageDropsMalformed(t *testing.T) {
	context, servers := testutil.NewTestContext()
	defer servers.Close()
	recorder := workers.NewDownloadRecorder(context)

	message := nsq.NewMessage(nsq.MessageID{}, []byte("this is not json"))
	// Malformed messages are dropped, not requeued.
	assert.NoError(t, recorder.HandleMessage(message))

	count, err := context.MetadataClient.DownloadCount()
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
