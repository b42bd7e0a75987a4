package workers

import (
	"fmt"
	"strings"

	"github.com/filedepot/gateway-services/constants"
	"github.com/filedepot/gateway-services/models/common"
	"github.com/filedepot/gateway-services/models/registry"
	"github.com/nsqio/go-nsq"
)

// DownloadRecorder consumes download events from NSQ and appends
// each one to the metadata store's download events collection. The
// gateway's statistics endpoint reads only the collection size, so
// this worker is the entire write path for totalDownloads.
type DownloadRecorder struct {
	Context     *common.Context
	NSQConsumer *nsq.Consumer
}

// NewDownloadRecorder creates a new DownloadRecorder.
func NewDownloadRecorder(context *common.Context) *DownloadRecorder {
	return &DownloadRecorder{Context: context}
}

// RegisterAsNsqConsumer registers this worker as an NSQ consumer on
// the download events topic. Note that as soon as you call this, the
// worker starts handling messages if any are available.
func (r *DownloadRecorder) RegisterAsNsqConsumer(bufferSize int) error {
	config := nsq.NewConfig()
	config.Set("heartbeat_interval", "10s")
	config.Set("max_in_flight", bufferSize)
	consumer, err := nsq.NewConsumer(
		constants.TopicDownloadEvents,
		constants.ChannelDownloadRecorder,
		config)
	if err != nil {
		return err
	}
	r.NSQConsumer = consumer
	r.NSQConsumer.AddHandler(r)
	err = r.NSQConsumer.ConnectToNSQLookupd(r.Context.Config.NsqLookupd)
	if err != nil {
		return err
	}
	r.Context.Logger.Info("Registered as NSQ consumer")
	return nil
}

// HandleMessage records one download event. A malformed message is
// dropped with an error log and not requeued, since it will still be
// malformed on the next attempt. A metadata store failure returns an
// error so NSQ redelivers the message.
func (r *DownloadRecorder) HandleMessage(message *nsq.Message) error {
	body := strings.TrimSpace(string(message.Body))
	event, err := registry.DownloadEventFromJSON(body)
	if err != nil {
		r.Context.Logger.Errorf("Dropping malformed download event %q: %v", body, err)
		return nil
	}
	err = r.Context.MetadataClient.DownloadEventAdd(event)
	if err != nil {
		r.Context.Logger.Errorf("Could not record download of %s: %v", event.FileName, err)
		return fmt.Errorf("error recording download event: %v", err)
	}
	r.Context.Logger.Infof("Recorded download of %s", event.FileName)
	return nil
}
