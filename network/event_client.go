package network

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/filedepot/gateway-services/constants"
	"github.com/filedepot/gateway-services/models/registry"
)

type EventClient struct {
	URL string
}

// Formally define this so we can substitute a fake for testing.
type EventClientInterface interface {
	PublishDownload(event *registry.DownloadEvent) error
}

// NewEventClient returns a new client that publishes events through
// the nsqd HTTP interface at the specified url, which usually ends
// with :4151. This client provides write access only; the
// download_recorder worker does the reading via the NSQ consumer
// protocol.
func NewEventClient(url string) *EventClient {
	return &EventClient{URL: url}
}

// PublishDownload posts a download event to the download events topic.
// Publication is advisory: the caller logs a failure and moves on, so
// a dead nsqd never fails a download.
func (client *EventClient) PublishDownload(event *registry.DownloadEvent) error {
	jsonData, err := event.ToJSON()
	if err != nil {
		return err
	}
	return client.publishString(constants.TopicDownloadEvents, jsonData)
}

// publishString posts string data to the specified NSQ topic.
func (client *EventClient) publishString(topic string, data string) error {
	url := fmt.Sprintf("%s/pub?topic=%s", client.URL, topic)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer([]byte(data)))
	if err != nil {
		return fmt.Errorf("Nsqd returned an error when queuing data: %v", err)
	}
	if resp == nil {
		return fmt.Errorf("No response from nsqd at '%s'. Is it running?", url)
	}

	// nsqd sends a simple OK. We have to read the response body,
	// or the connection will hang open forever.
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != 200 {
		bodyText := "[no response body]"
		if len(body) > 0 {
			bodyText = string(body)
		}
		return fmt.Errorf("nsqd returned status code %d when attempting to queue data. "+
			"Response body: %s", resp.StatusCode, bodyText)
	}
	return nil
}
