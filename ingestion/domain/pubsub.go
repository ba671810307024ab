package domain

import "errors"

// JobStartedMessage is the only payload the trigger subscription accepts.
const JobStartedMessage = "job_started"

type Message struct {
	Data []byte `json:"data,omitempty"`
	ID   string `json:"messageId"`
}

// PubSubMessage is the envelope of a Pub/Sub push delivery.
// Message.Data arrives base64 encoded on the wire; encoding/json decodes it
// into the byte slice.
type PubSubMessage struct {
	Message      Message `json:"message"`
	Subscription string  `json:"subscription"`
}

var (
	// ErrInvalidPubSubBody is returned for a push payload that is not the
	// job trigger. Responded with 400 so the subscription does not redeliver.
	ErrInvalidPubSubBody = errors.New("invalid pub/sub body")

	// ErrNoStatistics is returned when every configured team failed to fetch.
	ErrNoStatistics = errors.New("no team statistics fetched")
)
