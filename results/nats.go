package results

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
)

// NATSPublisher publishes each result as JSON on a subject.
type NATSPublisher struct {
	nc      *nats.Conn
	subject string
}

func ConnectNATS(url, subject string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("hangman"))
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{nc: nc, subject: subject}, nil
}

func (p *NATSPublisher) Record(_ context.Context, r GameResult) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return p.nc.Publish(p.subject, data)
}

func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}
