package queue

import (
	stan "github.com/nats-io/stan.go"
)

// Publisher pushes one payload onto the retry queue. The queue's consumer is
// a separate worker outside this service.
type Publisher interface {
	Publish(body []byte) error
	Close()
}

// StanPublisher publishes to a NATS Streaming subject.
type StanPublisher struct {
	sc      stan.Conn
	subject string
}

// NewStanPublisher connects to the streaming cluster. The connection is held
// for the life of the process.
func NewStanPublisher(clusterID, clientID, url, subject string) (*StanPublisher, error) {
	sc, err := stan.Connect(clusterID, clientID, stan.NatsURL(url))
	if err != nil {
		return nil, err
	}
	return &StanPublisher{sc: sc, subject: subject}, nil
}

func (p *StanPublisher) Publish(body []byte) error {
	return p.sc.Publish(p.subject, body)
}

func (p *StanPublisher) Close() {
	_ = p.sc.Close()
}

// Nop is used when the queue is unreachable at startup: delivery failures
// then keep their audit record but lose the retry copy.
type Nop struct{}

func (Nop) Publish([]byte) error { return nil }
func (Nop) Close()               {}
