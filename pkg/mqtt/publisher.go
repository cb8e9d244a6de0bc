package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	fx "github.com/robotalks/easyvr.go/pkg/framework"
)

// Topics relative to the device topic.
const (
	TopicMeta    = "meta"
	TopicEvent   = "event"
	TopicCommand = "cmd"
)

// DefaultPublishTimeout bounds waiting for a publish to complete.
const DefaultPublishTimeout = 2 * time.Second

// Publisher publishes events of one device under <prefix><id>/ and
// receives remote commands. The metadata is retained and cleared on
// disconnect with the will message.
type Publisher struct {
	Queue   *Queue
	ID      string
	Timeout time.Duration

	lock      sync.Mutex
	metaJSON  []byte
	connected bool
}

// NewPublisher creates a Publisher.
func NewPublisher(brokerURL, id string) (*Publisher, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+id+"/"+TopicMeta, nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("easyvr:" + id)
	}
	p := &Publisher{
		Queue:   NewQueue(opts, topicPrefix),
		ID:      id,
		Timeout: DefaultPublishTimeout,
	}
	p.Queue.OnConnect = func(*Queue) { p.onConnected() }
	p.Queue.OnDisconnect = func(*Queue) { p.setConnected(false) }
	return p, nil
}

// Topic returns the topic of the device relative to the queue prefix.
func (p *Publisher) Topic(name string) string {
	return p.ID + "/" + name
}

// SetMeta updates the retained metadata, published immediately when
// connected.
func (p *Publisher) SetMeta(meta interface{}) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}
	p.lock.Lock()
	p.metaJSON = data
	connected := p.connected
	p.lock.Unlock()
	if connected {
		return p.publish(TopicMeta, data, 1, true)
	}
	return nil
}

// Publish sends an event encoded as JSON.
func (p *Publisher) Publish(event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return p.publish(TopicEvent, data, 0, false)
}

// OnCommand registers the handler of remote commands. handler is invoked
// from the MQTT client goroutine.
func (p *Publisher) OnCommand(handler func(payload []byte)) *Subscription {
	return p.Queue.Sub(p.Topic(TopicCommand), func(_ string, payload []byte) {
		handler(payload)
	})
}

// AddToLoop implements LoopAdder.
func (p *Publisher) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(fx.NamedRun("mqtt", p))
}

// Run implements Runnable.
func (p *Publisher) Run(ctx context.Context) error {
	p.Queue.Connect()
	<-ctx.Done()
	p.Queue.PubWith(p.Topic(TopicMeta), nil, 1, true).WaitTimeout(p.timeout())
	p.Queue.Close()
	return nil
}

func (p *Publisher) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return DefaultPublishTimeout
}

func (p *Publisher) publish(name string, data []byte, qos byte, retain bool) error {
	token := p.Queue.PubWith(p.Topic(name), data, qos, retain)
	if !token.WaitTimeout(p.timeout()) {
		return fmt.Errorf("publish %s: timeout", name)
	}
	return token.Error()
}

func (p *Publisher) setConnected(connected bool) []byte {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.connected = connected
	return p.metaJSON
}

func (p *Publisher) onConnected() {
	if meta := p.setConnected(true); meta != nil {
		p.Queue.PubWith(p.Topic(TopicMeta), meta, 1, true)
	}
}
