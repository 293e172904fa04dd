// Package mirror publishes the bot's decisions to an MQTT broker so a game can
// be followed while it is being played.
package mirror

import (
	"encoding/json"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"hackman-bot/config"
	"hackman-bot/logging"
	"hackman-bot/protocol"
	"hackman-bot/types"
)

// Quality-of-Service (at least once) for MQTT messages
const QOS = 1

// in milliseconds
const disconnectQuiesce = 250

// Payload is the JSON document published for every decision.
type Payload struct {
	Session   string       `json:"session"`
	Round     int          `json:"round"`
	Timebank  int          `json:"timebank"`
	Strategy  string       `json:"strategy"`
	Move      types.Move   `json:"move"`
	Available []types.Move `json:"available"`
	Error     string       `json:"error,omitempty"`
	At        time.Time    `json:"at"`
}

// client is the part of mqtt.Client the publisher uses.
type client interface {
	IsConnectionOpen() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// Publisher implements protocol.Observer. Messages produced while the broker
// is unreachable are kept and sent once the connection is up.
type Publisher struct {
	client  client
	session string
	topic   string

	mu      sync.Mutex
	pending [][]byte
}

// New connects to the broker in cfg in the background and returns a publisher
// for the given session. The bot never waits for the broker.
func New(cfg config.MirrorConfig, session string) *Publisher {
	p := newPublisher(nil, cfg.Topic, session)

	clientID := cfg.ClientID
	if len(session) >= 8 {
		clientID += "-" + session[:8]
	}
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(clientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetOnConnectHandler(p.onConnect)
	opts.SetConnectionLostHandler(p.connectionLost)

	logging.Log.Noticef("mirroring decisions to %s on %s as %s", p.topic, cfg.Broker, clientID)
	c := mqtt.NewClient(opts)
	p.client = c
	c.Connect()
	return p
}

func newPublisher(c client, prefix, session string) *Publisher {
	return &Publisher{
		client:  c,
		session: session,
		topic:   prefix + "/" + session + "/decision",
	}
}

// Topic returns the topic decisions are published to.
func (p *Publisher) Topic() string {
	return p.topic
}

// Received ignores input lines; only decisions are mirrored.
func (p *Publisher) Received(string) {}

// Decided publishes d.
func (p *Publisher) Decided(d protocol.Decision) {
	payload := Payload{
		Session:   p.session,
		Round:     d.Round,
		Timebank:  d.Timebank,
		Strategy:  d.Strategy,
		Move:      d.Move,
		Available: d.Available,
		At:        time.Now().UTC(),
	}
	if d.Err != nil {
		payload.Error = d.Err.Error()
	}
	msg, err := json.Marshal(payload)
	if err != nil {
		logging.Log.Errorf("mirror: encode decision: %v", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// IsConnected also reports true while paho is still retrying the
	// connection, so only an open connection publishes directly.
	if !p.client.IsConnectionOpen() {
		p.pending = append(p.pending, msg)
		return
	}
	p.publish(msg)
}

// Pending returns the number of messages waiting for a connection.
func (p *Publisher) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// Close disconnects from the broker. Messages still pending are dropped.
func (p *Publisher) Close() {
	if n := p.Pending(); n > 0 {
		logging.Log.Warningf("mirror: dropping %d unsent decisions", n)
	}
	p.client.Disconnect(disconnectQuiesce)
}

// publish must be called with mu held.
func (p *Publisher) publish(msg []byte) {
	token := p.client.Publish(p.topic, QOS, false, msg)
	go func() {
		if token.Wait() && token.Error() != nil {
			logging.Log.Errorf("mirror: failed to publish to %s: %v", p.topic, token.Error())
		}
	}()
}

// called when connection to mqtt broker established
func (p *Publisher) onConnect(mqtt.Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	logging.Log.Notice("mirror: connected to MQTT broker")
	for _, msg := range p.pending {
		p.publish(msg)
	}
	p.pending = nil
}

// called when connection to mqtt broker is lost
func (p *Publisher) connectionLost(_ mqtt.Client, err error) {
	logging.Log.Warningf("mirror: connection to MQTT broker lost: %v", err)
}
