package stack

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Broker subjects
const (
	SHEET_UPDATED        = "attainment.sheet_updated"
	ATTAINMENT_PUBLISHED = "attainment.published"
	GET_ATTAINMENT       = "attainment.get"
)

type Publisher interface {
	PublishEncode(subject string, data interface{}) error
}

// Envelope of every published message
type NatsMessage struct {
	ID   string      `json:"id"`
	Data interface{} `json:"data,omitempty"`
}

type NatsRes struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type Nats struct {
	conn *nats.Conn
}

func NewNats(host string) (*Nats, error) {
	conn, err := nats.Connect(
		host,
		nats.Name("attainment"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				zap.L().Warn("nats disconnected", zap.Error(err))
			}
		}),
	)
	if err != nil {
		return nil, err
	}
	return &Nats{conn: conn}, nil
}

func FormatMessage(data interface{}) ([]byte, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}
	return json.Marshal(NatsMessage{
		ID:   id.String(),
		Data: data,
	})
}

func (n *Nats) Publish(subject string, data []byte) error {
	return n.conn.Publish(subject, data)
}

func (n *Nats) PublishEncode(subject string, data interface{}) error {
	message, err := FormatMessage(data)
	if err != nil {
		return err
	}
	return n.conn.Publish(subject, message)
}

func (n *Nats) Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error) {
	return n.conn.Subscribe(subject, handler)
}

// Decodes the data of a NatsMessage into v
func DecodeData(payload []byte, v interface{}) error {
	var message struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &message); err != nil {
		return err
	}
	return json.Unmarshal(message.Data, v)
}

func (n *Nats) Close() {
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
	}
}

type discard struct{}

func (discard) PublishEncode(string, interface{}) error {
	return nil
}

// Publisher used when no broker is configured
var Discard Publisher = discard{}
