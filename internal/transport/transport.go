package transport

type Message struct {
	Peer    Peer
	Payload []byte
}

type Peer interface {
	ID() string
	Close() error
	Send([]byte) error
}

type Transport interface {
	Addr() string
	Listen() error
	Consume() <-chan Message
	Close() error
}

// HandshakeFunc runs once per peer before any message is read from it.
// A non nil error is sent to the peer and the connection dropped.
type HandshakeFunc func(Peer) error

func NoOpHandshake(Peer) error { return nil }
