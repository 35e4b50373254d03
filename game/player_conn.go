package game

import (
	"time"

	"golang.org/x/time/rate"
)

// Connection is the transport a playerConn sits on. Satisfied by the
// websocket adapter; tests plug in fakes.
type Connection interface {
	Write(data string) error
	Ping() error
	Read() (string, error)
	Close(errCode string)
}

// playerConn pumps one participant's websocket. Inbound lines go through
// a rate limiter into the session dispatcher; outbound lines queue in a
// bounded inbox so one slow client cannot stall the session.
type playerConn struct {
	name    string
	session *Session
	socket  Connection

	limiter *rate.Limiter
	inbox   chan string
	done    chan struct{}
}

func newPlayerConn(name string, session *Session, socket Connection) *playerConn {
	return &playerConn{
		name:    name,
		session: session,
		socket:  socket,
		limiter: rate.NewLimiter(20, 40),
		inbox:   make(chan string, 256),
		done:    make(chan struct{}),
	}
}

// Send queues an outbound line. A full inbox drops the line instead of
// blocking the session.
func (p *playerConn) Send(text string) {
	select {
	case p.inbox <- text:
	default:
	}
}

func (p *playerConn) readPump() {
	defer func() {
		close(p.done)
		p.session.Leave(p.name)
	}()

	for {
		data, err := p.socket.Read()
		if err != nil {
			break
		}

		if !p.limiter.Allow() {
			continue
		}

		p.session.OnMessage(p.name, data)
	}
}

func (p *playerConn) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case data := <-p.inbox:
			if err := p.socket.Write(data); err != nil {
				return
			}
		case <-ticker.C:
			if err := p.socket.Ping(); err != nil {
				return
			}
		case <-p.done:
			return
		}
	}
}
