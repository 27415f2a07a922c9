package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"

	"github.com/zephyrtronium/bigcalc/panel"
)

// session is one browser connection.
type session struct {
	id    string
	srv   *Server
	conn  *websocket.Conn
	panel *panel.Panel
	send  chan []byte
	done  chan struct{} // closed when writePump stops
}

// message is a decoded browser message. Key is set for physical keys;
// otherwise Control is.
type message struct {
	Control panel.Control
	Key     string
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written an error response.
		s.cfg.Logger.Printf("upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}
	ss := &session{
		id:    uuid.NewString(),
		srv:   s,
		conn:  conn,
		panel: panel.New(r.Context(), s.cfg.Evaluator, s.cfg.Store, s.cfg.Logger),
		send:  make(chan []byte, 16),
		done:  make(chan struct{}),
	}
	s.cfg.Logger.Printf("session %s opened from %s", ss.id, r.RemoteAddr)
	go ss.writePump()
	ss.sendFrame(ss.panel.Frame())
	ss.readPump(r)
	s.cfg.Logger.Printf("session %s closed", ss.id)
}

// readPump applies messages from the browser to the session's panel until
// the connection closes. It is the only goroutine that uses the panel.
func (ss *session) readPump(r *http.Request) {
	defer close(ss.send)
	cfg := &ss.srv.cfg
	ss.conn.SetReadLimit(cfg.ReadLimit)
	ss.conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
	ss.conn.SetPongHandler(func(string) error {
		ss.conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
		return nil
	})
	for {
		kind, b, err := ss.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				cfg.Logger.Printf("session %s: %v", ss.id, err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		m, ok := decode(b)
		if !ok {
			cfg.Logger.Printf("session %s: ignored malformed message %q", ss.id, b)
			continue
		}
		var f panel.Frame
		if m.Key != "" {
			f = ss.panel.Key(m.Key)
		} else {
			f = ss.panel.Press(r.Context(), m.Control)
		}
		ss.sendFrame(f)
	}
}

// writePump sends frames and pings to the browser until the send channel
// closes or a write fails.
func (ss *session) writePump() {
	cfg := &ss.srv.cfg
	ticker := time.NewTicker(cfg.PongWait * 9 / 10)
	defer func() {
		ticker.Stop()
		ss.conn.Close()
		close(ss.done)
	}()
	for {
		select {
		case b, ok := <-ss.send:
			ss.conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
			if !ok {
				ss.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ss.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				cfg.Logger.Printf("session %s: write failed: %v", ss.id, err)
				return
			}
		case <-ticker.C:
			ss.conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
			if err := ss.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				cfg.Logger.Printf("session %s: ping failed: %v", ss.id, err)
				return
			}
		}
	}
}

func (ss *session) sendFrame(f panel.Frame) {
	b, err := json.Marshal(f)
	if err != nil {
		panic(err)
	}
	select {
	case ss.send <- b:
	case <-ss.done:
	}
}

// decode decodes a browser message: {"key": name} for a physical key, or
// {"value": v} or {"action": a, "fn": f} for a control.
func decode(b []byte) (message, bool) {
	if !gjson.ValidBytes(b) {
		return message{}, false
	}
	r := gjson.ParseBytes(b)
	if !r.IsObject() {
		return message{}, false
	}
	str := func(name string) string {
		v := r.Get(name)
		if v.Type != gjson.String {
			return ""
		}
		return v.Str
	}
	if k := str("key"); k != "" {
		return message{Key: k}, true
	}
	c := panel.Control{Value: str("value"), Action: str("action"), Fn: str("fn")}
	if c.Value == "" && c.Action == "" {
		return message{}, false
	}
	return message{Control: c}, true
}
