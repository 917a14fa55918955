// Package live keeps one view-state controller per connected page. The
// browser streams input events over a websocket and receives the resulting
// state, detail panel and requested effects.
package live

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mkdugri-blog/Linux-boot/internal/viewstate"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// Message is sent to the browser after connect and after every state change.
type Message struct {
	Session string             `json:"session,omitempty"`
	State   *viewstate.State   `json:"state,omitempty"`
	Detail  *Detail            `json:"detail,omitempty"`
	Effects []viewstate.Effect `json:"effects,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// Detail is the wire form of the detail panel.
type Detail struct {
	Step        string `json:"step,omitempty"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Placeholder bool   `json:"placeholder"`
}

func detailMessage(d viewstate.Detail) *Detail {
	return &Detail{
		Step:        string(d.Step.ID),
		Title:       d.Title,
		Content:     d.Content,
		Placeholder: d.Placeholder,
	}
}

// Hub tracks live sessions.
type Hub struct {
	upgrader websocket.Upgrader
	resolver viewstate.Resolver
	logger   *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the hub logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithCheckOrigin overrides the websocket origin check.
func WithCheckOrigin(fn func(*http.Request) bool) Option {
	return func(h *Hub) { h.upgrader.CheckOrigin = fn }
}

// NewHub returns a hub whose sessions resolve in-page anchors with resolver.
func NewHub(resolver viewstate.Resolver, opts ...Option) *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		resolver: resolver,
		logger:   zap.NewNop(),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Active reports the number of connected sessions.
func (h *Hub) Active() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Sessions lists the ids of connected sessions.
func (h *Hub) Sessions() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close disconnects every session.
func (h *Hub) Close() {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.sessions))
	for _, s := range h.sessions {
		conns = append(conns, s.conn)
	}
	h.mu.RUnlock()
	deadline := time.Now().Add(writeWait)
	for _, c := range conns {
		_ = c.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), deadline)
		_ = c.Close()
	}
}

// ServeHTTP upgrades the connection and runs the session until the page goes away.
// The query string (step, menu) seeds the initial state so a deep-linked page
// and its session agree.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	s := newSession(conn, viewstate.New(
		viewstate.WithResolver(h.resolver),
		viewstate.WithState(viewstate.FromQuery(r.URL.Query())),
	), h.logger)

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()
	s.logger.Debug("live session started")

	s.run()

	h.mu.Lock()
	delete(h.sessions, s.ID)
	h.mu.Unlock()
	s.logger.Debug("live session ended")
}

// Session is one mounted page.
type Session struct {
	ID     string
	conn   *websocket.Conn
	ctrl   *viewstate.Controller
	logger *zap.Logger

	write func(Message) error
	// pushErr is the first failed state push; the session ends on it.
	pushErr error
}

func newSession(conn *websocket.Conn, ctrl *viewstate.Controller, logger *zap.Logger) *Session {
	id := uuid.NewString()
	s := &Session{
		ID:     id,
		conn:   conn,
		ctrl:   ctrl,
		logger: logger.With(zap.String("session_id", id)),
	}
	s.write = s.writeJSON
	return s
}

// run owns the controller: events are applied in arrival order and every
// write happens on this goroutine.
func (s *Session) run() {
	defer s.conn.Close()
	s.conn.SetReadLimit(maxMessageSize)

	unsubscribe := s.subscribe()
	defer unsubscribe()

	st := s.ctrl.State()
	if err := s.send(Message{Session: s.ID, State: &st, Detail: detailMessage(s.ctrl.Detail())}); err != nil {
		return
	}

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("live read failed", zap.Error(err))
			}
			return
		}
		if err := s.handle(data); err != nil {
			return
		}
	}
}

// subscribe pushes state, detail and pending effects after every mutation.
// After a failed push nothing more is sent.
func (s *Session) subscribe() (unsubscribe func()) {
	return s.ctrl.Subscribe(func(st viewstate.State) {
		if s.pushErr != nil {
			return
		}
		s.pushErr = s.send(Message{State: &st, Detail: detailMessage(viewstate.DetailFor(st)), Effects: s.ctrl.Effects()})
	})
}

// handle applies one inbound frame. A non-nil result means the connection
// can no longer be written and the session must end.
func (s *Session) handle(data []byte) error {
	var ev viewstate.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return s.send(Message{Error: "invalid event payload"})
	}
	if err := s.ctrl.Apply(ev); err != nil {
		msg := err.Error()
		if errors.Is(err, viewstate.ErrUnknownEvent) {
			msg = "unknown event type " + string(ev.Type)
		}
		return s.send(Message{Error: msg})
	}
	return s.pushErr
}

func (s *Session) send(m Message) error {
	if err := s.write(m); err != nil {
		s.logger.Warn("live write failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *Session) writeJSON(m Message) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(m)
}
