// Package server serves the calculator to web browsers.
//
// The page at / renders a keypad and forwards each button press and key
// press over a WebSocket at /ws. Each connection is a session with its own
// panel; the server answers every message with the panel's new frame.
package server

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zephyrtronium/bigcalc"
	"github.com/zephyrtronium/bigcalc/prefs"
)

//go:embed static
var static embed.FS

// Config configures a Server. Zero fields take defaults.
type Config struct {
	// ReadLimit is the maximum size of a message from a browser.
	// Default 4096.
	ReadLimit int64
	// PongWait is how long a session waits for a pong before closing.
	// Pings are sent at 90% of this interval. Default 60 seconds.
	PongWait time.Duration
	// WriteWait is the deadline for each write. Default 10 seconds.
	WriteWait time.Duration
	// AllowedOrigins lists the origins allowed to open sessions. If empty,
	// only requests without an Origin header or from the same host are
	// allowed.
	AllowedOrigins []string
	// Store holds the theme preference shared by all sessions. Default is an
	// in-memory store.
	Store prefs.Store
	// Evaluator evaluates expressions. Default bigcalc.NewEvaluator().
	Evaluator *bigcalc.Evaluator
	// Logger receives connection events and errors. Default is a logger
	// writing to the standard logger's output with a "[server] " prefix.
	Logger *log.Logger
}

// Server is the browser front-end. It implements http.Handler.
type Server struct {
	cfg      Config
	mux      *http.ServeMux
	upgrader websocket.Upgrader
}

// New creates a server.
func New(cfg Config) *Server {
	if cfg.ReadLimit <= 0 {
		cfg.ReadLimit = 4096
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = 60 * time.Second
	}
	if cfg.WriteWait <= 0 {
		cfg.WriteWait = 10 * time.Second
	}
	if cfg.Store == nil {
		cfg.Store = prefs.NewMemory()
	}
	if cfg.Evaluator == nil {
		cfg.Evaluator = bigcalc.NewEvaluator()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(log.Writer(), "[server] ", log.LstdFlags)
	}
	s := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if len(cfg.AllowedOrigins) > 0 {
		s.upgrader.CheckOrigin = s.checkOrigin
	}
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	files := http.FileServerFS(sub)
	s.mux.Handle("GET /{$}", files)
	s.mux.Handle("GET /manifest.json", files)
	s.mux.Handle("GET /service-worker.js", files)
	s.mux.HandleFunc("GET /ws", s.serveWS)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		s.cfg.Logger.Printf("rejected session from %s without origin", r.RemoteAddr)
		return false
	}
	if !slices.Contains(s.cfg.AllowedOrigins, origin) {
		s.cfg.Logger.Printf("rejected session from %s with origin %s", r.RemoteAddr, origin)
		return false
	}
	return true
}
