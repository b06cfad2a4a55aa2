// SPDX-License-Identifier: EPL-2.0

package control

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/ik5/govbap/geometry"
	govlog "github.com/ik5/govbap/internal/log"
	"github.com/ik5/govbap/speakers"
	"github.com/ik5/govbap/vbap"
)

// Positioner moves the source. *player.Player satisfies it.
type Positioner interface {
	SetPosition(azimuth, elevation float64) error
}

// enginePositioner steers the engine directly.
type enginePositioner struct{ eng *vbap.Engine }

func (p enginePositioner) SetPosition(az, el float64) error { return p.eng.SetDirection(az, el) }

// Server is the control API.
type Server struct {
	app    *fiber.App
	eng    *vbap.Engine
	pos    Positioner
	bounds *speakers.Bounds
	name   string
	logger *slog.Logger

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]*sync.Mutex
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger replaces the global logger for request and connection logs.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithBounds clamps requested azimuths into b.
func WithBounds(b speakers.Bounds) Option {
	return func(s *Server) { s.bounds = &b }
}

// WithPositioner routes direction changes through p instead of the engine,
// for example to a player applying its own bounds.
func WithPositioner(p Positioner) Option {
	return func(s *Server) { s.pos = p }
}

// WithLayoutName labels the setup reported by GET /api/setup.
func WithLayoutName(name string) Option {
	return func(s *Server) { s.name = name }
}

// New builds the fiber app serving:
//
//	GET /api/setup       loudspeakers, regions and bounds
//	GET /api/direction   current direction
//	PUT /api/direction   set the direction from {"azimuth", "elevation"}
//	GET /api/gains       current direction and gains
//	GET /ws/direction    WebSocket; each direction message is applied and
//	                     the new state broadcast to every client
func New(eng *vbap.Engine, opts ...Option) *Server {
	s := &Server{
		eng:     eng,
		pos:     enginePositioner{eng},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = govlog.L()
	}

	app := fiber.New(fiber.Config{
		AppName:               "govbap control",
		DisableStartupMessage: true,
	})
	app.Use(s.logRequests)

	api := app.Group("/api")
	api.Get("/setup", s.handleSetup)
	api.Get("/direction", s.handleGetDirection)
	api.Put("/direction", s.handlePutDirection)
	api.Get("/gains", s.handleGains)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/direction", websocket.New(s.handleDirectionWS))

	s.app = app
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.logger.Info("control server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown stops accepting requests and waits for active ones to finish.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.logger.Debug("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
	)
	return err
}

// move clamps az into the configured bounds, applies the direction and
// returns it with the azimuth wrapped into (-180, 180].
func (s *Server) move(d geometry.Direction) (geometry.Direction, error) {
	if s.bounds != nil {
		d.Azimuth = s.bounds.Clamp(d.Azimuth)
	}
	if err := s.pos.SetPosition(d.Azimuth, d.Elevation); err != nil {
		return geometry.Direction{}, err
	}
	return d.Wrapped(), nil
}
