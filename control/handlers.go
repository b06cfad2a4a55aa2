// SPDX-License-Identifier: EPL-2.0

package control

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/ik5/govbap/geometry"
	"github.com/ik5/govbap/speakers"
	"github.com/ik5/govbap/vbap"
)

// SetupResponse describes the loudspeaker array.
type SetupResponse struct {
	Name       string               `json:"name,omitempty"`
	Dims       int                  `json:"dims"`
	Speakers   []geometry.Direction `json:"speakers"`
	Regions    [][]int              `json:"regions"`
	VolumeNorm float64              `json:"volume_norm"`
	Bounds     *speakers.Bounds     `json:"bounds,omitempty"`
}

// State is the current direction with its gains, one per loudspeaker.
type State struct {
	Direction geometry.Direction `json:"direction"`
	Gains     vbap.Gains         `json:"gains"`
}

// DirectionRequest is the body of PUT /api/direction and of WebSocket
// messages. Azimuth is required; elevation defaults to 0.
type DirectionRequest struct {
	Azimuth   *float64 `json:"azimuth"`
	Elevation float64  `json:"elevation"`
}

var errMissingAzimuth = errors.New("azimuth is required")

func (r DirectionRequest) direction() (geometry.Direction, error) {
	if r.Azimuth == nil {
		return geometry.Direction{}, errMissingAzimuth
	}
	return geometry.Direction{Azimuth: *r.Azimuth, Elevation: r.Elevation}, nil
}

func (s *Server) setup() SetupResponse {
	st := s.eng.Setup()
	resp := SetupResponse{
		Name:       s.name,
		Dims:       int(st.Dims()),
		Speakers:   st.Speakers(),
		Regions:    make([][]int, st.NumRegions()),
		VolumeNorm: s.eng.VolumeNorm(),
		Bounds:     s.bounds,
	}
	for i := range resp.Regions {
		resp.Regions[i] = append([]int(nil), st.Region(i).Speakers()...)
	}
	return resp
}

func (s *Server) state() (State, error) {
	return s.stateFor(s.eng.Direction())
}

func (s *Server) stateFor(d geometry.Direction) (State, error) {
	g, err := s.eng.GainsFor(d)
	if err != nil {
		return State{}, err
	}
	return State{Direction: d, Gains: g}, nil
}

func (s *Server) handleSetup(c *fiber.Ctx) error {
	return c.JSON(s.setup())
}

func (s *Server) handleGetDirection(c *fiber.Ctx) error {
	return c.JSON(s.eng.Direction())
}

func (s *Server) handleGains(c *fiber.Ctx) error {
	st, err := s.state()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(st)
}

func (s *Server) handlePutDirection(c *fiber.Ctx) error {
	var req DirectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("decoding body: %v", err)})
	}

	st, err := s.apply(req)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	s.logger.Info("direction set", "azimuth", st.Direction.Azimuth, "elevation", st.Direction.Elevation)
	s.broadcast(st)
	return c.JSON(st)
}

// apply moves the source and returns the state of the direction it applied.
func (s *Server) apply(req DirectionRequest) (State, error) {
	d, err := req.direction()
	if err != nil {
		return State{}, err
	}
	applied, err := s.move(d)
	if err != nil {
		return State{}, err
	}
	return s.stateFor(applied)
}

func statusFor(err error) int {
	var invalid *vbap.InvalidDirectionError
	switch {
	case errors.Is(err, errMissingAzimuth), errors.As(err, &invalid):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (s *Server) handleDirectionWS(c *websocket.Conn) {
	mu := &sync.Mutex{}
	s.clientsMu.Lock()
	s.clients[c] = mu
	s.clientsMu.Unlock()
	s.logger.Debug("websocket client connected", "remote", c.RemoteAddr().String())

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, c)
		s.clientsMu.Unlock()
		s.logger.Debug("websocket client disconnected", "remote", c.RemoteAddr().String())
	}()

	if st, err := s.state(); err == nil {
		s.send(c, mu, st)
	}

	for {
		_, msg, err := c.ReadMessage()
		if err != nil {
			return
		}

		st, err := s.applyMessage(msg)
		if err != nil {
			s.send(c, mu, fiber.Map{"error": err.Error()})
			continue
		}
		s.broadcast(st)
	}
}

func (s *Server) applyMessage(msg []byte) (State, error) {
	var req DirectionRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		return State{}, fmt.Errorf("decoding message: %w", err)
	}
	return s.apply(req)
}

func (s *Server) send(c *websocket.Conn, mu *sync.Mutex, v any) {
	mu.Lock()
	defer mu.Unlock()

	if err := c.WriteJSON(v); err != nil {
		s.logger.Warn("websocket write failed", "err", err)
	}
}

// broadcast sends st to every connected WebSocket client.
func (s *Server) broadcast(st State) {
	s.clientsMu.Lock()
	targets := make(map[*websocket.Conn]*sync.Mutex, len(s.clients))
	for c, mu := range s.clients {
		targets[c] = mu
	}
	s.clientsMu.Unlock()

	for c, mu := range targets {
		s.send(c, mu, st)
	}
}
