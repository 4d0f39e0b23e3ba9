package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/df07/go-frame-tracer/pkg/raster"
	"github.com/df07/go-frame-tracer/pkg/renderer"
)

const writeTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message types sent over the render websocket
const (
	MessageConsole  = "console"
	MessageProgress = "progress"
	MessageComplete = "complete"
	MessageError    = "error"
)

// RenderRequest represents a render request from the client. Zero values
// defer to the server config and then the scene.
type RenderRequest struct {
	Scene    string `json:"scene"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Samples  int    `json:"samples"`
	MaxDepth int    `json:"maxDepth"`
	Seed     int64  `json:"seed"`
}

// Message is one websocket frame; exactly one payload is set, matching Type
type Message struct {
	Type     string          `json:"type"`
	RenderID string          `json:"renderId"`
	Console  *ConsoleMessage `json:"console,omitempty"`
	Progress *ProgressUpdate `json:"progress,omitempty"`
	Complete *CompleteUpdate `json:"complete,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// ProgressUpdate reports one finished full-frame sample
type ProgressUpdate struct {
	Sample    int   `json:"sample"`
	Completed int   `json:"completed"`
	Total     int     `json:"total"`
	Fraction  float64 `json:"fraction"`
	ElapsedMs int64   `json:"elapsedMs"`
}

// CompleteUpdate carries the final image
type CompleteUpdate struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	Samples          int     `json:"samples"`
	Workers          int     `json:"workers"`
	Seed             int64   `json:"seed"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// handleRender upgrades to a websocket and streams progress for one render.
// Closing the socket from the client cancels the render.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	renderID := uuid.NewString()
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events := make(chan Message, req.Samples+consoleBuffer+2)
	logger := s.renderLogger(renderID, req.Scene, events)

	go readUntilClosed(conn, cancel)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeMessages(conn, events, cancel)
	}()

	s.render(ctx, req, renderID, logger, events)
	close(events)
	<-writerDone

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeTimeout))
}

// renderLogger tees render logs to the server log and the client console
func (s *Server) renderLogger(renderID, sceneName string, events chan<- Message) *zap.Logger {
	console := newConsoleCore(zap.InfoLevel, renderID, events)
	return zap.New(zapcore.NewTee(s.logger.Core(), console)).
		With(zap.String("render_id", renderID), zap.String("scene", sceneName))
}

func (s *Server) render(ctx context.Context, req *RenderRequest, renderID string, logger *zap.Logger, events chan<- Message) {
	fail := func(err error) {
		logger.Warn("render failed", zap.Error(err))
		send(ctx, events, Message{Type: MessageError, RenderID: renderID, Error: err.Error()})
	}

	desc, err := createScene(req.Scene)
	if err != nil {
		fail(err)
		return
	}

	cfg := s.config
	cfg.Render.Width = req.Width
	cfg.Render.Height = req.Height
	cfg.Render.Samples = req.Samples
	cfg.Render.MaxDepth = req.MaxDepth
	cfg.Render.Seed = req.Seed

	renderConfig := cfg.RendererConfig(desc.Sampling)
	renderConfig.OnSample = func(p renderer.SampleProgress) {
		send(ctx, events, Message{
			Type:     MessageProgress,
			RenderID: renderID,
			Progress: &ProgressUpdate{
				Sample:    p.Index,
				Completed: p.Completed,
				Total:     p.Total,
				Fraction:  p.Fraction(),
				ElapsedMs: p.Elapsed.Milliseconds(),
			},
		})
	}

	rend, err := renderer.NewRenderer(desc.Camera, desc.Scene, renderConfig, logger)
	if err != nil {
		fail(err)
		return
	}

	startTime := time.Now()
	img, stats, err := rend.Render(ctx)
	if err != nil {
		fail(err)
		return
	}

	imageData, err := imageToBase64PNG(img, cfg.Output.Gamma)
	if err != nil {
		fail(fmt.Errorf("encode image: %w", err))
		return
	}

	send(ctx, events, Message{
		Type:     MessageComplete,
		RenderID: renderID,
		Complete: &CompleteUpdate{
			Width:     img.Width(),
			Height:    img.Height(),
			ImageData: imageData,
			Stats: Stats{
				TotalPixels:      stats.TotalPixels,
				Samples:          stats.Samples,
				Workers:          stats.Workers,
				Seed:             stats.Seed,
				AverageLuminance: stats.AverageLuminance,
			},
			ElapsedMs: time.Since(startTime).Milliseconds(),
		},
	})
}

// send queues a message unless the client has gone away
func send(ctx context.Context, events chan<- Message, msg Message) {
	select {
	case events <- msg:
	case <-ctx.Done():
	}
}

// writeMessages is the only goroutine writing data frames to conn. After a
// write error it keeps draining events so senders never block.
func (s *Server) writeMessages(conn *websocket.Conn, events <-chan Message, cancel context.CancelFunc) {
	failed := false
	for msg := range events {
		if failed {
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			s.logger.Debug("websocket write failed", zap.Error(err))
			failed = true
			cancel()
		}
	}
}

// readUntilClosed discards client frames and cancels the render when the
// connection closes
func readUntilClosed(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = s.config.Render.Scene
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", 0, 1, 1000); err != nil {
		return nil, err
	}
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		s.logger.Warn("large image with high samples may render slowly",
			zap.Int("width", req.Width), zap.Int("height", req.Height), zap.Int("samples", req.Samples))
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG encodes a gamma-corrected PNG as base64
func imageToBase64PNG(img *raster.Image, gamma float64) (string, error) {
	var buf bytes.Buffer
	if err := img.WritePNG(&buf, gamma); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
