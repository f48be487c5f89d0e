package websocketPkg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"MoodDetector/internal/entity"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	ProviderName      = "remote"
	DefaultFaceURL    = "ws://localhost:8000/api/v1/face/ws"
	defaultPingPeriod = 30 * time.Second
)

type IWebsocket interface {
	DetectFaces(ctx context.Context, image []byte) (entity.DetectionResult, error)
	Name() string
	IsConnected() bool
	Reconnect() error
	Close() error
}

type faceResponse struct {
	Faces []entity.Face `json:"faces"`
	Error string        `json:"error,omitempty"`
}

// webSocketClient talks to a remote face-analysis service over a single
// connection. mu serialises frames so replies cannot interleave.
type webSocketClient struct {
	url          string
	log          *logrus.Logger
	conn         *websocket.Conn
	mu           sync.Mutex
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	done         chan struct{}
}

func NewFaceClient(url string, log *logrus.Logger) IWebsocket {
	client := newFaceClient(url, log)

	go client.connectInBackground()

	return client
}

func newFaceClient(url string, log *logrus.Logger) *webSocketClient {
	if url == "" {
		url = DefaultFaceURL
	}

	return &webSocketClient{
		url:          url,
		log:          log,
		pingInterval: defaultPingPeriod,
		readTimeout:  10 * time.Second,
		writeTimeout: 5 * time.Second,
		done:         make(chan struct{}),
	}
}

func (c *webSocketClient) Name() string {
	return ProviderName
}

func (c *webSocketClient) connectInBackground() {
	if err := c.Reconnect(); err != nil {
		c.log.Warnf("Initial connection to face detection service failed: %v. Will retry on demand.", err)
		return
	}
	c.log.Infof("Connected to face detection service at %s", c.url)
}

func (c *webSocketClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn != nil
}

func (c *webSocketClient) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.reconnectLocked()
}

func (c *webSocketClient) reconnectLocked() error {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		if err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout)); err != nil {
			c.log.Debugf("Error sending pong: %v", err)
		}
		return nil
	})

	c.conn = conn
	go c.keepAlive(conn)

	return nil
}

func (c *webSocketClient) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
		}

		c.mu.Lock()
		if c.conn != conn {
			c.mu.Unlock()
			return
		}

		if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.writeTimeout)); err != nil {
			c.log.Warnf("Ping failed for face detection service, marking connection as dead: %v", err)
			c.conn = nil
			conn.Close()
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
	}
}

// DetectFaces sends image as one binary frame and waits for the JSON reply.
// A broken connection is dropped and re-dialled on the next call.
func (c *webSocketClient) DetectFaces(ctx context.Context, image []byte) (entity.DetectionResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		if err := c.reconnectLocked(); err != nil {
			return entity.DetectionResult{}, fmt.Errorf("cannot connect to face detection service: %w", err)
		}
	}
	conn := c.conn

	writeDeadline := time.Now().Add(c.writeTimeout)
	readDeadline := time.Now().Add(c.readTimeout)
	if deadline, ok := ctx.Deadline(); ok {
		if deadline.Before(writeDeadline) {
			writeDeadline = deadline
		}
		if deadline.Before(readDeadline) {
			readDeadline = deadline
		}
	}

	_ = conn.SetWriteDeadline(writeDeadline)
	if err := conn.WriteMessage(websocket.BinaryMessage, image); err != nil {
		c.dropLocked()
		return entity.DetectionResult{}, fmt.Errorf("error sending face frame: %w", err)
	}

	_ = conn.SetReadDeadline(readDeadline)
	_, message, err := conn.ReadMessage()
	if err != nil {
		c.dropLocked()
		return entity.DetectionResult{}, fmt.Errorf("error reading face message: %w", err)
	}

	_ = conn.SetReadDeadline(time.Time{})
	_ = conn.SetWriteDeadline(time.Time{})

	var resp faceResponse
	if err := json.Unmarshal(message, &resp); err != nil {
		return entity.DetectionResult{}, fmt.Errorf("error unmarshaling face response: %w", err)
	}
	if resp.Error != "" {
		return entity.DetectionResult{}, errors.New(resp.Error)
	}

	c.log.Debugf("Face detection service returned %d face(s)", len(resp.Faces))

	return entity.DetectionResult{Faces: resp.Faces}, nil
}

func (c *webSocketClient) dropLocked() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *webSocketClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
	default:
		close(c.done)
	}

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
