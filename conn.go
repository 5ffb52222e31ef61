package mllp

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Errors returned by connection operations.
var (
	// ErrInvalidCodec is returned when no codec is provided.
	ErrInvalidCodec = errors.New("invalid codec")
	// ErrInvalidOnMessage is returned when no message handler is provided.
	ErrInvalidOnMessage = errors.New("invalid on message callback")
	// ErrMessageTooLarge is returned when a frame exceeds the maximum allowed size.
	ErrMessageTooLarge = errors.New("message too large")
)

// ErrConnectionClosed is returned when operating on a closed connection.
var ErrConnectionClosed = errors.New("connection closed")

// Conn represents one MLLP connection.
// It manages the underlying TCP connection, frame encoding/decoding and the
// per-connection transcoding state, and provides read/write loops for
// asynchronous communication.
type Conn struct {
	rawConn *net.TCPConn
	// id keys the connection's cached charset encoder/decoder in the codec
	id      string
	recvBuf *Buffer
	logger  Logger

	opts options

	sendMsg chan []byte
	closed  atomic.Bool
	cancel  context.CancelFunc
}

// Default configuration values.
const (
	// defaultBufferSize is the default size of the send channel buffer.
	defaultBufferSize = 1
	// defaultMaxMessageLength is the default maximum size of a single frame (1MB).
	defaultMaxMessageLength = 1024 * 1024
	// readChunkSize is the size of a single read from the transport.
	readChunkSize = 4096
)

// NewConn creates a new connection wrapper around the given TCP connection.
// It applies the provided options and validates them before returning.
// Returns an error if required options (codec, onMessage) are missing.
func NewConn(conn *net.TCPConn, opt ...Option) (*Conn, error) {
	var opts options
	for _, o := range opt {
		o(&opts)
	}

	err := checkOptions(&opts)
	if err != nil {
		return nil, err
	}

	return newClientConnWithOptions(conn, opts), nil
}

// checkOptions validates and sets default values for connection options.
func checkOptions(opts *options) error {
	if opts.bufferSize <= 0 {
		opts.bufferSize = defaultBufferSize
	}

	if opts.maxReadLength <= 0 {
		opts.maxReadLength = defaultMaxMessageLength
	}

	if opts.onMessage == nil {
		return ErrInvalidOnMessage
	}

	if opts.idleTimeout <= 0 {
		opts.idleTimeout = time.Second * 30
	}

	if opts.codec == nil {
		return ErrInvalidCodec
	}

	if opts.onError == nil {
		opts.onError = func(err error) ErrorAction { return Disconnect }
	}

	if opts.logger == nil {
		opts.logger = defaultLogger()
	}

	return nil
}

// newClientConnWithOptions creates a new Conn with the given options.
func newClientConnWithOptions(c *net.TCPConn, opts options) *Conn {
	cc := &Conn{
		rawConn: c,
		id:      c.RemoteAddr().String(),
		recvBuf: NewBuffer(readChunkSize),
		logger:  opts.logger,
		opts:    opts,
		sendMsg: make(chan []byte, opts.bufferSize),
	}

	return cc
}

// Run starts the connection's read and write loops.
// It creates two goroutines for concurrent reading and writing,
// and blocks until an error occurs or the context is canceled.
// The connection is automatically closed when Run returns and its cached
// transcoding state is released.
func (c *Conn) Run(ctx context.Context) error {
	c.logger.Info("connection established", "addr", c.Addr())
	c.logger.Debug("connection options", "addr", c.Addr(),
		"charset", c.opts.codec.Charset().Name(),
		"buffer_size", c.opts.bufferSize,
		"max_read_length", c.opts.maxReadLength,
		"idle_timeout", c.opts.idleTimeout)

	ctx, c.cancel = context.WithCancel(ctx)
	group, child := errgroup.WithContext(ctx)

	group.Go(func() error {
		// Unblock a pending Read when the context is canceled
		<-child.Done()
		_ = c.rawConn.SetReadDeadline(time.Now())
		return nil
	})

	group.Go(func() error {
		return c.readLoop(child)
	})

	group.Go(func() error {
		return c.writeLoop(child)
	})

	err := group.Wait()
	c.closeConn()

	if err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Info("connection closed with error", "addr", c.Addr(), "error", err)
	} else {
		c.logger.Info("connection closed", "addr", c.Addr())
	}

	return err
}

// Close gracefully closes the connection.
// It cancels the context and closes the underlying TCP connection.
// Safe to call multiple times.
func (c *Conn) Close() error {
	if c.closed.Swap(true) {
		return nil // already closed
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.opts.codec.Release(c.id)
	return c.rawConn.Close()
}

// IsClosed returns true if the connection has been closed.
func (c *Conn) IsClosed() bool {
	return c.closed.Load()
}

// ErrBufferFull is returned when the send buffer is full and cannot accept more messages.
// This error indicates backpressure - the receiver is not consuming messages fast enough.
// Recommended handling strategies:
//   - Drop the message (for non-critical data)
//   - Use WriteBlocking or WriteTimeout to wait for buffer space
//   - Implement application-level flow control
var ErrBufferFull = errors.New("send buffer full")

// Write sends a payload through the connection without blocking (fire-and-forget).
// The payload is framed and charset-encoded by the codec and queued for sending.
//
// Returns:
//   - nil: message was successfully queued (not yet sent)
//   - ErrBufferFull: send buffer is full, message was NOT queued
//   - ErrConnectionClosed: connection is closed
//   - ErrInvalidPayload / encoding error: if codec.Encode fails
//
// Use this method when:
//   - You can tolerate message loss under backpressure
//   - You have your own retry/backpressure logic
//   - Low latency is critical and blocking is unacceptable
//
// For guaranteed delivery, use WriteBlocking or WriteTimeout instead.
func (c *Conn) Write(payload Payload) error {
	if c.closed.Load() {
		return ErrConnectionClosed
	}

	bytes, err := c.opts.codec.Encode(c.id, payload)
	if err != nil {
		return err
	}

	select {
	case c.sendMsg <- bytes:
		return nil
	default:
		return ErrBufferFull
	}
}

// WriteBlocking sends a payload through the connection, blocking until the
// message is queued or the context is canceled. This is the safest write
// method for guaranteed delivery.
//
// Returns:
//   - nil: message was successfully queued
//   - context.Canceled or context.DeadlineExceeded: context was canceled
//   - ErrConnectionClosed: connection is closed
//   - ErrInvalidPayload / encoding error: if codec.Encode fails
func (c *Conn) WriteBlocking(ctx context.Context, payload Payload) error {
	if c.closed.Load() {
		return ErrConnectionClosed
	}

	bytes, err := c.opts.codec.Encode(c.id, payload)
	if err != nil {
		return err
	}

	select {
	case c.sendMsg <- bytes:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WriteTimeout sends a payload through the connection with a timeout.
// This provides a middle ground between Write (non-blocking) and WriteBlocking.
//
// Returns:
//   - nil: message was successfully queued
//   - ErrBufferFull: timeout expired before message could be queued
//   - ErrConnectionClosed: connection is closed
//   - ErrInvalidPayload / encoding error: if codec.Encode fails
func (c *Conn) WriteTimeout(payload Payload, timeout time.Duration) error {
	if c.closed.Load() {
		return ErrConnectionClosed
	}

	bytes, err := c.opts.codec.Encode(c.id, payload)
	if err != nil {
		return err
	}

	select {
	case c.sendMsg <- bytes:
		return nil
	case <-time.After(timeout):
		return ErrBufferFull
	}
}

// Addr returns the remote address of the connection.
func (c *Conn) Addr() net.Addr {
	return c.rawConn.RemoteAddr()
}

// readLoop continuously reads from the connection and accumulates inbound
// bytes until the codec can carve out complete frames. Decoded payload
// texts are delivered to the message handler.
// Returns when the context is canceled or an unrecoverable error occurs.
// A frame growing beyond maxReadLength without an end sequence returns
// ErrMessageTooLarge.
func (c *Conn) readLoop(ctx context.Context) error {
	chunk := make([]byte, readChunkSize)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			_ = c.rawConn.SetReadDeadline(time.Now().Add(c.opts.idleTimeout * 2))

			n, err := c.rawConn.Read(chunk)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Debug("read error", "addr", c.Addr(), "error", err)
				if c.opts.onError(err) == Disconnect {
					return err
				}
				continue
			}

			_, _ = c.recvBuf.Write(chunk[:n])
			if err = c.drainFrames(); err != nil {
				return err
			}
		}
	}
}

// drainFrames decodes as many complete frames as the accumulation buffer
// holds, leaving any incomplete tail for the next read.
func (c *Conn) drainFrames() error {
	for c.recvBuf.Remaining() > 0 {
		text, ok, err := c.opts.codec.Decode(c.id, c.recvBuf)
		if err != nil {
			// the codec already dropped the malformed frame's region
			c.logger.Debug("decode error", "addr", c.Addr(), "error", err)
			if c.opts.onError(err) == Disconnect {
				return err
			}
			continue
		}

		if !ok {
			if c.recvBuf.Remaining() > c.opts.maxReadLength {
				return ErrMessageTooLarge
			}
			return nil
		}

		if err = c.opts.onMessage(text); err != nil {
			return err
		}
	}

	return nil
}

// writeLoop continuously sends framed messages from the send channel to the
// connection. Returns when the context is canceled or an unrecoverable
// error occurs.
func (c *Conn) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case data := <-c.sendMsg:
			if err := c.write(data); err != nil {
				return err
			}
		}
	}
}

// write sends data to the connection with a deadline.
// If an error occurs and onError returns Disconnect, the error is propagated.
// Otherwise, the error is suppressed and writing continues.
func (c *Conn) write(data []byte) error {
	_ = c.rawConn.SetWriteDeadline(time.Now().Add(c.opts.idleTimeout * 2))

	_, err := c.rawConn.Write(data)

	if err != nil {
		c.logger.Debug("write error", "addr", c.Addr(), "error", err)
		if c.opts.onError(err) == Disconnect {
			return err
		}
	}

	return nil
}

// closeConn marks the connection as closed, closes the underlying TCP
// connection and releases the cached transcoding state.
func (c *Conn) closeConn() {
	c.closed.Store(true)
	c.rawConn.Close()
	c.opts.codec.Release(c.id)
}
