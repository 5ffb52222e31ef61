package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Zereker/mllp"
)

// handler runs one MLLP connection per accepted TCP connection.
type handler struct {
	cfg    *Config
	codec  *mllp.Codec
	logger *slog.Logger
}

func (h *handler) Handle(conn *net.TCPConn) {
	opts := []mllp.Option{
		mllp.CustomCodecOption(h.codec),
		mllp.IdleTimeoutOption(h.cfg.idleTimeout),
		mllp.LoggerOption(h.logger),
	}
	if h.cfg.MaxMessageSize > 0 {
		opts = append(opts, mllp.MessageMaxSize(h.cfg.MaxMessageSize))
	}

	var c *mllp.Conn
	opts = append(opts, mllp.OnMessageOption(func(text string) error {
		h.logger.Info("message received",
			"addr", conn.RemoteAddr(),
			"size", len(text),
			"first_segment", firstSegment(text))

		if !h.cfg.Ack {
			return nil
		}

		ack, err := buildAck(text)
		if err != nil {
			h.logger.Warn("cannot acknowledge message", "addr", conn.RemoteAddr(), "error", err)
			return nil
		}
		return c.Write(mllp.Text(ack))
	}))

	var err error
	c, err = mllp.NewConn(conn, opts...)
	if err != nil {
		h.logger.Error("failed to wrap connection", "addr", conn.RemoteAddr(), "error", err)
		_ = conn.Close()
		return
	}

	_ = c.Run(context.Background())
}

// firstSegment returns the text up to the first segment separator,
// enough to identify a message in the log.
func firstSegment(text string) string {
	segment, _, _ := strings.Cut(text, "\r")
	return segment
}

func runListen(ctx context.Context, cfg *Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.logLevel()}))
	slog.SetDefault(logger)

	codec, err := cfg.codec()
	if err != nil {
		return err
	}

	addr, err := net.ResolveTCPAddr("tcp", cfg.Listen)
	if err != nil {
		return err
	}

	server, err := mllp.New(addr, mllp.ServerLoggerOption(logger))
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	return server.Serve(ctx, &handler{cfg: cfg, codec: codec, logger: logger})
}
