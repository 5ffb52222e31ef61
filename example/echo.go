package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/Zereker/mllp"
)

// Echo server: every decoded MLLP payload is framed again and sent back.
type Server struct {
	connID int64
	codec  *mllp.Codec

	sync.RWMutex
	connections map[int64]*mllp.Conn
}

func newHandler(connID int64, codec *mllp.Codec) *Server {
	return &Server{connID: connID, codec: codec, connections: make(map[int64]*mllp.Conn)}
}

func (s *Server) Handle(conn *net.TCPConn) {
	connID := atomic.AddInt64(&s.connID, 1)

	codecOption := mllp.CustomCodecOption(s.codec)
	errorOption := mllp.OnErrorOption(func(err error) mllp.ErrorAction {
		slog.Error("connection error", "error", err)
		return mllp.Disconnect
	})

	// Echo
	onMessageOption := mllp.OnMessageOption(func(text string) error {
		conn := s.getConn(connID)
		return conn.Write(mllp.Text(text))
	})

	newConn, err := mllp.NewConn(conn, codecOption, errorOption, onMessageOption)
	if err != nil {
		panic(err)
	}

	s.addConn(connID, newConn)

	if err = newConn.Run(context.Background()); err != nil {
		s.deleteConn(connID)
	}
}

func (s *Server) addConn(connID int64, conn *mllp.Conn) {
	s.Lock()
	defer s.Unlock()

	slog.Info("add new conn", "connID", connID, "addr", conn.Addr())
	s.connections[connID] = conn
}

func (s *Server) deleteConn(connID int64) {
	s.Lock()
	defer s.Unlock()

	delete(s.connections, connID)
}

func (s *Server) getConn(connID int64) *mllp.Conn {
	s.RLock()
	defer s.RUnlock()

	if conn, ok := s.connections[connID]; ok {
		return conn
	}

	return nil
}

func main() {
	addr, err := net.ResolveTCPAddr("tcp", "127.0.0.1:12345")
	if err != nil {
		panic(err)
	}

	server, err := mllp.New(addr)
	if err != nil {
		slog.Error("failed to create server", "error", err)
		return
	}

	codec, err := mllp.NewCodec(mllp.CharsetNameOption("ISO-8859-1"))
	if err != nil {
		slog.Error("failed to create codec", "error", err)
		return
	}

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		slog.Info("shutting down server...")
		cancel()
	}()

	slog.Info("server start", "addr", addr.String())
	if err := server.Serve(ctx, newHandler(time.Now().Unix(), codec)); err != nil {
		slog.Error("server error", "error", err)
	}
}
