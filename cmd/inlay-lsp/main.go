// Command inlay-lsp is a Language Server Protocol server that serves type
// inlay hints for Go source files.
package main

import (
	"context"
	"io"
	"os"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/rlch/inlay/language/go"
	"github.com/rlch/inlay/lsp"
)

// logLevelEnv overrides the log level, e.g. INLAY_LOG_LEVEL=debug.
const logLevelEnv = "INLAY_LOG_LEVEL"

func main() {
	// Set up logging to stderr (stdout is for LSP communication)
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(logLevel(os.Getenv(logLevelEnv)))

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}

	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("Starting inlay-lsp server")

	ctx := context.Background()

	err = run(ctx, logger, os.Stdin, os.Stdout)
	if err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

func logLevel(value string) zapcore.Level {
	level, err := zapcore.ParseLevel(value)
	if err != nil || value == "" {
		return zapcore.InfoLevel
	}

	return level
}

func run(ctx context.Context, logger *zap.Logger, in io.Reader, out io.Writer) error {
	// Create a JSON-RPC stream connection over stdio
	stream := jsonrpc2.NewStream(&readWriteCloser{in, out})
	conn := jsonrpc2.NewConn(stream)

	// Create a client to send notifications to the editor
	client := protocol.ClientDispatcher(conn, logger)

	// The project config is loaded from the workspace root on initialize.
	server := lsp.NewServer(client, logger, nil)

	conn.Go(ctx, lsp.Handler(server))

	// Wait for the connection to close
	<-conn.Done()

	return conn.Err()
}

// readWriteCloser wraps separate reader/writer into io.ReadWriteCloser.
type readWriteCloser struct {
	io.Reader
	io.Writer
}

func (rwc *readWriteCloser) Close() error {
	if c, ok := rwc.Writer.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
