package client

import (
	"github.com/matheus3301/chatlens/internal/rpc"
	"google.golang.org/grpc"
)

// Client wraps the gRPC connection to the daemon.
type Client struct {
	conn     *grpc.ClientConn
	Analyzer *rpc.AnalyzerClient
}

// New dials the daemon's Unix domain socket and returns a typed client.
func New(socketPath string) (*Client, error) {
	conn, err := rpc.Dial(socketPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		conn:     conn,
		Analyzer: rpc.NewAnalyzerClient(conn),
	}, nil
}

// Close closes the gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
