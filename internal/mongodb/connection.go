// Package mongodb manages the connection to the formula database.
//
// Connection strings resolve in order: explicit value, the MONGODB_URI
// environment variable, then the local default. The initial ping is
// retried with exponential backoff to ride out a server that is still
// starting up.
package mongodb

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/formulabase/formulactl/internal/lg"
)

const (
	// DefaultURI is used when neither an explicit URI nor MONGODB_URI is set.
	DefaultURI = "mongodb://localhost:27017/"

	// EnvURI is the environment variable consumed for the connection string.
	EnvURI = "MONGODB_URI"

	// DatabaseName is the default database holding the formula catalog.
	DatabaseName = "equations_db"

	// FormulasCollection is the default collection name.
	FormulasCollection = "formulas"

	connectTimeout = 10 * time.Second
	pingBudget     = 8 * time.Second
)

// ResolveURI returns the effective connection string for an optional
// explicit value.
func ResolveURI(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvURI); env != "" {
		return env
	}
	return DefaultURI
}

// Connection manages a client against one database.
type Connection struct {
	uri      string
	database string
	client   *mongo.Client
	log      lg.Logger
}

// NewConnection prepares a connection. Empty uri or database fall back to
// ResolveURI and DatabaseName. Connect must be called before use.
func NewConnection(uri, database string, logger lg.Logger) *Connection {
	if database == "" {
		database = DatabaseName
	}
	if logger == nil {
		logger = lg.Discard
	}
	return &Connection{uri: ResolveURI(uri), database: database, log: logger}
}

// Connect dials the server and verifies it with a ping. Transient ping
// failures are retried with exponential backoff until pingBudget runs out.
func (c *Connection) Connect(ctx context.Context) error {
	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(c.uri))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = pingBudget

	ping := func() error {
		pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
		defer pingCancel()
		return client.Ping(pingCtx, nil)
	}
	if err := backoff.Retry(ping, backoff.WithContext(bo, ctx)); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping MongoDB at %s: %w", redact(c.uri), err)
	}

	c.client = client
	c.log.Debug("connected to MongoDB", lg.String("database", c.database))
	return nil
}

// Close disconnects the client. Safe to call when Connect never succeeded.
func (c *Connection) Close(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to close MongoDB connection: %w", err)
	}
	c.client = nil
	return nil
}

// Database returns the configured database handle.
func (c *Connection) Database() *mongo.Database {
	return c.client.Database(c.database)
}

// Formulas returns the default formula collection.
func (c *Connection) Formulas() *mongo.Collection {
	return c.Database().Collection(FormulasCollection)
}

// URI returns the resolved connection string.
func (c *Connection) URI() string {
	return c.uri
}

// redact strips credentials from a connection string before it is surfaced
// in errors or logs.
func redact(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.User == nil {
		return uri
	}
	u.User = url.User("***")
	return u.String()
}
