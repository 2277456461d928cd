package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// Import database drivers
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/FreePeak/expense-mcp-server/internal/logger"
)

// Common database errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoDatabase   = errors.New("no database connection")
)

// Config represents database connection configuration
type Config struct {
	Type string
	// Path is the database file for sqlite
	Path     string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// SetDefaults sets default values for the configuration if they are not set
func (c *Config) SetDefaults() {
	if c.Type == string(DialectSQLite) {
		// One connection serialises writers; lifetimes stay unlimited.
		c.MaxOpenConns = 1
		c.MaxIdleConns = 1
		return
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 25
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 5
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = 5 * time.Minute
	}
	if c.ConnMaxIdleTime == 0 {
		c.ConnMaxIdleTime = 5 * time.Minute
	}
}

// Database represents a generic database interface
type Database interface {
	// Core database operations
	Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

	// Transaction support
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)

	// Connection management
	Connect() error
	Close() error
	Ping(ctx context.Context) error

	// Metadata
	DriverName() string
	ConnectionString() string
	Dialect() Dialect

	// DB object access (for specific DB operations)
	DB() *sql.DB
}

// database is the concrete implementation of the Database interface
type database struct {
	config     Config
	db         *sql.DB
	driverName string
	dsn        string
	dialect    Dialect
}

// NewDatabase creates a new database handle based on the provided configuration.
// No connection is made until Connect is called.
func NewDatabase(config Config) (Database, error) {
	config.SetDefaults()

	driverName, dsn, err := buildDSN(config)
	if err != nil {
		return nil, err
	}

	return &database{
		config:     config,
		driverName: driverName,
		dsn:        dsn,
		dialect:    Dialect(config.Type),
	}, nil
}

// buildDSN returns the driver name and data source name for a configuration
func buildDSN(config Config) (string, string, error) {
	switch Dialect(config.Type) {
	case DialectSQLite:
		if config.Path == "" {
			return "", "", fmt.Errorf("%w: sqlite requires a database path", ErrInvalidInput)
		}
		return "sqlite", config.Path + "?_pragma=busy_timeout(5000)", nil
	case DialectMySQL:
		return "mysql", fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			config.User, config.Password, config.Host, config.Port, config.Name), nil
	case DialectPostgres:
		return "postgres", fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			config.Host, config.Port, config.User, config.Password, config.Name), nil
	default:
		return "", "", fmt.Errorf("unsupported database type: %s", config.Type)
	}
}

// Connect establishes a connection to the database
func (d *database) Connect() error {
	db, err := d.open()
	if err != nil {
		return err
	}
	d.db = db
	logger.Info("Connected to %s database at %s", d.config.Type, d.ConnectionString())
	return nil
}

// open opens and verifies a new connection pool
func (d *database) open() (*sql.DB, error) {
	db, err := sql.Open(d.driverName, d.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(d.config.MaxOpenConns)
	db.SetMaxIdleConns(d.config.MaxIdleConns)
	db.SetConnMaxLifetime(d.config.ConnMaxLifetime)
	db.SetConnMaxIdleTime(d.config.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Warn("Error closing database connection: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Close closes the database connection
func (d *database) Close() error {
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// Ping checks if the database connection is still alive
func (d *database) Ping(ctx context.Context) error {
	if d.db == nil {
		return ErrNoDatabase
	}
	return d.db.PingContext(ctx)
}

// Query executes a query that returns rows
func (d *database) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	if d.db == nil {
		return nil, ErrNoDatabase
	}
	return d.db.QueryContext(ctx, d.dialect.Rebind(query), args...)
}

// Exec executes a query without returning any rows
func (d *database) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	if d.db == nil {
		return nil, ErrNoDatabase
	}
	return d.db.ExecContext(ctx, d.dialect.Rebind(query), args...)
}

// BeginTx starts a transaction
func (d *database) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	if d.db == nil {
		return nil, ErrNoDatabase
	}
	return d.db.BeginTx(ctx, opts)
}

// DB returns the underlying database connection
func (d *database) DB() *sql.DB {
	return d.db
}

// DriverName returns the name of the database driver
func (d *database) DriverName() string {
	return d.driverName
}

// Dialect returns the SQL dialect spoken by the database
func (d *database) Dialect() Dialect {
	return d.dialect
}

// ConnectionString returns the connection string (with password masked)
func (d *database) ConnectionString() string {
	switch d.dialect {
	case DialectSQLite:
		return d.config.Path
	case DialectMySQL:
		return fmt.Sprintf("%s:***@tcp(%s:%d)/%s",
			d.config.User, d.config.Host, d.config.Port, d.config.Name)
	case DialectPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=*** dbname=%s sslmode=disable",
			d.config.Host, d.config.Port, d.config.User, d.config.Name)
	default:
		return "unknown"
	}
}
