package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Transport modes understood by the servers
const (
	TransportHTTP   = "http"
	TransportSSE    = "sse"
	TransportStdio  = "stdio"
	TransportCortex = "cortex"
)

// Absent filter modes
const (
	// FilterModeNone makes an unset filter value match no rows
	FilterModeNone = "none"
	// FilterModeAll makes an unset filter value match every row
	FilterModeAll = "all"
)

// DefaultDBFile is the database file name used when DB_PATH is unset
const DefaultDBFile = "expenses.db"

// Service names the environment variables that differ between the servers
// sharing one .env file
type Service struct {
	PortEnv     string
	BaseURLEnv  string
	DefaultPort int
}

// Services loaded by the binaries in cmd/
var (
	ExpenseService    = Service{PortEnv: "EXPENSE_PORT", BaseURLEnv: "EXPENSE_BASE_URL", DefaultPort: 8000}
	CalculatorService = Service{PortEnv: "CALCULATOR_PORT", BaseURLEnv: "CALCULATOR_BASE_URL", DefaultPort: 8001}
)

// Config holds all server configuration
type Config struct {
	ServerPort    int
	TransportMode string
	LogLevel      string
	DBConfig      DatabaseConfig

	// BaseURL is the public origin advertised for the SSE message endpoint.
	// Empty advertises a path relative to the SSE stream.
	BaseURL string

	CategoriesFile   string
	CurrencySymbol   string
	AbsentFilterMode string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Type     string
	Path     string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// LoadConfig loads the configuration of svc from a .env file, if present,
// and the environment
func LoadConfig(svc Service) (*Config, error) {
	if err := loadEnvFiles(".env"); err != nil {
		return nil, err
	}

	port, err := getEnvInt(svc.PortEnv, svc.DefaultPort)
	if err != nil {
		return nil, err
	}

	dbType := getEnv("DB_TYPE", "sqlite")
	dbPort, err := getEnvInt("DB_PORT", defaultDBPort(dbType))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:    port,
		BaseURL:       getEnv(svc.BaseURLEnv, ""),
		TransportMode: getEnv("TRANSPORT_MODE", TransportHTTP),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBConfig: DatabaseConfig{
			Type:     dbType,
			Path:     getEnv("DB_PATH", defaultDBPath()),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", ""),
		},
		CategoriesFile:   getEnv("CATEGORIES_FILE", "categories.json"),
		CurrencySymbol:   getEnv("CURRENCY_SYMBOL", "₹"),
		AbsentFilterMode: getEnv("ABSENT_FILTER_MODE", FilterModeNone),
	}, nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	return errors.Join(c.ValidateServer(), c.ValidateStorage())
}

// ValidateServer checks the transport settings only, for servers without storage
func (c *Config) ValidateServer() error {
	var errs []error

	if c.ServerPort < 1 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d: must be between 1 and 65535", c.ServerPort))
	}

	switch c.TransportMode {
	case TransportHTTP, TransportSSE, TransportStdio, TransportCortex:
	default:
		errs = append(errs, fmt.Errorf("unknown transport mode: %s", c.TransportMode))
	}

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || (u.Path != "" && u.Path != "/") {
			errs = append(errs, fmt.Errorf("invalid base URL %q: must be an http(s) origin without a path", c.BaseURL))
		}
	}

	return errors.Join(errs...)
}

// ValidateStorage checks the database and expense store settings
func (c *Config) ValidateStorage() error {
	var errs []error

	switch c.DBConfig.Type {
	case "sqlite":
		if c.DBConfig.Path == "" {
			errs = append(errs, errors.New("DB_PATH is required for sqlite"))
		}
	case "mysql", "postgres":
		if c.DBConfig.Name == "" {
			errs = append(errs, fmt.Errorf("DB_NAME is required for %s", c.DBConfig.Type))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported database type: %s", c.DBConfig.Type))
	}

	switch c.AbsentFilterMode {
	case FilterModeNone, FilterModeAll:
	default:
		errs = append(errs, fmt.Errorf("unknown absent filter mode: %s", c.AbsentFilterMode))
	}

	return errors.Join(errs...)
}

// loadEnvFiles loads the given dotenv files. Missing files are skipped and
// variables already present in the environment win.
func loadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// defaultDBPath places the database next to the running executable
func defaultDBPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultDBFile
	}
	return filepath.Join(filepath.Dir(exe), DefaultDBFile)
}

func defaultDBPort(dbType string) int {
	if dbType == "postgres" {
		return 5432
	}
	return 3306
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
