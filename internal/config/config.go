// Package config loads billdesk settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings shared by every subcommand.
type Config struct {
	DBPath     string
	InvoiceDir string
	ShopName   string
	Currency   string
	HTTPAddr   string
	LogLevel   string
}

// Load reads an optional .env file from the working directory, then builds
// the Config from environment variables. Real environment variables win over
// values from the file.
//
// A missing .env is not an error. Any other failure to read it is returned
// alongside a Config built from the environment alone, so callers can log it
// once logging is set up.
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path.
func LoadFile(path string) (Config, error) {
	var dotenvErr error
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		dotenvErr = fmt.Errorf("failed to read %s: %w", path, err)
	}
	return FromEnv(), dotenvErr
}

// FromEnv builds the Config from environment variables only.
func FromEnv() Config {
	return Config{
		DBPath:     getEnv("BILLDESK_DB_PATH", "./data/bills.db"),
		InvoiceDir: getEnv("BILLDESK_INVOICE_DIR", "invoices"),
		ShopName:   getEnv("BILLDESK_SHOP_NAME", "Tech & Electronics"),
		Currency:   strings.ToUpper(getEnv("BILLDESK_CURRENCY", "USD")),
		HTTPAddr:   getEnv("BILLDESK_HTTP_ADDR", "127.0.0.1:8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
