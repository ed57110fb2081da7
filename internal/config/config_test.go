package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"BILLDESK_DB_PATH", "BILLDESK_INVOICE_DIR", "BILLDESK_SHOP_NAME", "BILLDESK_CURRENCY", "BILLDESK_HTTP_ADDR", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	if cfg.DBPath != "./data/bills.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.InvoiceDir != "invoices" {
		t.Errorf("InvoiceDir = %q", cfg.InvoiceDir)
	}
	if cfg.ShopName != "Tech & Electronics" {
		t.Errorf("ShopName = %q", cfg.ShopName)
	}
	if cfg.Currency != "USD" {
		t.Errorf("Currency = %q", cfg.Currency)
	}
	if cfg.HTTPAddr != "127.0.0.1:8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("BILLDESK_DB_PATH", "/tmp/shop.db")
	t.Setenv("BILLDESK_CURRENCY", "eur")
	t.Setenv("BILLDESK_SHOP_NAME", "  Corner Shop ")

	cfg := FromEnv()
	if cfg.DBPath != "/tmp/shop.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Currency != "EUR" {
		t.Errorf("Currency should be upper-cased, got %q", cfg.Currency)
	}
	if cfg.ShopName != "Corner Shop" {
		t.Errorf("ShopName should be trimmed, got %q", cfg.ShopName)
	}
}

func TestLoadFileMissingIsNotAnError(t *testing.T) {
	t.Setenv("BILLDESK_SHOP_NAME", "Env Shop")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v, want nil", err)
	}
	if cfg.ShopName != "Env Shop" {
		t.Errorf("ShopName = %q", cfg.ShopName)
	}
}

func TestLoadFileUnreadableReturnsError(t *testing.T) {
	t.Setenv("BILLDESK_SHOP_NAME", "Env Shop")
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.Mkdir(path, 0755); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected an error for an unreadable .env")
	}
	if cfg.ShopName != "Env Shop" {
		t.Errorf("Config should still come from the environment, got ShopName %q", cfg.ShopName)
	}
}
