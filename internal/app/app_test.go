package app

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanakku/kanakku/internal/config"
	"github.com/kanakku/kanakku/internal/db"
	"github.com/kanakku/kanakku/internal/domain"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "info", Format: "text"}, &buf)

	logger.Debug("hidden")
	logger.Info("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "k=v")
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "debug", Format: "JSON"}, &buf)

	logger.Debug("line added", "product", 7)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "line added", record["msg"])
	assert.EqualValues(t, 7, record["product"])
}

func TestNewLoggerDefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "loud"}, &buf)

	logger.Info("quiet")
	logger.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestWire(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "app.db"), "key")
	require.NoError(t, err)
	defer database.Close()
	require.NoError(t, database.RunMigrations())

	var buf bytes.Buffer
	a := Wire(config.DefaultConfig(), database, NewLogger(config.LogConfig{Level: "error"}, &buf))

	ctx := context.Background()
	doc, err := a.DocumentService.CreateDraft(ctx, domain.KindPurchase, "Acme", time.Now(), a.Config.Documents.PurchasePrefix)
	require.NoError(t, err)
	assert.Contains(t, doc.Number, "PUR-")

	stored, err := a.DocumentRepo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Number, stored.Number)
}
