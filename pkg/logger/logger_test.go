package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/inventory/pkg/logger"
)

func TestNew_ProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "production")

	log.Debug("hidden")
	log.Info("product added", "barcode", "111")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "product added", line["msg"])
	assert.Equal(t, "111", line["barcode"])
}

func TestWithCtx(t *testing.T) {
	var buf bytes.Buffer
	reqLog := logger.New(&buf, "local").With("request_id", "abc")

	ctx := logger.InjectLogger(context.Background(), reqLog)
	logger.WithCtx(ctx).Info("hello")

	assert.Contains(t, buf.String(), "request_id=abc")
	assert.Same(t, logger.L, logger.WithCtx(context.Background()))
}
