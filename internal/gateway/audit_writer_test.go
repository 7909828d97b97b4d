package gateway_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wage-settlement/internal/domain"
	"wage-settlement/internal/gateway"
)

func TestAuditWrite_PathAndContent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	writer := gateway.NewFileAuditWriter(dir)

	record := domain.AuditRecord{
		RunID:          "run-42",
		RulesetVersion: "v2025-11-25R52",
		InputHash:      "aabbccddeeff0011",
		OutputHash:     "1122334455667788",
		Blocked:        false,
	}

	path, err := writer.Write(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "run-42_aabbccdd.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var stored domain.AuditRecord
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, record.RunID, stored.RunID)
	assert.Equal(t, record.InputHash, stored.InputHash)
	assert.Equal(t, record.OutputHash, stored.OutputHash)
	assert.False(t, stored.Blocked)
}

func TestAuditWrite_ShortHash(t *testing.T) {
	dir := t.TempDir()
	writer := gateway.NewFileAuditWriter(dir)

	path, err := writer.Write(context.Background(), domain.AuditRecord{RunID: "r1", InputHash: "abc"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "r1_abc.json"), path)
}

func TestAuditWrite_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "logs")
	writer := gateway.NewFileAuditWriter(dir)

	_, err := writer.Write(context.Background(), domain.AuditRecord{RunID: "r1", InputHash: "aabbccddee"})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
