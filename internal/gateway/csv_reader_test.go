package gateway_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wage-settlement/internal/gateway"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGetRows_ChineseHeaders(t *testing.T) {
	path := writeCSV(t, "日期,姓名,是否施工,项目\n2025-11-01,王怀宇,是,测试项目\n2025-11-02,张三,否,测试项目\n")

	repo := gateway.NewCSVRowRepository()
	rows, err := repo.GetRows(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "王怀宇", rows[0]["姓名"])
	assert.Equal(t, "是", rows[0]["是否施工"])
	assert.Equal(t, "否", rows[1]["是否施工"])
}

func TestGetRows_StripsBOMAndHeaderPadding(t *testing.T) {
	path := writeCSV(t, "\ufeff日期, 姓名 ,是否施工\n2025-11-01,王怀宇,是\n")

	repo := gateway.NewCSVRowRepository()
	rows, err := repo.GetRows(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "2025-11-01", rows[0]["日期"])
	assert.Equal(t, "王怀宇", rows[0]["姓名"])
}

func TestGetRows_PadsShortRecords(t *testing.T) {
	path := writeCSV(t, "日期,姓名,是否施工,备注\n2025-11-01,王怀宇,是\n")

	repo := gateway.NewCSVRowRepository()
	rows, err := repo.GetRows(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	value, ok := rows[0]["备注"]
	assert.True(t, ok)
	assert.Equal(t, "", value)
}

func TestGetRows_EmptyBody(t *testing.T) {
	path := writeCSV(t, "日期,姓名,是否施工\n")

	repo := gateway.NewCSVRowRepository()
	rows, err := repo.GetRows(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGetRows_MissingFile(t *testing.T) {
	repo := gateway.NewCSVRowRepository()

	_, err := repo.GetRows(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open table file")
}

func TestGetRows_EmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	repo := gateway.NewCSVRowRepository()
	_, err := repo.GetRows(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read header")
}
