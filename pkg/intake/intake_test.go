package intake

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDirectory(t *testing.T) {
	dir := t.TempDir()
	content := "【工商银行】您尾号1234账户于10月12日收入1000.00元\r\n\n[农业银行]11月5日您尾号9876银行卡支出350.00元\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte(content), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignore me"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	sources, err := New(log.New(io.Discard)).ReadDirectory(dir)
	require.NoError(t, err)
	require.Len(t, sources, 1)

	assert.Equal(t, "a.txt", sources[0].Name)
	require.Len(t, sources[0].Lines, 2)
	assert.Equal(t, "【工商银行】您尾号1234账户于10月12日收入1000.00元", sources[0].Lines[0])
}

func TestReadDirectorySkipsBrokenXls(t *testing.T) {
	dir := t.TempDir()
	// Not a real workbook; the reader must log and move on.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.xls"), []byte("not an xls"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.txt"), []byte("10月1日收入1.00元\n"), 0o644))

	sources, err := New(log.New(io.Discard)).ReadDirectory(dir)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "ok.txt", sources[0].Name)
}

func TestReadDirectoryMissing(t *testing.T) {
	_, err := New(log.New(io.Discard)).ReadDirectory(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
