package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"captura.png", "captura.png"},
		{"report (final).docx", "report__final_.docx"},
		{"informe 2024.pdf", "informe_2024.pdf"},
		{"señal-única.txt", "se_al-_nica.txt"},
		{"safe_name-1.2.tar.gz", "safe_name-1.2.tar.gz"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFileName(tt.in))
	}
}

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads/")
	require.NoError(t, err)

	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	url, err := store.Save("report (final).docx", []byte("contenido"))
	require.NoError(t, err)

	wantName := "1709294400000_report__final_.docx"
	assert.Equal(t, "/uploads/"+wantName, url)

	data, err := os.ReadFile(filepath.Join(dir, wantName))
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(data))
}

func TestNewLocalStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
