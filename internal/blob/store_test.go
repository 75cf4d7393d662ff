package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStore_Save(t *testing.T) {
	root := t.TempDir()
	s, err := NewFileStore(root, "")
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "C-1A2B3C4D", "Damage Photo.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Regexp(t, `^/uploads/C-1A2B3C4D/[0-9a-f]{32}\.png$`, url)

	name := filepath.Base(url)
	data, err := os.ReadFile(filepath.Join(root, "C-1A2B3C4D", name))
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(data))

	other, err := s.Save(context.Background(), "C-1A2B3C4D", "Damage Photo.PNG", strings.NewReader("again"))
	require.NoError(t, err)
	require.NotEqual(t, url, other)
}

func TestFileStore_SaveWithoutExtension(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), "/files/")
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "C-1", "README", strings.NewReader("x"))
	require.NoError(t, err)
	require.Regexp(t, `^/files/C-1/[0-9a-f]{32}$`, url)
}

func TestFileStore_RejectsPathClaimIDs(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), "")
	require.NoError(t, err)

	for _, id := range []string{"", "..", "../etc", "a/b"} {
		_, err := s.Save(context.Background(), id, "x.txt", strings.NewReader("x"))
		require.Error(t, err, id)
	}
}
