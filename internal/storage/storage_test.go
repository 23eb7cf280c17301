package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newStore(t *testing.T, max int64) *Store {
	t.Helper()
	s, err := New(t.TempDir(), max)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestSaveOpenRemove(t *testing.T) {
	s := newStore(t, 1<<20)
	data := pngBytes(t, 8, 8)

	st, err := s.Save(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "image/png", st.ContentType)
	assert.EqualValues(t, len(data), st.Size)
	assert.True(t, strings.HasPrefix(st.Path, "tasks/2026/10/"))
	assert.True(t, strings.HasSuffix(st.Path, ".png"))

	f, err := s.Open(st.Path)
	require.NoError(t, err)
	got, err := io.ReadAll(f)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, s.Remove(st.Path))
	require.NoError(t, s.Remove(st.Path), "removing twice is fine")
	_, err = s.Open(st.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveRejectsNonImage(t *testing.T) {
	s := newStore(t, 1<<20)
	_, err := s.Save(context.Background(), strings.NewReader("%PDF-1.7\n1 0 obj\n"))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = s.Save(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnsupported)

	files, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSaveRejectsOversizedAndCleansUp(t *testing.T) {
	data := pngBytes(t, 64, 64)
	s := newStore(t, int64(len(data)-1))

	_, err := s.Save(context.Background(), bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrTooLarge)

	files, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestResolveRejectsEscapes(t *testing.T) {
	s := newStore(t, 1<<20)
	for _, p := range []string{"", "..", "../etc/passwd", "/etc/passwd", "tasks/../../x", `tasks\..\x`} {
		_, err := s.Open(p)
		assert.ErrorIs(t, err, ErrBadPath, p)
	}
}

func TestListReturnsSlashPaths(t *testing.T) {
	s := newStore(t, 1<<20)
	ctx := context.Background()
	a, err := s.Save(ctx, bytes.NewReader(pngBytes(t, 2, 2)))
	require.NoError(t, err)
	b, err := s.Save(ctx, bytes.NewReader(pngBytes(t, 3, 3)))
	require.NoError(t, err)

	files, err := s.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.Path, b.Path}, files)
}

func TestListOlderSkipsFreshFiles(t *testing.T) {
	s := newStore(t, 1<<20)
	ctx := context.Background()
	old, err := s.Save(ctx, bytes.NewReader(pngBytes(t, 2, 2)))
	require.NoError(t, err)
	fresh, err := s.Save(ctx, bytes.NewReader(pngBytes(t, 3, 3)))
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(s.root, filepath.FromSlash(old.Path)), past, past))

	files, err := s.ListOlder(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{old.Path}, files)
	assert.NotContains(t, files, fresh.Path)
}
