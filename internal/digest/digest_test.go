package digest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "shasum/internal/errors"
	"shasum/internal/hash"
	"shasum/internal/pathcheck"
	"shasum/internal/progress"
)

func writeFile(t *testing.T, content []byte) pathcheck.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	ref, err := pathcheck.Check(path)
	require.NoError(t, err)
	return ref
}

type recorder struct {
	total    uint64
	incs     []uint64
	finished []string
}

func (r *recorder) Inc(n uint64) { r.incs = append(r.incs, n) }

func (r *recorder) FinishWithMessage(msg string) { r.finished = append(r.finished, msg) }

func (r *recorder) sum() uint64 {
	var s uint64
	for _, n := range r.incs {
		s += n
	}
	return s
}

func TestFileKnownVectors(t *testing.T) {
	hello := []byte("Hello, world!\n")
	tests := []struct {
		name    string
		content []byte
		alg     hash.Algorithm
		binary  bool
		want    string
	}{
		{"sha256 text", hello, hash.SHA256, false, "d9014c4624844aa5bac314773d6b689ad467fa4e1d1a50a1b8a99d5a95f72ff5"},
		{"sha1 text", hello, hash.SHA1, false, "09fac8dbfd27bd9b4d23a00eb648aa751789536d"},
		{"sha224 text", hello, hash.SHA224, false, "265f20c3d2c50cbb83c887c403cb394048a1047978af0c303dbfcb51"},
		{"sha384 text", hello, hash.SHA384, false, "79a7aec70847c242102b889b298a0720803b340b350cd9e89f574c684d46bfb232b92d2df356fd77e4d2047c43b3f8a0"},
		{"sha512 text", hello, hash.SHA512, false, "09e1e2a84c92b56c8280f4a1203c7cffd61b162cfe987278d4d6be9afbf38c0e8934cdadf83751f4e99d111352bffefc958e5a4852c8a7a29c95742ce59288a8"},
		{"sha256 binary", []byte{0, 1, 2, 3, 4}, hash.SHA256, true, "08bb5e5d6eaac1049ede0893d30ed022b1a4d9b5b48db414871f51c9cb35283d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := writeFile(t, tt.content)
			res, err := File(ref, Options{Algorithm: tt.alg, Binary: tt.binary, Quiet: true})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Digest)
			assert.Equal(t, tt.alg, res.Algorithm)
			assert.Equal(t, ref.Path, res.Path)
			assert.EqualValues(t, len(tt.content), res.Size)
		})
	}
}

func TestFileEmptyInput(t *testing.T) {
	want := map[hash.Algorithm]string{
		hash.SHA1:   "da39a3ee5e6b4b0d3255bfef95601890afd80709",
		hash.SHA224: "d14a028c2a3a2bc9476102bb288234c415a2b01f828ea62ac5b3e42f",
		hash.SHA256: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		hash.SHA384: "38b060a751ac96384cd9327eb1b1e36a21fdb71114be07434c0cc7bf63f6e1da274edebfe76f65fbd51ad2f14898b95b",
		hash.SHA512: "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
	}
	ref := writeFile(t, nil)
	for alg, digest := range want {
		rec := &recorder{}
		res, err := File(ref, Options{Algorithm: alg, Progress: func(total uint64) Observer {
			rec.total = total
			return rec
		}})
		require.NoError(t, err)
		assert.Equal(t, digest, res.Digest, alg.String())
		assert.Empty(t, rec.incs)
		assert.Equal(t, []string{CompletedMessage}, rec.finished)
	}
}

func TestFileDigestLengths(t *testing.T) {
	ref := writeFile(t, []byte("length check"))
	for _, alg := range hash.Algorithms() {
		res, err := File(ref, Options{Algorithm: alg, Quiet: true})
		require.NoError(t, err)
		assert.Len(t, res.Digest, alg.HexLen(), alg.String())
		_, err = hex.DecodeString(res.Digest)
		assert.NoError(t, err)
		assert.Equal(t, strings.ToLower(res.Digest), res.Digest)
	}
}

func TestFileProgressDoesNotChangeDigest(t *testing.T) {
	content := bytes.Repeat([]byte("0123456789abcdef"), 3*ChunkSize/16+7)
	ref := writeFile(t, content)
	want := sha256.Sum256(content)

	quiet, err := File(ref, Options{Algorithm: hash.SHA256, Quiet: true})
	require.NoError(t, err)

	rec := &recorder{}
	tracked, err := File(ref, Options{Algorithm: hash.SHA256, Progress: func(total uint64) Observer {
		rec.total = total
		return rec
	}})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	drawn, err := File(ref, Options{Algorithm: hash.SHA256, Progress: func(total uint64) Observer {
		return progress.NewBar(buf, total, progress.WithColorProfile(termenv.Ascii))
	}})
	require.NoError(t, err)

	assert.Equal(t, hex.EncodeToString(want[:]), quiet.Digest)
	assert.Equal(t, quiet.Digest, tracked.Digest)
	assert.Equal(t, quiet.Digest, drawn.Digest)
	assert.Contains(t, buf.String(), CompletedMessage)

	assert.EqualValues(t, len(content), rec.total)
	assert.EqualValues(t, len(content), rec.sum())
	assert.Len(t, rec.incs, 4)
	for _, n := range rec.incs {
		assert.LessOrEqual(t, n, uint64(ChunkSize))
	}
	assert.Equal(t, []string{CompletedMessage}, rec.finished)
}

func TestFileQuietSkipsProgressFactory(t *testing.T) {
	ref := writeFile(t, []byte("quiet"))
	called := false
	_, err := File(ref, Options{Algorithm: hash.SHA1, Quiet: true, Progress: func(uint64) Observer {
		called = true
		return &recorder{}
	}})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestFileIsDeterministic(t *testing.T) {
	ref := writeFile(t, bytes.Repeat([]byte{0xAB}, ChunkSize+1))
	first, err := File(ref, Options{Algorithm: hash.SHA512, Quiet: true})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := File(ref, Options{Algorithm: hash.SHA512, Quiet: true})
		require.NoError(t, err)
		assert.Equal(t, first.Digest, again.Digest)
	}
}

func TestFileMissingAfterCheck(t *testing.T) {
	ref := writeFile(t, []byte("gone"))
	require.NoError(t, os.Remove(ref.Path))

	rec := &recorder{}
	res, err := File(ref, Options{Algorithm: hash.SHA256, Progress: func(uint64) Observer { return rec }})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrIO)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, 1, strings.Count(err.Error(), ref.Path), "path named once: %s", err)
	assert.Empty(t, res.Digest)
	assert.Empty(t, rec.finished)
}

func TestFileLogsAtDebug(t *testing.T) {
	ref := writeFile(t, []byte("log me"))
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := File(ref, Options{Algorithm: hash.SHA1, Quiet: true, Logger: logger})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "opened file")
	assert.Contains(t, buf.String(), "digest complete")
	assert.Contains(t, buf.String(), "algorithm=SHA-1")
}

func TestReaderChunkBoundaries(t *testing.T) {
	content := bytes.Repeat([]byte("chunk-boundary "), 2000)
	want := sha256.Sum256(content)

	readers := map[string]io.Reader{
		"whole":    bytes.NewReader(content),
		"one byte": iotest.OneByteReader(bytes.NewReader(content)),
		"half":     iotest.HalfReader(bytes.NewReader(content)),
		"data+eof": iotest.DataErrReader(bytes.NewReader(content)),
	}
	for name, r := range readers {
		got, err := Reader(r, hash.SHA256)
		require.NoError(t, err, name)
		assert.Equal(t, hex.EncodeToString(want[:]), got, name)
	}
}

func TestReaderPropagatesReadError(t *testing.T) {
	boom := errors.New("device disconnected")
	_, err := Reader(iotest.ErrReader(boom), hash.SHA256)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, apperrors.ErrIO)

	_, err = Reader(iotest.TimeoutReader(bytes.NewReader(bytes.Repeat([]byte{1}, 3*ChunkSize))), hash.SHA256)
	assert.ErrorIs(t, err, iotest.ErrTimeout)
}

func TestInvalidAlgorithmPanics(t *testing.T) {
	ref := writeFile(t, []byte("x"))
	assert.Panics(t, func() {
		_, _ = File(ref, Options{Quiet: true})
	})
}
