package md5step

import (
	"crypto/md5"
	"github.com/aead/chacha20/chacha"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"gotest.tools/v3/assert"
	"hash"
	"testing"
)

// keystream fills n bytes deterministically from seed.
func keystream(n int, seed byte) []byte {
	var key [32]byte
	var nonce [8]byte
	key[0] = seed
	msg := make([]byte, n)
	chacha.XORKeyStream(msg, msg, nonce[:], key[:], 20)
	return msg
}

func TestDigestMatchesStdlib(t *testing.T) {
	var _ hash.Hash = New()
	for n := 0; n <= 300; n++ {
		msg := keystream(n, byte(n))
		want := md5.Sum(msg)
		assert.Equal(t, Sum(msg), want, "n=%d", n)

		/* Same message, written in uneven pieces. */
		d := NewDigest()
		for rest, i := msg, 1; len(rest) > 0; i++ {
			k := i % 23
			if k > len(rest) {
				k = len(rest)
			}
			d.Write(rest[:k])
			rest = rest[k:]
		}
		assert.DeepEqual(t, d.Sum(nil), want[:])
	}
}

type brokenFeeder struct{}

func (brokenFeeder) read([]byte) (int, error) { return 0, errors.New("gone") }

func (brokenFeeder) finish() {}

func TestMustApplyPanicsOnFailedTransition(t *testing.T) {
	s := State{Phase: ReadingData, H1: init1, H2: init2, H3: init3, H4: init4}
	defer func() {
		r := recover()
		err, ok := r.(error)
		assert.Assert(t, ok, "recovered %v", r)
		var re *ReadError
		assert.Assert(t, errors.As(err, &re))
		assert.ErrorContains(t, err, "in-memory transition from ReadingData")
	}()
	mustApply(brokenFeeder{}, &s)
	t.Fatal("mustApply returned")
}

func TestDigestSumContinues(t *testing.T) {
	d := New()
	d.Write([]byte("message "))
	first := d.Sum([]byte("prefix"))
	assert.Equal(t, string(first[:6]), "prefix")
	want := md5.Sum([]byte("message "))
	assert.DeepEqual(t, first[6:], want[:])

	d.Write([]byte("digest"))
	want = md5.Sum([]byte("message digest"))
	assert.DeepEqual(t, d.Sum(nil), want[:])

	d.Reset()
	want = md5.Sum(nil)
	assert.DeepEqual(t, d.Sum(nil), want[:])
	assert.Equal(t, d.Size(), Size)
	assert.Equal(t, d.BlockSize(), BlockSize)
}

func TestDigestAgreesWithStepper(t *testing.T) {
	msg := keystream(1000, 42)
	d := NewDigest()
	d.Write(msg)
	assert.Equal(t, d.State().Phase, ReadingData)
	assert.Equal(t, d.State().BytesHashed, uint64(960))

	st := run(t, msg)
	var sum [Size]byte
	copy(sum[:], d.Sum(nil))
	assert.Equal(t, sum, st.Digest())
}

func BenchmarkDigest(b *testing.B) {
	d, msg := NewDigest(), make([]byte, 1<<10)
	b.SetBytes(1 << 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Write(msg)
		d.Sum(nil)
	}
	b.StopTimer()
	d.Reset()
}

func BenchmarkMD5(b *testing.B) {
	h, msg := md5.New(), make([]byte, 1<<10)
	b.SetBytes(1 << 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Write(msg)
		h.Sum(nil)
	}
	b.StopTimer()
	h.Reset()
}

func BenchmarkBlake3(b *testing.B) {
	h, msg := blake3.New(), make([]byte, 1<<10)
	b.SetBytes(1 << 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Write(msg)
		h.Sum(nil)
	}
	b.StopTimer()
	h.Reset()
}

func BenchmarkXXH3(b *testing.B) {
	h, msg := xxh3.New(), make([]byte, 1<<10)
	b.SetBytes(1 << 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Write(msg)
		h.Sum(nil)
	}
	b.StopTimer()
	h.Reset()
}
