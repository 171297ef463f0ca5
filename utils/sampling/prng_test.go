//go:build !masking_hardened

package sampling_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/lattigo-masking/utils/sampling"
)

type counterDevice struct {
	next    uint32
	ready   bool
	polls   int
	readyAt int
}

func (d *counterDevice) DataReady() bool {
	d.polls++
	return d.ready || (d.readyAt > 0 && d.polls%d.readyAt == 0)
}

func (d *counterDevice) ReadWord() (w uint32) {
	w = d.next
	d.next++
	return
}

func Test_PRNG(t *testing.T) {

	t.Run("KeyedPRNG", func(t *testing.T) {

		key := []byte{0x49, 0x0a, 0x42, 0x3d, 0x97, 0x9d, 0xc1, 0x07, 0xa1, 0xd7, 0xe9, 0x7b, 0x3b, 0xce, 0xa1, 0xdb,
			0x42, 0xf3, 0xa6, 0xd5, 0x75, 0xd2, 0x0c, 0x92, 0xb7, 0x35, 0xce, 0x0c, 0xee, 0x09, 0x7c, 0x98}

		Ha, _ := sampling.NewKeyedPRNG(key)
		Hb, _ := sampling.NewKeyedPRNG(key)

		sum0 := make([]byte, 512)
		sum1 := make([]byte, 512)

		for i := 0; i < 128; i++ {
			Hb.Read(sum1)
		}

		Hb.Reset()

		Ha.Read(sum0)
		Hb.Read(sum1)

		require.Equal(t, sum0, sum1)
		require.Equal(t, key, Ha.Key())
	})

	t.Run("DeriveKey", func(t *testing.T) {
		k0 := sampling.DeriveKey("masking test a", []byte("seed"))
		k1 := sampling.DeriveKey("masking test a", []byte("seed"))
		k2 := sampling.DeriveKey("masking test b", []byte("seed"))
		require.Len(t, k0, 32)
		require.Equal(t, k0, k1)
		require.NotEqual(t, k0, k2)
	})

	t.Run("ThreadSafePRNG", func(t *testing.T) {
		prng, err := sampling.NewPRNG()
		require.NoError(t, err)
		buf := make([]byte, 64)
		n, err := prng.Read(buf)
		require.NoError(t, err)
		require.Equal(t, 64, n)
	})
}

func TestPollingSource(t *testing.T) {

	t.Run("LittleEndian", func(t *testing.T) {
		dev := &counterDevice{next: 0x04030201, ready: true}
		src := sampling.NewPollingSource(dev, 8)

		buf := make([]byte, 8)
		n, err := src.Read(buf)
		require.NoError(t, err)
		require.Equal(t, 8, n)
		require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x02, 0x02, 0x03, 0x04}, buf)
	})

	t.Run("SlowDevice", func(t *testing.T) {
		dev := &counterDevice{readyAt: 5}
		src := sampling.NewPollingSource(dev, 5)

		buf := make([]byte, 12)
		n, err := src.Read(buf)
		require.NoError(t, err)
		require.Equal(t, 12, n)
		require.Equal(t, 15, dev.polls)
	})

	t.Run("Unavailable", func(t *testing.T) {
		dev := &counterDevice{}
		src := sampling.NewPollingSource(dev, 16)

		n, err := src.Read(make([]byte, 4))
		require.Zero(t, n)
		require.True(t, errors.Is(err, sampling.ErrEntropyUnavailable))
		require.Equal(t, 16, dev.polls)
	})
}
