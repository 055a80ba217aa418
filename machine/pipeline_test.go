package machine

import (
	"strings"
	"testing"

	"github.com/bgallie/enigma/cryptors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineMatchesEncrypt(t *testing.T) {
	msg := strings.Repeat("HELLOWORLD", 20)
	want, err := newMachine(t, DefaultSettings()).Encrypt(msg)
	require.NoError(t, err)

	left, right := CreateEncryptMachine(newMachine(t, DefaultSettings()))
	var got strings.Builder
	for p := []byte(msg); len(p) > 0; {
		n := len(p)
		if n > BlockSize {
			n = BlockSize
		}
		left <- NewBlock(p[:n])
		blk := <-right
		require.NoError(t, blk.Err)
		require.Equal(t, n, blk.Length)
		got.Write(blk.Data[:blk.Length])
		p = p[n:]
	}

	// shut down
	left <- Block{}
	blk := <-right
	assert.Equal(t, 0, blk.Length)
	assert.Equal(t, want, got.String())
}

func TestPipelineBadBlock(t *testing.T) {
	m := newMachine(t, DefaultSettings())
	left, right := CreateEncryptMachine(m)

	left <- NewBlock([]byte("AB1"))
	blk := <-right
	assert.ErrorIs(t, blk.Err, cryptors.ErrInvalidCharacter)
	assert.Equal(t, "AB1", string(blk.Data[:blk.Length]))

	// the rotors did not move, so the next block starts at AAA
	left <- NewBlock([]byte("AAAAA"))
	blk = <-right
	require.NoError(t, blk.Err)
	assert.Equal(t, "BDZGO", string(blk.Data[:blk.Length]))

	left <- Block{}
	<-right
}

func TestCreateEncryptMachinePanicsWithoutMachine(t *testing.T) {
	assert.Panics(t, func() { CreateEncryptMachine(nil) })
}

func TestNewBlockTruncates(t *testing.T) {
	blk := NewBlock([]byte(strings.Repeat("A", BlockSize+10)))
	assert.Equal(t, BlockSize, blk.Length)
}
