// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlake2b(t *testing.T) {
	joined := Blake2b([]byte("vault"), []byte("seed"))
	assert.Equal(t, Blake2b([]byte("vaultseed")), joined)
	assert.NotEqual(t, Blake2b([]byte("vault")), joined)
}

func TestBytes32(t *testing.T) {
	b := Blake2b([]byte("x"))
	parsed, err := ParseBytes32(b.String())
	require.NoError(t, err)
	assert.Equal(t, b, parsed)

	_, err = ParseBytes32("2")
	assert.Error(t, err)

	assert.True(t, Bytes32{}.IsZero())
	assert.Equal(t, byte(9), BytesToBytes32([]byte{9})[31])
}

func TestParams(t *testing.T) {
	assert.Equal(t, 89, StakeRecordSize)
	assert.Equal(t, uint64(161_100_000), MaxPayoutPerAsset)
}
