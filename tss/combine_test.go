// Copyright 2024 the tss authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tss_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/secretshare/tss/tss"
	"github.com/secretshare/tss/tss/hashing"
	"github.com/secretshare/tss/tss/sharefmt"
)

func splitHello(t *testing.T) [][]byte {
	t.Helper()
	return mustSplit(t, tss.SplitConfig{
		Secret:       []byte("hello"),
		Threshold:    2,
		NumShares:    3,
		Identifier:   []byte("testid0000000000"),
		Hash:         hashing.None,
		PadBlocksize: 16,
	})
}

func TestCombineAnyPairOfThree(t *testing.T) {
	shares := splitHello(t)
	for i := 0; i < len(shares); i++ {
		for j := i + 1; j < len(shares); j++ {
			res := mustCombine(t, tss.CombineConfig{Shares: [][]byte{shares[i], shares[j]}})
			require.Equal(t, []byte("hello"), res.Secret)
			require.Equal(t, []byte("testid0000000000"), res.Identifier)
			require.Equal(t, 2, res.Threshold)
			require.Empty(t, res.Digest)
		}
	}
}

func TestCombineBelowThreshold(t *testing.T) {
	shares := splitHello(t)
	_, err := tss.Combine(context.Background(), tss.CombineConfig{Shares: shares[:1]})
	require.Error(t, err)
	require.ErrorAs(t, err, new(*tss.ArgumentError))
}

func TestCombineEverySubsetVerifies(t *testing.T) {
	secret := []byte("my deep dark secret")
	shares := mustSplit(t, tss.SplitConfig{
		Secret:       secret,
		Threshold:    3,
		NumShares:    5,
		Hash:         hashing.SHA256,
		PadBlocksize: 16,
	})

	subsets := 0
	for i := 0; i < 5; i++ {
		for j := i + 1; j < 5; j++ {
			for k := j + 1; k < 5; k++ {
				res := mustCombine(t, tss.CombineConfig{
					Shares: [][]byte{shares[i], shares[j], shares[k]},
				})
				require.Equal(t, secret, res.Secret)
				subsets++
			}
		}
	}
	require.Equal(t, 10, subsets)
}

func TestCorruptShareFailsDigestAndCombinationsRecover(t *testing.T) {
	secret := []byte("my deep dark secret")
	shares := mustSplit(t, tss.SplitConfig{
		Secret:       secret,
		Threshold:    3,
		NumShares:    5,
		Hash:         hashing.SHA256,
		PadBlocksize: 16,
	})

	// Flip one payload bit in share #3.
	shares[2][sharefmt.HeaderSize+3] ^= 0x01

	// Any subset containing share #3 fails verification.
	_, err := tss.Combine(context.Background(), tss.CombineConfig{
		Shares: [][]byte{shares[0], shares[2], shares[4]},
	})
	require.Error(t, err)
	require.ErrorAs(t, err, new(*tss.DigestMismatchError))

	// A clean subset still verifies.
	res := mustCombine(t, tss.CombineConfig{
		Shares: [][]byte{shares[0], shares[1], shares[3]},
	})
	require.Equal(t, secret, res.Secret)

	// Combinations over all five skips the corrupt subsets and
	// recovers the secret.
	res = mustCombine(t, tss.CombineConfig{
		Shares:   shares,
		SelectBy: tss.SelectCombinations,
	})
	require.Equal(t, secret, res.Secret)
}

func TestCombineSingleZeroByteNoPadding(t *testing.T) {
	shares := mustSplit(t, tss.SplitConfig{
		Secret:    []byte{0x00},
		Threshold: 2,
		NumShares: 2,
		Hash:      hashing.None,
	})
	res := mustCombine(t, tss.CombineConfig{Shares: shares, NoPadding: true})
	require.Equal(t, []byte{0x00}, res.Secret)
}

func TestCombineSampleSelection(t *testing.T) {
	secret := []byte("sampled")
	shares := mustSplit(t, tss.SplitConfig{
		Secret:       secret,
		Threshold:    2,
		NumShares:    5,
		Hash:         hashing.SHA256,
		PadBlocksize: 16,
	})
	res := mustCombine(t, tss.CombineConfig{
		Shares:   shares,
		SelectBy: tss.SelectSample,
		Rand:     &countingSource{},
	})
	require.Equal(t, secret, res.Secret)
}

func TestCombinationsGuard(t *testing.T) {
	shares := mustSplit(t, tss.SplitConfig{
		Secret:    []byte("x"),
		Threshold: 128,
		NumShares: 255,
		Hash:      hashing.SHA256,
	})
	_, err := tss.Combine(context.Background(), tss.CombineConfig{
		Shares:    shares,
		SelectBy:  tss.SelectCombinations,
		NoPadding: true,
	})
	require.Error(t, err)
	require.ErrorAs(t, err, new(*tss.ArgumentError))
	require.Contains(t, err.Error(), "combination")
}

func TestCombinationsNeedDigest(t *testing.T) {
	shares := splitHello(t)
	_, err := tss.Combine(context.Background(), tss.CombineConfig{
		Shares:   shares,
		SelectBy: tss.SelectCombinations,
	})
	require.Error(t, err)
	require.ErrorAs(t, err, new(*tss.ArgumentError))
}

func TestCombinationsExhaustedIsNoSecret(t *testing.T) {
	shares := mustSplit(t, tss.SplitConfig{
		Secret:       []byte("doomed"),
		Threshold:    2,
		NumShares:    3,
		Hash:         hashing.SHA256,
		PadBlocksize: 16,
	})
	// Corrupt every share; no subset can verify.
	for _, share := range shares {
		share[sharefmt.HeaderSize+2] ^= 0xff
	}
	_, err := tss.Combine(context.Background(), tss.CombineConfig{
		Shares:   shares,
		SelectBy: tss.SelectCombinations,
	})
	require.Error(t, err)
	require.ErrorAs(t, err, new(*tss.NoSecretError))
}

func TestCombinationsHonorCancellation(t *testing.T) {
	shares := mustSplit(t, tss.SplitConfig{
		Secret:       []byte("slow search"),
		Threshold:    3,
		NumShares:    6,
		Hash:         hashing.SHA256,
		PadBlocksize: 16,
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tss.Combine(ctx, tss.CombineConfig{
		Shares:   shares,
		SelectBy: tss.SelectCombinations,
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCombineMixedFormats(t *testing.T) {
	binary := mustSplit(t, tss.SplitConfig{
		Secret:       []byte("mixed"),
		Threshold:    2,
		NumShares:    2,
		Identifier:   []byte("mixedformats0000"),
		Hash:         hashing.SHA256,
		PadBlocksize: 16,
	})
	human, err := sharefmt.ToHuman(binary[1])
	require.NoError(t, err)

	_, err = tss.Combine(context.Background(), tss.CombineConfig{
		Shares: [][]byte{binary[0], []byte(human)},
	})
	require.Error(t, err)
	require.ErrorAs(t, err, new(*tss.ArgumentError))
}

func TestCombineInconsistentHeaders(t *testing.T) {
	a := splitHello(t)
	b := mustSplit(t, tss.SplitConfig{
		Secret:       []byte("hello"),
		Threshold:    2,
		NumShares:    3,
		Identifier:   []byte("otherid000000000"),
		Hash:         hashing.None,
		PadBlocksize: 16,
	})
	_, err := tss.Combine(context.Background(), tss.CombineConfig{
		Shares: [][]byte{a[0], b[1]},
	})
	require.Error(t, err)
	require.ErrorAs(t, err, new(*tss.ArgumentError))
}

func TestCombineDuplicateAndZeroX(t *testing.T) {
	shares := splitHello(t)

	dup := append([]byte(nil), shares[0]...)
	_, err := tss.Combine(context.Background(), tss.CombineConfig{
		Shares: [][]byte{shares[0], dup},
	})
	require.Error(t, err)
	require.ErrorAs(t, err, new(*tss.ArgumentError))

	zeroed := append([]byte(nil), shares[0]...)
	zeroed[sharefmt.HeaderSize] = 0
	_, err = tss.Combine(context.Background(), tss.CombineConfig{
		Shares: [][]byte{zeroed, shares[1]},
	})
	require.Error(t, err)
	require.ErrorAs(t, err, new(*tss.ArgumentError))
}

func TestCombineUnequalLengths(t *testing.T) {
	shares := splitHello(t)
	truncated := shares[1][:len(shares[1])-1]
	_, err := tss.Combine(context.Background(), tss.CombineConfig{
		Shares: [][]byte{shares[0], truncated},
	})
	require.Error(t, err)
	require.ErrorAs(t, err, new(*tss.ArgumentError))
}

func TestCombineMalformedHumanShare(t *testing.T) {
	_, err := tss.Combine(context.Background(), tss.CombineConfig{
		Shares: [][]byte{[]byte("tss~id~2~!!notbase64!!"), []byte("tss~id~2~QUJD")},
	})
	require.Error(t, err)
}

func TestCombineUnknownHashCode(t *testing.T) {
	shares := splitHello(t)
	for _, share := range shares {
		share[16] = 9 // corrupt the hash_id octet in every header
	}
	_, err := tss.Combine(context.Background(), tss.CombineConfig{Shares: shares})
	require.Error(t, err)
	require.ErrorAs(t, err, new(*tss.ArgumentError))
}

func TestCombineNoShares(t *testing.T) {
	_, err := tss.Combine(context.Background(), tss.CombineConfig{})
	require.Error(t, err)
	require.ErrorAs(t, err, new(*tss.ArgumentError))
}

func TestCombineDoesNotMutateInputs(t *testing.T) {
	shares := splitHello(t)
	original := append([]byte(nil), shares[0]...)
	mustCombine(t, tss.CombineConfig{Shares: shares})
	require.Equal(t, original, shares[0])
}
