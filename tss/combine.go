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

package tss

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"github.com/secretshare/tss/tss/hashing"
	"github.com/secretshare/tss/tss/internal/entropy"
	"github.com/secretshare/tss/tss/internal/poly"
	"github.com/secretshare/tss/tss/sharefmt"
)

// SelectMode picks which M of the supplied shares reconstruct the
// secret when more than M are given.
type SelectMode int

const (
	// SelectFirst takes the first M shares in input order.
	SelectFirst SelectMode = iota
	// SelectSample takes a uniformly random M-subset.
	SelectSample
	// SelectCombinations tries M-subsets in lexicographic order until
	// one reconstructs a digest-verified secret. Only valid for
	// digest-bearing share sets.
	SelectCombinations
)

// maxCombinations caps the subsets SelectCombinations may enumerate.
const maxCombinations = 1_000_000

// CombineConfig carries the inputs to Combine.
type CombineConfig struct {
	// Shares holds one share per entry, either all binary or all human
	// strings. Mixed inputs fail.
	Shares [][]byte
	// SelectBy picks the share subset. Defaults to SelectFirst.
	SelectBy SelectMode
	// NoPadding disables the final PKCS#7 unpad for secrets split with
	// a zero pad blocksize.
	NoPadding bool
	// Rand is the entropy source for SelectSample. Nil selects the
	// system CSPRNG.
	Rand entropy.Source
}

// CombineResult is the outcome of a verified reconstruction.
type CombineResult struct {
	// Secret is the reconstructed secret.
	Secret []byte
	// Identifier is the 16-octet label the shares carried.
	Identifier []byte
	// Threshold is the share count the reconstruction used.
	Threshold int
	// Hash is the digest algorithm embedded at split time.
	Hash hashing.Alg
	// Digest is the embedded digest in hex, empty when none was
	// embedded.
	Digest string
	// Elapsed is the wall time the combine took.
	Elapsed time.Duration
}

// Combine validates the supplied shares, selects a subset of exactly
// the threshold size, and reconstructs the secret, verifying the
// embedded digest when one is present. ctx is consulted between
// combination attempts in SelectCombinations mode.
func Combine(ctx context.Context, cfg CombineConfig) (*CombineResult, error) {
	start := time.Now()

	shares, err := normalizeShares(cfg.Shares)
	if err != nil {
		return nil, err
	}
	header, err := validateShareSet(shares)
	if err != nil {
		return nil, err
	}
	alg, err := hashing.FromCode(header.HashCode)
	if err != nil {
		// validateShareSet already checked the code.
		return nil, argumentErrorf("%v", err)
	}
	threshold := int(header.Threshold)

	// Strip the headers. xs[i] is share i's X coordinate; columns[p]
	// holds the payload octets at position p across all shares.
	xs := make([]byte, len(shares))
	payloadLen := len(shares[0]) - sharefmt.HeaderSize - 1
	columns := make([][]byte, payloadLen)
	for p := range columns {
		columns[p] = make([]byte, len(shares))
	}
	for i, share := range shares {
		body := share[sharefmt.HeaderSize:]
		xs[i] = body[0]
		for p, octet := range body[1:] {
			columns[p][i] = octet
		}
	}
	if err := validateXCoordinates(xs); err != nil {
		return nil, err
	}

	padding := !cfg.NoPadding

	var secret, embedded []byte
	switch cfg.SelectBy {
	case SelectFirst:
		secret, embedded, err = reconstructSubset(firstIndices(threshold), xs, columns, alg, padding)
	case SelectSample:
		src := cfg.Rand
		if src == nil {
			src = entropy.System()
		}
		var picked []int
		picked, err = sampleIndices(src, len(shares), threshold)
		if err == nil {
			secret, embedded, err = reconstructSubset(picked, xs, columns, alg, padding)
		}
	case SelectCombinations:
		secret, embedded, err = reconstructCombinations(ctx, xs, columns, alg, padding, threshold)
	default:
		err = argumentErrorf("unknown share selection mode %d", cfg.SelectBy)
	}
	if err != nil {
		return nil, err
	}

	return &CombineResult{
		Secret:     secret,
		Identifier: append([]byte(nil), header.Identifier[:]...),
		Threshold:  threshold,
		Hash:       alg,
		Digest:     hex.EncodeToString(embedded),
		Elapsed:    time.Since(start),
	}, nil
}

// normalizeShares defensively copies the share list and resolves the
// input format: when every share matches the human pattern all are
// decoded to binary, otherwise all must already be binary.
func normalizeShares(in [][]byte) ([][]byte, error) {
	if len(in) == 0 {
		return nil, argumentErrorf("no shares provided")
	}
	human := 0
	for _, s := range in {
		if sharefmt.IsHuman(s) {
			human++
		}
	}
	out := make([][]byte, len(in))
	switch human {
	case len(in):
		for i, s := range in {
			decoded, err := sharefmt.FromHuman(string(s))
			if err != nil {
				return nil, formatErrorf("share %d: %v", i+1, err)
			}
			out[i] = decoded
		}
	case 0:
		for i, s := range in {
			out[i] = append([]byte(nil), s...)
		}
	default:
		return nil, argumentErrorf("mixed human and binary shares: %d of %d look human", human, len(in))
	}
	return out, nil
}

// reconstructSubset interpolates every payload column over the chosen
// shares and finishes the trial secret (digest strip and verify,
// unpad).
func reconstructSubset(indices []int, xs []byte, columns [][]byte, alg hashing.Alg, padding bool) ([]byte, []byte, error) {
	subXs := make([]byte, len(indices))
	for i, idx := range indices {
		subXs[i] = xs[idx]
	}
	raw := make([]byte, len(columns))
	subYs := make([]byte, len(indices))
	for p, column := range columns {
		for i, idx := range indices {
			subYs[i] = column[idx]
		}
		octet, err := poly.Interpolate(subXs, subYs)
		if err != nil {
			return nil, nil, argumentErrorf("interpolating payload octet %d: %v", p, err)
		}
		raw[p] = octet
	}
	return finishReconstruction(raw, alg, padding)
}

// finishReconstruction turns interpolated payload octets into the
// secret: unpad first (padding is applied over secret-plus-digest at
// split time), then strip and verify the embedded digest.
func finishReconstruction(raw []byte, alg hashing.Alg, padding bool) ([]byte, []byte, error) {
	body := raw
	if padding {
		var err error
		body, err = pkcs7Unpad(raw)
		if err != nil {
			if alg != hashing.None {
				// A digest-bearing payload with broken padding is a
				// failed verification, not a missing secret.
				return nil, nil, digestMismatchErrorf("reconstruction failed verification: %v", err)
			}
			return nil, nil, noSecretErrorf("reconstruction failed: %v", err)
		}
	}
	if alg == hashing.None {
		if len(body) == 0 {
			return nil, nil, noSecretErrorf("reconstruction produced an empty secret")
		}
		return body, nil, nil
	}
	size := alg.Size()
	if len(body) <= size {
		return nil, nil, noSecretErrorf("reconstructed payload of %d octets cannot hold a %s digest and a secret", len(body), alg)
	}
	secret := body[:len(body)-size]
	embedded := body[len(body)-size:]
	actual := alg.Digest(secret)
	if subtle.ConstantTimeCompare(actual, embedded) != 1 {
		return nil, nil, digestMismatchErrorf("embedded %s digest does not match the reconstructed secret", alg)
	}
	return secret, embedded, nil
}

// reconstructCombinations tries threshold-sized subsets in
// lexicographic order until one verifies. Digest mismatches and unpad
// failures skip to the next subset; anything else aborts.
func reconstructCombinations(ctx context.Context, xs []byte, columns [][]byte, alg hashing.Alg, padding bool, threshold int) ([]byte, []byte, error) {
	if alg == hashing.None {
		return nil, nil, argumentErrorf("combinations selection needs a digest-bearing share set")
	}
	count, ok := combinationCount(len(xs), threshold)
	if !ok {
		return nil, nil, argumentErrorf("C(%d, %d) exceeds the %d combination cap", len(xs), threshold, maxCombinations)
	}
	indices := firstIndices(threshold)
	for attempt := int64(0); attempt < count; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		secret, embedded, err := reconstructSubset(indices, xs, columns, alg, padding)
		if err == nil {
			return secret, embedded, nil
		}
		var digestErr *DigestMismatchError
		var noSecretErr *NoSecretError
		if !errors.As(err, &digestErr) && !errors.As(err, &noSecretErr) {
			return nil, nil, err
		}
		if !nextCombination(indices, len(xs)) {
			break
		}
	}
	return nil, nil, noSecretErrorf("no subset of %d shares reconstructed a verified secret", threshold)
}

func firstIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// nextCombination advances indices to the lexicographically next
// k-combination of 0..n-1, returning false once exhausted.
func nextCombination(indices []int, n int) bool {
	k := len(indices)
	i := k - 1
	for i >= 0 && indices[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	indices[i]++
	for j := i + 1; j < k; j++ {
		indices[j] = indices[j-1] + 1
	}
	return true
}

// combinationCount returns C(n, k), reporting false once the running
// product passes the cap.
func combinationCount(n, k int) (int64, bool) {
	var count int64 = 1
	for i := 1; i <= k; i++ {
		count = count * int64(n-k+i) / int64(i)
		if count > maxCombinations {
			return 0, false
		}
	}
	return count, true
}

// sampleIndices picks m distinct share indices uniformly at random via
// a partial Fisher-Yates over the index list.
func sampleIndices(src entropy.Source, n, m int) ([]int, error) {
	indices := firstIndices(n)
	for i := 0; i < m; i++ {
		j, err := entropy.Intn(src, n-i)
		if err != nil {
			return nil, err
		}
		indices[i], indices[i+j] = indices[i+j], indices[i]
	}
	return indices[:m], nil
}
