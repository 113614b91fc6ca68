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
	"bytes"

	"github.com/secretshare/tss/tss/hashing"
	"github.com/secretshare/tss/tss/sharefmt"
)

// validateShareSet runs the ordered share-set checks and returns the
// common header. The first failing check is reported.
func validateShareSet(shares [][]byte) (sharefmt.Header, error) {
	header, err := validateHeaders(shares)
	if err != nil {
		return sharefmt.Header{}, err
	}
	if err := validateHeadersIdentical(shares); err != nil {
		return sharefmt.Header{}, err
	}
	if err := validateEqualLength(shares); err != nil {
		return sharefmt.Header{}, err
	}
	if err := validateBodyPresent(shares, header); err != nil {
		return sharefmt.Header{}, err
	}
	if err := validateThresholdMet(len(shares), int(header.Threshold)); err != nil {
		return sharefmt.Header{}, err
	}
	return header, nil
}

// validateHeaders checks that every header decodes with well-formed
// fields, returning the first share's header.
func validateHeaders(shares [][]byte) (sharefmt.Header, error) {
	var first sharefmt.Header
	for i, share := range shares {
		h, err := sharefmt.ParseHeader(share)
		if err != nil {
			return sharefmt.Header{}, formatErrorf("share %d: %v", i+1, err)
		}
		if _, err := hashing.FromCode(h.HashCode); err != nil {
			return sharefmt.Header{}, argumentErrorf("share %d: %v", i+1, err)
		}
		if h.Threshold < 1 {
			return sharefmt.Header{}, argumentErrorf("share %d: threshold must be at least 1", i+1)
		}
		if h.ShareLen < 2 {
			return sharefmt.Header{}, argumentErrorf("share %d: share length %d cannot hold an X coordinate and payload", i+1, h.ShareLen)
		}
		if i == 0 {
			first = h
		}
	}
	return first, nil
}

// validateHeadersIdentical checks that all shares carry byte-identical
// headers; shares of different splits must not mix.
func validateHeadersIdentical(shares [][]byte) error {
	reference := shares[0][:sharefmt.HeaderSize]
	for i, share := range shares[1:] {
		if !bytes.Equal(share[:sharefmt.HeaderSize], reference) {
			return argumentErrorf("share %d header differs from share 1; shares are not from the same split", i+2)
		}
	}
	return nil
}

// validateEqualLength checks that every share has the same byte length.
func validateEqualLength(shares [][]byte) error {
	want := len(shares[0])
	for i, share := range shares[1:] {
		if len(share) != want {
			return argumentErrorf("share %d is %d octets, share 1 is %d; shares must be equal length", i+2, len(share), want)
		}
	}
	return nil
}

// validateBodyPresent checks that each share carries an X coordinate
// plus at least one payload octet, and that the length agrees with the
// header's share_len.
func validateBodyPresent(shares [][]byte, header sharefmt.Header) error {
	for i, share := range shares {
		if len(share) <= sharefmt.HeaderSize+1 {
			return argumentErrorf("share %d is %d octets; needs a header, an X coordinate and payload", i+1, len(share))
		}
		if len(share) != sharefmt.HeaderSize+int(header.ShareLen) {
			return argumentErrorf("share %d is %d octets, header share length says %d", i+1, len(share), sharefmt.HeaderSize+int(header.ShareLen))
		}
	}
	return nil
}

// validateThresholdMet checks that enough shares were supplied.
func validateThresholdMet(count, threshold int) error {
	if count < threshold {
		return argumentErrorf("got %d shares, threshold needs at least %d", count, threshold)
	}
	return nil
}

// validateXCoordinates checks that every X is nonzero and that no two
// shares claim the same X.
func validateXCoordinates(xs []byte) error {
	var seen [256]bool
	for i, x := range xs {
		if x == 0 {
			return argumentErrorf("share %d has a zero X coordinate", i+1)
		}
		if seen[x] {
			return argumentErrorf("duplicate X coordinate %d", x)
		}
		seen[x] = true
	}
	return nil
}
