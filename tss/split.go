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
	"strings"

	"github.com/google/uuid"

	"github.com/secretshare/tss/tss/hashing"
	"github.com/secretshare/tss/tss/internal/entropy"
	"github.com/secretshare/tss/tss/internal/poly"
	"github.com/secretshare/tss/tss/sharefmt"
)

// Format selects the share encoding Split emits.
type Format int

const (
	// FormatBinary emits raw binary shares (header + body).
	FormatBinary Format = iota
	// FormatHuman emits shares as "tss~..." strings in ASCII bytes.
	FormatHuman
)

// DefaultPadBlocksize is the PKCS#7 block size NewSplitConfig selects.
const DefaultPadBlocksize = 16

// SplitConfig carries the inputs to Split.
type SplitConfig struct {
	// Secret is 1..65535 octets. It is treated as opaque bytes.
	Secret []byte
	// Threshold is the minimum share count M needed to reconstruct,
	// 1..255.
	Threshold int
	// NumShares is the total share count N, Threshold..255.
	NumShares int
	// Identifier is the 16-octet label stamped into every share. Left
	// empty, a fresh printable identifier is generated.
	Identifier []byte
	// Hash selects the digest embedded alongside the secret.
	Hash hashing.Alg
	// PadBlocksize is the PKCS#7 block size, 0..255. Zero disables
	// padding. Callers wanting the conventional default should build
	// the config with NewSplitConfig.
	PadBlocksize int
	// Format selects binary or human share encoding.
	Format Format
	// Rand is the entropy source for polynomial coefficients. Nil
	// selects the system CSPRNG.
	Rand entropy.Source
}

// NewSplitConfig returns a SplitConfig with the conventional defaults:
// SHA-256 digest and a 16-octet padding block.
func NewSplitConfig(secret []byte, threshold, numShares int) SplitConfig {
	return SplitConfig{
		Secret:       secret,
		Threshold:    threshold,
		NumShares:    numShares,
		Hash:         hashing.SHA256,
		PadBlocksize: DefaultPadBlocksize,
	}
}

// GenerateIdentifier returns a fresh 16-character printable identifier.
func GenerateIdentifier() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:sharefmt.IdentifierSize]
}

// Split shares cfg.Secret into cfg.NumShares shares of which any
// cfg.Threshold reconstruct it. When cfg.Hash is not None, a digest of
// the secret is appended before padding so Combine can verify the
// reconstruction.
//
// Returned shares are binary, or ASCII human strings when
// cfg.Format is FormatHuman.
func Split(cfg SplitConfig) ([][]byte, error) {
	src := cfg.Rand
	if src == nil {
		src = entropy.System()
	}
	if err := validateSplitConfig(cfg); err != nil {
		return nil, err
	}

	identifier := cfg.Identifier
	if len(identifier) == 0 {
		identifier = []byte(GenerateIdentifier())
	}

	// Assemble the shared payload: secret, then digest, then padding.
	payload := make([]byte, 0, len(cfg.Secret)+cfg.Hash.Size()+cfg.PadBlocksize)
	payload = append(payload, cfg.Secret...)
	if cfg.Hash != hashing.None {
		payload = append(payload, cfg.Hash.Digest(cfg.Secret)...)
	}
	if cfg.PadBlocksize > 0 {
		payload = pkcs7Pad(payload, cfg.PadBlocksize)
	}
	defer zero(payload)

	shareLen := 1 + len(payload)
	if shareLen > sharefmt.MaxSecretSize {
		return nil, tooLargeErrorf("secret with digest and padding needs %d octets per share, format limit is %d", shareLen, sharefmt.MaxSecretSize)
	}

	// One body per share, starting with its X coordinate. The canonical
	// coordinates 1..N are always distinct and nonzero.
	bodies := make([][]byte, cfg.NumShares)
	for i := range bodies {
		bodies[i] = make([]byte, 1, shareLen)
		bodies[i][0] = byte(i + 1)
	}

	// A fresh random polynomial per payload octet, with the octet as
	// its constant term; each share takes the evaluation at its X.
	for _, octet := range payload {
		coeffs, err := poly.Random(octet, cfg.Threshold-1, src)
		if err != nil {
			return nil, err
		}
		for i := range bodies {
			bodies[i] = append(bodies[i], poly.Eval(coeffs, byte(i+1)))
		}
		zero(coeffs)
	}

	var header sharefmt.Header
	copy(header.Identifier[:], identifier)
	header.HashCode = byte(cfg.Hash)
	header.Threshold = byte(cfg.Threshold)
	header.ShareLen = uint16(shareLen)
	encodedHeader := header.Encode()

	shares := make([][]byte, cfg.NumShares)
	for i, body := range bodies {
		share := make([]byte, 0, sharefmt.HeaderSize+len(body))
		share = append(share, encodedHeader...)
		share = append(share, body...)
		if cfg.Format == FormatHuman {
			human, err := sharefmt.ToHuman(share)
			if err != nil {
				return nil, formatErrorf("encoding human share: %v", err)
			}
			shares[i] = []byte(human)
		} else {
			shares[i] = share
		}
	}
	return shares, nil
}

func validateSplitConfig(cfg SplitConfig) error {
	if len(cfg.Secret) == 0 {
		return argumentErrorf("secret must not be empty")
	}
	if len(cfg.Secret) > sharefmt.MaxSecretSize {
		return tooLargeErrorf("secret is %d octets, limit is %d", len(cfg.Secret), sharefmt.MaxSecretSize)
	}
	if cfg.Threshold < 1 || cfg.Threshold > 255 {
		return argumentErrorf("threshold must be in 1..255, got %d", cfg.Threshold)
	}
	if cfg.NumShares > 255 {
		return argumentErrorf("num shares must be at most 255, got %d", cfg.NumShares)
	}
	if cfg.NumShares < cfg.Threshold {
		return argumentErrorf("num shares (%d) must be at least the threshold (%d)", cfg.NumShares, cfg.Threshold)
	}
	if _, err := hashing.FromCode(byte(cfg.Hash)); err != nil {
		return argumentErrorf("%v", err)
	}
	if n := len(cfg.Identifier); n != 0 && n != sharefmt.IdentifierSize {
		return argumentErrorf("identifier must be %d octets, got %d", sharefmt.IdentifierSize, n)
	}
	if cfg.PadBlocksize < 0 || cfg.PadBlocksize > 255 {
		return argumentErrorf("pad blocksize must be in 0..255, got %d", cfg.PadBlocksize)
	}
	if cfg.Format != FormatBinary && cfg.Format != FormatHuman {
		return argumentErrorf("unknown share format %d", cfg.Format)
	}
	return nil
}

// zero clears key material once it is no longer needed.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
