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

// Package sharefmt implements the share wire formats: the fixed
// 20-octet binary header and the human-readable
// "tss~<id>~<threshold>~<base64url>" string form. The base64url payload
// of a human share is the entire binary share, header included.
package sharefmt

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"
)

const (
	// IdentifierSize is the fixed identifier length in octets.
	IdentifierSize = 16
	// HeaderSize is the fixed share header length in octets:
	// identifier[16] | hash_id[1] | threshold[1] | share_len[2].
	HeaderSize = 20
	// MaxSecretSize is the largest secret the format can carry.
	MaxSecretSize = 1<<16 - 1
)

// humanRe matches the human share form. Group 1 is the identifier text
// (printable ASCII), group 2 the decimal threshold, group 3 the
// base64url body.
var humanRe = regexp.MustCompile(`^tss~([ -~]{0,16})~([1-9][0-9]{0,2})~([A-Za-z0-9_-]+)$`)

// Header is the decoded fixed-size share header. Every share of one
// split carries an identical header; the X coordinate lives in the
// first body octet, not here.
type Header struct {
	Identifier [IdentifierSize]byte
	HashCode   byte
	Threshold  byte
	// ShareLen is 1 (the X octet) plus the payload length.
	ShareLen uint16
}

// Encode serializes the header into its 20-octet wire form.
func (h Header) Encode() []byte {
	out := make([]byte, HeaderSize)
	copy(out, h.Identifier[:])
	out[16] = h.HashCode
	out[17] = h.Threshold
	binary.BigEndian.PutUint16(out[18:], h.ShareLen)
	return out
}

// ParseHeader decodes the leading 20 octets of a binary share.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("share too short for header: %d octets, need %d", len(b), HeaderSize)
	}
	var h Header
	copy(h.Identifier[:], b[:IdentifierSize])
	h.HashCode = b[16]
	h.Threshold = b[17]
	h.ShareLen = binary.BigEndian.Uint16(b[18:HeaderSize])
	return h, nil
}

// IdentifierText renders the identifier for the human form: trailing
// zero octets are dropped and the rest must be printable ASCII.
func (h Header) IdentifierText() (string, error) {
	id := bytes.TrimRight(h.Identifier[:], "\x00")
	for _, c := range id {
		if c < 0x20 || c > 0x7e {
			return "", fmt.Errorf("identifier octet 0x%02x is not printable ASCII", c)
		}
	}
	return string(id), nil
}

// IsHuman reports whether s parses as a human share string.
func IsHuman(s []byte) bool {
	return humanRe.Match(s)
}

// ToHuman encodes a binary share as a human share string.
func ToHuman(share []byte) (string, error) {
	h, err := ParseHeader(share)
	if err != nil {
		return "", err
	}
	idText, err := h.IdentifierText()
	if err != nil {
		return "", err
	}
	b64 := base64.RawURLEncoding.EncodeToString(share)
	return fmt.Sprintf("tss~%s~%d~%s", idText, h.Threshold, b64), nil
}

// FromHuman decodes a human share string back to its binary share. The
// threshold and identifier text are cross-checked against the decoded
// header.
func FromHuman(s string) ([]byte, error) {
	m := humanRe.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("share does not match the human share pattern")
	}
	share, err := base64.RawURLEncoding.DecodeString(m[3])
	if err != nil {
		return nil, fmt.Errorf("decoding share body: %v", err)
	}
	h, err := ParseHeader(share)
	if err != nil {
		return nil, err
	}
	threshold, err := strconv.Atoi(m[2])
	if err != nil || threshold != int(h.Threshold) {
		return nil, fmt.Errorf("threshold text %q does not match header threshold %d", m[2], h.Threshold)
	}
	idText, err := h.IdentifierText()
	if err != nil {
		return nil, err
	}
	if m[1] != idText {
		return nil, fmt.Errorf("identifier text %q does not match header identifier %q", m[1], idText)
	}
	return share, nil
}
