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

// Package hashing is the closed registry of digest algorithms a share
// header may name: NONE(0), SHA1(1) and SHA256(2).
package hashing

import (
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"strings"
)

// Alg identifies a digest algorithm by its one-octet wire code.
type Alg byte

const (
	// None embeds no digest in the shared secret.
	None Alg = 0
	// SHA1 embeds a 20-octet SHA-1 digest.
	SHA1 Alg = 1
	// SHA256 embeds a 32-octet SHA-256 digest.
	SHA256 Alg = 2
)

// Registered returns the registered algorithms in wire-code order.
func Registered() []Alg {
	return []Alg{None, SHA1, SHA256}
}

// CodesWithDigest returns the registered algorithms that actually embed
// a digest, i.e. everything except None.
func CodesWithDigest() []Alg {
	return []Alg{SHA1, SHA256}
}

// FromCode maps a wire code to its algorithm.
func FromCode(code byte) (Alg, error) {
	switch Alg(code) {
	case None, SHA1, SHA256:
		return Alg(code), nil
	default:
		return 0, fmt.Errorf("unknown hash code %d", code)
	}
}

// FromName maps a case-insensitive algorithm name to its algorithm.
func FromName(name string) (Alg, error) {
	switch strings.ToUpper(name) {
	case "NONE":
		return None, nil
	case "SHA1":
		return SHA1, nil
	case "SHA256":
		return SHA256, nil
	default:
		return 0, fmt.Errorf("unknown hash algorithm %q", name)
	}
}

func (a Alg) String() string {
	switch a {
	case None:
		return "NONE"
	case SHA1:
		return "SHA1"
	case SHA256:
		return "SHA256"
	default:
		return fmt.Sprintf("unknown hash code %d", byte(a))
	}
}

// Size returns the digest length in octets; zero for None.
func (a Alg) Size() int {
	switch a {
	case SHA1:
		return sha1.Size
	case SHA256:
		return sha256.Size
	default:
		return 0
	}
}

// Digest computes the digest of b. For None it returns nil.
func (a Alg) Digest(b []byte) []byte {
	switch a {
	case SHA1:
		sum := sha1.Sum(b)
		return sum[:]
	case SHA256:
		sum := sha256.Sum256(b)
		return sum[:]
	default:
		return nil
	}
}
