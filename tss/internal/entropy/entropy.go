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

// Package entropy narrows the process CSPRNG behind a small interface so
// tests can substitute a deterministic stream.
package entropy

import (
	"fmt"

	"github.com/google/tink/go/subtle/random"
)

// Source yields cryptographically secure random octets.
type Source interface {
	// Bytes returns n random octets.
	Bytes(n int) ([]byte, error)
}

type systemSource struct{}

func (systemSource) Bytes(n int) ([]byte, error) {
	return random.GetRandomBytes(uint32(n)), nil
}

// System returns the process-wide CSPRNG.
func System() Source {
	return systemSource{}
}

// NonZeroByte draws octets from src until a nonzero one comes back.
func NonZeroByte(src Source) (byte, error) {
	for {
		b, err := src.Bytes(1)
		if err != nil {
			return 0, err
		}
		if b[0] != 0 {
			return b[0], nil
		}
	}
}

// Intn returns a uniform integer in [0, n) using rejection sampling, so
// a deterministic Source produces a reproducible value.
func Intn(src Source, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("Intn: n must be positive, got %d", n)
	}
	if n == 1 {
		return 0, nil
	}
	// Sample 16-bit values and reject those above the largest multiple
	// of n, keeping the distribution uniform.
	max := 1 << 16
	limit := max - max%n
	for {
		b, err := src.Bytes(2)
		if err != nil {
			return 0, err
		}
		v := int(b[0])<<8 | int(b[1])
		if v < limit {
			return v % n, nil
		}
	}
}
