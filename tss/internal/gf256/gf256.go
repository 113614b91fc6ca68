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

// Package gf256 implements arithmetic over GF(2^8), the field used by
// draft-mcgrew-tss-03. Multiplication and division go through exp/log
// tables built once at package load from the generator 0x03 under the
// reduction polynomial x^8 + x^4 + x^3 + x + 1.
package gf256

import "fmt"

// irreduciblePolynomial is x^8 + x^4 + x^3 + x + 1 (0x11B); only the low
// eight bits matter once the overflow bit is shifted out.
const irreduciblePolynomial = 0x11B

// generator is 0x03, a primitive element of the field.
const generator = 0x03

var (
	// expTable[i] = generator^i. The table is doubled (510 entries) so
	// Mul can add logs without reducing mod 255.
	expTable [510]byte
	// logTable[x] = i such that generator^i = x, for x in 1..255.
	// logTable[0] is unused; zero has no logarithm.
	logTable [256]byte
)

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		expTable[i] = byte(x)
		expTable[i+255] = byte(x)
		logTable[x] = byte(i)

		// x *= 3, i.e. (x << 1) ^ x, reduced when it leaves the field.
		x = (x << 1) ^ x
		if x >= 256 {
			x ^= irreduciblePolynomial
		}
	}
}

// Add returns a + b. Addition in GF(2^8) is XOR, and doubles as
// subtraction.
func Add(a, b byte) byte {
	return a ^ b
}

// Mul returns a * b.
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[int(logTable[a])+int(logTable[b])]
}

// Inv returns the multiplicative inverse of a. Zero has no inverse.
func Inv(a byte) (byte, error) {
	if a == 0 {
		return 0, fmt.Errorf("inverse of zero is not defined")
	}
	return expTable[255-int(logTable[a])], nil
}

// Div returns a / b. Division by zero is an error.
func Div(a, b byte) (byte, error) {
	bInv, err := Inv(b)
	if err != nil {
		return 0, err
	}
	return Mul(a, bInv), nil
}

// Pow returns a^n, with a^0 = 1 for every a including zero.
func Pow(a byte, n int) byte {
	if n == 0 {
		return 1
	}
	if a == 0 {
		return 0
	}
	exp := (int(logTable[a]) * n) % 255
	if exp < 0 {
		exp += 255
	}
	return expTable[exp]
}
