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

// Package poly provides polynomial evaluation and Lagrange interpolation
// over GF(2^8) for secret splitting and reconstruction.
package poly

import (
	"fmt"

	"github.com/secretshare/tss/tss/internal/entropy"
	"github.com/secretshare/tss/tss/internal/gf256"
)

// Eval evaluates the polynomial with the given coefficients at x using
// Horner's method. coeffs[0] is the constant term:
// f(x) = c[n-1]*x^(n-1) + ... + c[1]*x + c[0]
func Eval(coeffs []byte, x byte) byte {
	var sum byte
	for i := len(coeffs) - 1; i > 0; i-- {
		sum = gf256.Mul(gf256.Add(sum, coeffs[i]), x)
	}
	return gf256.Add(sum, coeffs[0])
}

// Random builds a degree-`degree` polynomial whose constant term is
// intercept and whose remaining coefficients are drawn from src.
func Random(intercept byte, degree int, src entropy.Source) ([]byte, error) {
	coeffs := make([]byte, degree+1)
	coeffs[0] = intercept
	if degree > 0 {
		r, err := src.Bytes(degree)
		if err != nil {
			return nil, fmt.Errorf("reading random coefficients: %v", err)
		}
		copy(coeffs[1:], r)
	}
	return coeffs, nil
}

// Interpolate recovers f(0) from the points (xs[i], ys[i]) by Lagrange
// interpolation:
//
//	∑i ys[i] * ∏j≠i ( xs[j] / (xs[j] + xs[i]) )
//
// The xs must be nonzero and pairwise distinct; each zero denominator
// those conditions would otherwise allow is reported as an error.
func Interpolate(xs, ys []byte) (byte, error) {
	if len(xs) != len(ys) {
		return 0, fmt.Errorf("mismatched point vectors: %d x values, %d y values", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return 0, fmt.Errorf("no points to interpolate")
	}
	var sum byte
	for i := range xs {
		if xs[i] == 0 {
			return 0, fmt.Errorf("x coordinate must be nonzero")
		}
		basis := byte(1)
		for j := range xs {
			if j == i {
				continue
			}
			denom := gf256.Add(xs[j], xs[i])
			if denom == 0 {
				return 0, fmt.Errorf("duplicate x coordinate %d", xs[i])
			}
			inv, err := gf256.Inv(denom)
			if err != nil {
				return 0, err
			}
			basis = gf256.Mul(basis, gf256.Mul(xs[j], inv))
		}
		sum = gf256.Add(sum, gf256.Mul(ys[i], basis))
	}
	return sum, nil
}
