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

// Package tss implements threshold secret sharing over GF(2^8) as
// described by draft-mcgrew-tss-03, including the robust (RTSS)
// variant that embeds a digest of the secret so reconstruction can be
// verified.
//
// Split shares a secret into N shares of which any M reconstruct it;
// fewer than M shares reveal nothing about the secret. Combine
// validates a set of shares, reconstructs by Lagrange interpolation,
// and, for digest-bearing sets, verifies the result; its combinations
// mode searches M-subsets until one verifies, which recovers the
// secret even when some supplied shares are corrupt.
package tss
