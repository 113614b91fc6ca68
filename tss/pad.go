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

import "fmt"

// pkcs7Pad appends 1..blocksize octets whose value is the count added,
// bringing len(b) to a multiple of blocksize. An input already at a
// multiple still gains a full block so unpadding stays unambiguous.
func pkcs7Pad(b []byte, blocksize int) []byte {
	n := blocksize - len(b)%blocksize
	out := make([]byte, len(b)+n)
	copy(out, b)
	for i := len(b); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

// pkcs7Unpad strips PKCS#7 padding. The pad length is read from the
// last octet; the split-time block size is not carried in the share
// header, so the only upper bound checked is the payload length itself.
func pkcs7Unpad(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("cannot unpad empty input")
	}
	n := int(b[len(b)-1])
	if n == 0 {
		return nil, fmt.Errorf("invalid padding: pad octet is zero")
	}
	if n > len(b) {
		return nil, fmt.Errorf("invalid padding: pad length %d exceeds input length %d", n, len(b))
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, fmt.Errorf("invalid padding: inconsistent pad octets")
		}
	}
	return b[:len(b)-n], nil
}
