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

package hashing_test

import (
	"encoding/hex"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/secretshare/tss/tss/hashing"
)

func TestCodeNameSizeRegistry(t *testing.T) {
	for _, tc := range []struct {
		alg  hashing.Alg
		code byte
		name string
		size int
	}{
		{alg: hashing.None, code: 0, name: "NONE", size: 0},
		{alg: hashing.SHA1, code: 1, name: "SHA1", size: 20},
		{alg: hashing.SHA256, code: 2, name: "SHA256", size: 32},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := hashing.FromCode(tc.code)
			if err != nil {
				t.Fatalf("FromCode(%d) err = %v, want nil", tc.code, err)
			}
			if got != tc.alg {
				t.Errorf("FromCode(%d) = %v, want %v", tc.code, got, tc.alg)
			}
			got, err = hashing.FromName(tc.name)
			if err != nil {
				t.Fatalf("FromName(%q) err = %v, want nil", tc.name, err)
			}
			if got != tc.alg {
				t.Errorf("FromName(%q) = %v, want %v", tc.name, got, tc.alg)
			}
			if gotName := tc.alg.String(); gotName != tc.name {
				t.Errorf("String() = %q, want %q", gotName, tc.name)
			}
			if gotSize := tc.alg.Size(); gotSize != tc.size {
				t.Errorf("Size() = %d, want %d", gotSize, tc.size)
			}
		})
	}
}

func TestFromNameIsCaseInsensitive(t *testing.T) {
	got, err := hashing.FromName("sha256")
	if err != nil {
		t.Fatalf("FromName(sha256) err = %v, want nil", err)
	}
	if got != hashing.SHA256 {
		t.Errorf("FromName(sha256) = %v, want %v", got, hashing.SHA256)
	}
}

func TestUnknownCodeAndName(t *testing.T) {
	if _, err := hashing.FromCode(9); err == nil {
		t.Error("FromCode(9) err = nil, want error")
	}
	if _, err := hashing.FromName("md5"); err == nil {
		t.Error("FromName(md5) err = nil, want error")
	}
}

func TestDigestVectors(t *testing.T) {
	msg := []byte("abc")
	for _, tc := range []struct {
		alg  hashing.Alg
		want string
	}{
		{alg: hashing.SHA1, want: "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{alg: hashing.SHA256, want: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	} {
		t.Run(tc.alg.String(), func(t *testing.T) {
			if got := hex.EncodeToString(tc.alg.Digest(msg)); got != tc.want {
				t.Errorf("Digest(%q) = %s, want %s", msg, got, tc.want)
			}
		})
	}
	if got := hashing.None.Digest(msg); got != nil {
		t.Errorf("None.Digest(%q) = %v, want nil", msg, got)
	}
}

func TestCodesWithDigest(t *testing.T) {
	want := []hashing.Alg{hashing.SHA1, hashing.SHA256}
	if diff := cmp.Diff(want, hashing.CodesWithDigest()); diff != "" {
		t.Errorf("CodesWithDigest() mismatch (-want +got):\n%s", diff)
	}
}
