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

// Binary to validate end-to-end split/combine interoperability
// scenarios against the library.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/alecthomas/colour"

	"github.com/secretshare/tss/tss"
	"github.com/secretshare/tss/tss/hashing"
	"github.com/secretshare/tss/tss/sharefmt"
)

var humanRe = regexp.MustCompile(`^tss~[ -~]{0,16}~[1-9][0-9]{0,2}~[A-Za-z0-9_-]+$`)

type scenario struct {
	testName string
	run      func() error
}

func combine(shares [][]byte, selectBy tss.SelectMode, noPadding bool) (*tss.CombineResult, error) {
	return tss.Combine(context.Background(), tss.CombineConfig{
		Shares:    shares,
		SelectBy:  selectBy,
		NoPadding: noPadding,
	})
}

func runAnyPairRecovers() error {
	secret := []byte("hello")
	shares, err := tss.Split(tss.SplitConfig{
		Secret:       secret,
		Threshold:    2,
		NumShares:    3,
		Identifier:   []byte("testid0000000000"),
		Hash:         hashing.None,
		PadBlocksize: 16,
	})
	if err != nil {
		return err
	}
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			res, err := combine([][]byte{shares[i], shares[j]}, tss.SelectFirst, false)
			if err != nil {
				return err
			}
			if !bytes.Equal(res.Secret, secret) {
				return fmt.Errorf("pair (%d, %d) recovered %q, want %q", i+1, j+1, res.Secret, secret)
			}
		}
	}
	if _, err := combine(shares[:1], tss.SelectFirst, false); err == nil {
		return fmt.Errorf("single share combined without error")
	} else if !errors.As(err, new(*tss.ArgumentError)) {
		return fmt.Errorf("single share failed with %T, want ArgumentError", err)
	}
	return nil
}

func runCorruptionRecovery() error {
	secret := []byte("my deep dark secret")
	shares, err := tss.Split(tss.SplitConfig{
		Secret:       secret,
		Threshold:    3,
		NumShares:    5,
		Hash:         hashing.SHA256,
		PadBlocksize: 16,
	})
	if err != nil {
		return err
	}

	// Every 3-subset of a clean set verifies.
	for i := 0; i < 5; i++ {
		for j := i + 1; j < 5; j++ {
			for k := j + 1; k < 5; k++ {
				res, err := combine([][]byte{shares[i], shares[j], shares[k]}, tss.SelectFirst, false)
				if err != nil {
					return fmt.Errorf("subset (%d, %d, %d): %v", i+1, j+1, k+1, err)
				}
				if !bytes.Equal(res.Secret, secret) {
					return fmt.Errorf("subset (%d, %d, %d) recovered the wrong secret", i+1, j+1, k+1)
				}
			}
		}
	}

	// Flip a payload bit in share #3; subsets using it must fail and
	// the combinations search must still recover the secret.
	shares[2][sharefmt.HeaderSize+2] ^= 0x01
	if _, err := combine([][]byte{shares[0], shares[2], shares[3]}, tss.SelectFirst, false); !errors.As(err, new(*tss.DigestMismatchError)) {
		return fmt.Errorf("corrupt subset failed with %v, want DigestMismatchError", err)
	}
	res, err := combine(shares, tss.SelectCombinations, false)
	if err != nil {
		return fmt.Errorf("combinations search: %v", err)
	}
	if !bytes.Equal(res.Secret, secret) {
		return fmt.Errorf("combinations search recovered the wrong secret")
	}
	return nil
}

func runSingleZeroByte() error {
	shares, err := tss.Split(tss.SplitConfig{
		Secret:    []byte{0x00},
		Threshold: 2,
		NumShares: 2,
		Hash:      hashing.None,
	})
	if err != nil {
		return err
	}
	res, err := combine(shares, tss.SelectFirst, true)
	if err != nil {
		return err
	}
	if !bytes.Equal(res.Secret, []byte{0x00}) {
		return fmt.Errorf("recovered %v, want [0]", res.Secret)
	}
	return nil
}

func runDegenerateThreshold() error {
	secret := []byte("abc")
	shares, err := tss.Split(tss.SplitConfig{
		Secret:       secret,
		Threshold:    1,
		NumShares:    1,
		Hash:         hashing.SHA1,
		PadBlocksize: 16,
	})
	if err != nil {
		return err
	}
	res, err := combine(shares, tss.SelectFirst, false)
	if err != nil {
		return err
	}
	if !bytes.Equal(res.Secret, secret) {
		return fmt.Errorf("recovered %q, want %q", res.Secret, secret)
	}
	return nil
}

func runHumanFormat() error {
	shares, err := tss.Split(tss.SplitConfig{
		Secret:       []byte("foo"),
		Threshold:    2,
		NumShares:    2,
		Hash:         hashing.SHA256,
		PadBlocksize: 16,
		Format:       tss.FormatHuman,
	})
	if err != nil {
		return err
	}
	for i, share := range shares {
		if !humanRe.Match(share) {
			return fmt.Errorf("share %d does not match the human pattern: %q", i+1, share)
		}
	}
	res, err := combine(shares, tss.SelectFirst, false)
	if err != nil {
		return err
	}
	if !bytes.Equal(res.Secret, []byte("foo")) {
		return fmt.Errorf("recovered %q, want %q", res.Secret, "foo")
	}
	return nil
}

func runCombinationsGuard() error {
	shares, err := tss.Split(tss.SplitConfig{
		Secret:    []byte("x"),
		Threshold: 128,
		NumShares: 255,
		Hash:      hashing.SHA256,
	})
	if err != nil {
		return err
	}
	_, err = combine(shares, tss.SelectCombinations, true)
	if !errors.As(err, new(*tss.ArgumentError)) {
		return fmt.Errorf("guard returned %v, want ArgumentError", err)
	}
	return nil
}

func main() {
	fmt.Println("Running split/combine conformance scenarios...")

	scenarios := []scenario{
		{testName: "Any 2 of 3 shares recover; 1 share fails", run: runAnyPairRecovers},
		{testName: "All 3-subsets verify; corruption detected; combinations recover", run: runCorruptionRecovery},
		{testName: "Single zero byte round-trips without padding", run: runSingleZeroByte},
		{testName: "Degenerate 1-of-1 threshold with SHA1", run: runDegenerateThreshold},
		{testName: "Human format shares match the pattern and combine", run: runHumanFormat},
		{testName: "Combination cap rejects C(255, 128)", run: runCombinationsGuard},
	}

	failed := 0
	for _, s := range scenarios {
		if err := s.run(); err == nil {
			colour.Printf("^2 - %v^R\n", s.testName)
		} else {
			failed++
			colour.Printf("^1 - %v: %v^R\n", s.testName, err)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
