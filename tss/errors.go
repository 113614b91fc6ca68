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

// ArgumentError reports a malformed parameter: bad threshold or share
// counts, unknown hash code, wrong identifier length, inconsistent
// share headers, duplicate or zero X coordinates, mixed share formats,
// or a combination count over the cap.
type ArgumentError struct {
	msg string
}

func (e *ArgumentError) Error() string { return e.msg }

func argumentErrorf(format string, args ...any) error {
	return &ArgumentError{msg: fmt.Sprintf(format, args...)}
}

// FormatError reports a share header or human share string that does
// not parse.
type FormatError struct {
	msg string
}

func (e *FormatError) Error() string { return e.msg }

func formatErrorf(format string, args ...any) error {
	return &FormatError{msg: fmt.Sprintf(format, args...)}
}

// NoSecretError reports that reconstruction produced no usable secret:
// empty output, invalid padding with no embedded digest, or an
// exhausted combinations search.
type NoSecretError struct {
	msg string
}

func (e *NoSecretError) Error() string { return e.msg }

func noSecretErrorf(format string, args ...any) error {
	return &NoSecretError{msg: fmt.Sprintf(format, args...)}
}

// DigestMismatchError reports that the embedded digest did not verify
// against the reconstructed secret.
type DigestMismatchError struct {
	msg string
}

func (e *DigestMismatchError) Error() string { return e.msg }

func digestMismatchErrorf(format string, args ...any) error {
	return &DigestMismatchError{msg: fmt.Sprintf(format, args...)}
}

// TooLargeError reports a secret over the 2^16-1 octet format limit.
type TooLargeError struct {
	msg string
}

func (e *TooLargeError) Error() string { return e.msg }

func tooLargeErrorf(format string, args ...any) error {
	return &TooLargeError{msg: fmt.Sprintf(format, args...)}
}
