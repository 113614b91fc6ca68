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

// This binary is the main entrypoint for the tss command line tool.
package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"flag"
	glog "github.com/golang/glog"
	"github.com/google/subcommands"
	"sigs.k8s.io/yaml"

	"github.com/secretshare/tss/tss"
	"github.com/secretshare/tss/tss/hashing"
)

const (
	// The default name for the tss configuration file.
	defaultConfigName string = "tss.yaml"

	// The current version, displayed via the `version` subcommand.
	tssVersion string = "0.3.0"
)

// splitOptions is the YAML config file schema for the split command.
// Flags set on the command line override the file.
type splitOptions struct {
	Threshold    int    `json:"threshold"`
	NumShares    int    `json:"numShares"`
	Identifier   string `json:"identifier"`
	HashAlg      string `json:"hashAlg"`
	PadBlocksize *int   `json:"padBlocksize"`
	Format       string `json:"format"`
}

func readOptionsFile(path string) (*splitOptions, error) {
	yamlBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	jsonBytes, err := yaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return nil, fmt.Errorf("converting config YAML to JSON: %v", err)
	}
	opts := &splitOptions{}
	if err := json.Unmarshal(jsonBytes, opts); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %v", err)
	}
	return opts, nil
}

// openInput resolves a positional argument into a reader, with "-" (or
// no argument) meaning stdin.
func openInput(f *flag.FlagSet) (io.ReadCloser, error) {
	if f.NArg() == 0 || f.Arg(0) == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(f.Arg(0))
}

// splitCmd handles CLI options for the split command.
type splitCmd struct {
	configFile   string
	threshold    int
	numShares    int
	identifier   string
	hashAlg      string
	padBlocksize int
	format       string
	quiet        bool
}

func (*splitCmd) Name() string { return "split" }
func (*splitCmd) Synopsis() string {
	return "splits a secret into threshold shares"
}
func (*splitCmd) Usage() string {
	return `Usage: tss split [--threshold=<m>] [--num-shares=<n>] [flags] [<secret_file>]

Examples:
  Split a secret file into 3 shares, any 2 of which recover it:
    $ tss split --threshold=2 --num-shares=3 secret.txt

  Split a secret from stdin:
    $ echo -n "my secret" | tss split --threshold=2 --num-shares=3 -

  Split without an embedded digest, with binary (hex) shares:
    $ tss split --threshold=3 --num-shares=5 --hash-alg=none --format=binary secret.txt

  Split using a YAML config file, overriding the share count:
    $ tss split --config-file=tss.yaml --num-shares=6 secret.txt

Shares are written to stdout, one per line.

Flags:
`
}
func (s *splitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.configFile, "config-file", "", fmt.Sprintf("Path to a YAML options file (e.g. %s). Optional.", defaultConfigName))
	f.IntVar(&s.threshold, "threshold", 2, "Minimum number of shares needed to recover the secret (1..255).")
	f.IntVar(&s.numShares, "num-shares", 3, "Total number of shares to generate (threshold..255).")
	f.StringVar(&s.identifier, "identifier", "", "16-character share set identifier. Generated if empty.")
	f.StringVar(&s.hashAlg, "hash-alg", "SHA256", "Digest to embed for verification: NONE, SHA1 or SHA256.")
	f.IntVar(&s.padBlocksize, "pad-blocksize", tss.DefaultPadBlocksize, "PKCS#7 padding block size (0..255). 0 disables padding.")
	f.StringVar(&s.format, "format", "human", "Share output format: human or binary (hex lines).")
	f.BoolVar(&s.quiet, "quiet", false, "Suppress informational output.")
}

func (s *splitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if s.configFile != "" {
		opts, err := readOptionsFile(s.configFile)
		if err != nil {
			glog.Errorf("Failed to read config file: %v", err.Error())
			return subcommands.ExitFailure
		}
		s.applyOptions(f, opts)
	}

	in, err := openInput(f)
	if err != nil {
		glog.Errorf("Failed to open secret file: %v", err.Error())
		return subcommands.ExitFailure
	}
	defer in.Close()

	secret, err := io.ReadAll(in)
	if err != nil {
		glog.Errorf("Failed to read secret: %v", err.Error())
		return subcommands.ExitFailure
	}

	alg, err := hashing.FromName(s.hashAlg)
	if err != nil {
		glog.Errorf("Invalid hash algorithm: %v", err.Error())
		return subcommands.ExitFailure
	}

	cfg := tss.SplitConfig{
		Secret:       secret,
		Threshold:    s.threshold,
		NumShares:    s.numShares,
		Hash:         alg,
		PadBlocksize: s.padBlocksize,
	}
	if s.identifier != "" {
		cfg.Identifier = []byte(s.identifier)
	}
	switch strings.ToLower(s.format) {
	case "human":
		cfg.Format = tss.FormatHuman
	case "binary":
		cfg.Format = tss.FormatBinary
	default:
		glog.Errorf("Unknown share format %q (want human or binary)", s.format)
		return subcommands.ExitFailure
	}

	shares, err := tss.Split(cfg)
	if err != nil {
		glog.Errorf("Failed to split secret: %v", err.Error())
		return subcommands.ExitFailure
	}

	for _, share := range shares {
		if cfg.Format == tss.FormatBinary {
			fmt.Println(hex.EncodeToString(share))
		} else {
			fmt.Println(string(share))
		}
	}

	if !s.quiet {
		fmt.Fprintln(os.Stderr, "Wrote", len(shares), "shares; any", s.threshold, "recover the secret")
	}

	return subcommands.ExitSuccess
}

// applyOptions folds config file values under any flags the user set
// explicitly on the command line.
func (s *splitCmd) applyOptions(f *flag.FlagSet, opts *splitOptions) {
	set := map[string]bool{}
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if opts.Threshold != 0 && !set["threshold"] {
		s.threshold = opts.Threshold
	}
	if opts.NumShares != 0 && !set["num-shares"] {
		s.numShares = opts.NumShares
	}
	if opts.Identifier != "" && !set["identifier"] {
		s.identifier = opts.Identifier
	}
	if opts.HashAlg != "" && !set["hash-alg"] {
		s.hashAlg = opts.HashAlg
	}
	if opts.PadBlocksize != nil && !set["pad-blocksize"] {
		s.padBlocksize = *opts.PadBlocksize
	}
	if opts.Format != "" && !set["format"] {
		s.format = opts.Format
	}
}

// combineCmd handles CLI options for the combine command.
type combineCmd struct {
	selectBy  string
	noPadding bool
	quiet     bool
}

func (*combineCmd) Name() string { return "combine" }
func (*combineCmd) Synopsis() string {
	return "reconstructs a secret from threshold shares"
}
func (*combineCmd) Usage() string {
	return `Usage: tss combine [--select-by=<mode>] [--no-padding] [<shares_file>]

Examples:
  Combine shares from a file, one share per line:
    $ tss combine shares.txt

  Combine shares from stdin and write the secret to a file:
    $ tss combine - < shares.txt > secret.txt

  Search share subsets until one verifies (digest-bearing sets only):
    $ tss combine --select-by=combinations shares.txt

The recovered secret is written to stdout.

Flags:
`
}
func (c *combineCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.selectBy, "select-by", "first", "Share subset selection: first, sample or combinations.")
	f.BoolVar(&c.noPadding, "no-padding", false, "Skip PKCS#7 unpadding (for secrets split with --pad-blocksize=0).")
	f.BoolVar(&c.quiet, "quiet", false, "Suppress informational output.")
}

func (c *combineCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := openInput(f)
	if err != nil {
		glog.Errorf("Failed to open shares file: %v", err.Error())
		return subcommands.ExitFailure
	}
	defer in.Close()

	shares, err := readShareLines(in)
	if err != nil {
		glog.Errorf("Failed to read shares: %v", err.Error())
		return subcommands.ExitFailure
	}

	cfg := tss.CombineConfig{
		Shares:    shares,
		NoPadding: c.noPadding,
	}
	switch strings.ToLower(c.selectBy) {
	case "first":
		cfg.SelectBy = tss.SelectFirst
	case "sample":
		cfg.SelectBy = tss.SelectSample
	case "combinations":
		cfg.SelectBy = tss.SelectCombinations
	default:
		glog.Errorf("Unknown selection mode %q (want first, sample or combinations)", c.selectBy)
		return subcommands.ExitFailure
	}

	result, err := tss.Combine(ctx, cfg)
	if err != nil {
		glog.Errorf("Failed to combine shares: %v", err.Error())
		return subcommands.ExitFailure
	}

	if _, err := os.Stdout.Write(result.Secret); err != nil {
		glog.Errorf("Failed to write secret: %v", err.Error())
		return subcommands.ExitFailure
	}

	if !c.quiet {
		fmt.Fprintln(os.Stderr, "Recovered secret from", result.Threshold, "shares")
		fmt.Fprintln(os.Stderr, "Share set identifier:", string(result.Identifier))
		if result.Digest != "" {
			fmt.Fprintf(os.Stderr, "Verified %s digest: %s\n", result.Hash, result.Digest)
		}
		fmt.Fprintln(os.Stderr, "Elapsed:", result.Elapsed.Milliseconds(), "ms")
	}

	return subcommands.ExitSuccess
}

// readShareLines reads one share per line: human share strings pass
// through as-is, anything else must be a hex-encoded binary share.
func readShareLines(r io.Reader) ([][]byte, error) {
	var shares [][]byte
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1<<17), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "tss~") {
			shares = append(shares, []byte(line))
			continue
		}
		share, err := hex.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("line %d is neither a human share nor hex: %v", lineNo, err)
		}
		shares = append(shares, share)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return shares, nil
}

// versionCmd handles CLI options for the version command.
type versionCmd struct{}

func (*versionCmd) Name() string           { return "version" }
func (*versionCmd) Synopsis() string       { return "prints the current version" }
func (*versionCmd) Usage() string          { return "Usage: tss version" }
func (*versionCmd) SetFlags(*flag.FlagSet) {}
func (*versionCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	fmt.Printf("tss version %s\n", tssVersion)
	return subcommands.ExitSuccess
}

func main() {
	flag.Parse()

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(&splitCmd{}, "")
	subcommands.Register(&combineCmd{}, "")
	subcommands.Register(&versionCmd{}, "")

	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
