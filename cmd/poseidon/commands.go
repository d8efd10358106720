package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	poseidon "github.com/Giulio2002/faster_poseidon"
	"github.com/Giulio2002/faster_poseidon/field"
)

// helloWorld is the ASCII encoding of "helloworld", one word per character.
var helloWorld = []uint64{104, 101, 108, 108, 111, 119, 111, 114, 108, 100}

func hashCmd(c *cli.Context) error {
	words, err := parseWords(c.Args().Slice())
	if err != nil {
		return err
	}
	return printDigest(c, words)
}

func hashBytesCmd(c *cli.Context) error {
	var data []byte
	switch {
	case c.IsSet(hexInputFlag.Name) && c.IsSet(fileInputFlag.Name):
		return errors.New("use only one of --hex and --file")
	case c.IsSet(hexInputFlag.Name):
		s := strings.TrimPrefix(c.String(hexInputFlag.Name), "0x")
		b, err := hex.DecodeString(s)
		if err != nil {
			return errors.Wrap(err, "invalid hexadecimal input")
		}
		data = b
	case c.IsSet(fileInputFlag.Name):
		b, err := os.ReadFile(c.String(fileInputFlag.Name))
		if err != nil {
			return errors.Wrap(err, "reading input")
		}
		data = b
	}

	words, err := poseidon.BytesToUint64s(data)
	if err != nil {
		return err
	}
	loggerFrom(c).Debugw("decoded input", "bytes", len(data), "words", len(words))
	return printDigest(c, words)
}

func permuteCmd(c *cli.Context) error {
	words, err := parseWords(c.Args().Slice())
	if err != nil {
		return err
	}
	if len(words) != poseidon.Width {
		return errors.Errorf("permute takes %d words, got %d", poseidon.Width, len(words))
	}
	xs, err := poseidon.ToElements(words)
	if err != nil {
		return err
	}
	var state poseidon.State
	copy(state[:], xs)
	poseidon.Permute(&state)

	out := make([]uint64, len(state))
	for i, x := range state {
		out[i] = x.Raw()
	}
	fmt.Fprintln(output, formatWords(configFrom(c).Format, out))
	return nil
}

func demoCmd(c *cli.Context) error {
	loggerFrom(c).Infow("hashing demo input", "text", "helloworld", "words", len(helloWorld))
	return printDigest(c, helloWorld)
}

func benchCmd(c *cli.Context) error {
	n, length := c.Int(messagesFlag.Name), c.Int(lengthFlag.Name)
	if n < 0 || length < 0 {
		return errors.Errorf("--messages and --length must not be negative")
	}
	workers := configFrom(c).Workers
	logger := loggerFrom(c).With("messages", n, "length", length, "workers", workers)

	sampler := field.NewSampler([]byte(c.String(seedFlag.Name)))
	messages := make([][]uint64, n)
	for i := range messages {
		messages[i] = sampler.Uint64s(length)
	}
	logger.Debugw("sampled messages")

	start := time.Now()
	digests, err := poseidon.SumBatch(c.Context, messages, workers)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	// Same formula as the permutation count of the sponge.
	perms := n * max(1, (length+poseidon.Rate-1)/poseidon.Rate)
	rate := float64(n) / elapsed.Seconds()
	logger.Infow("batch hashed", "elapsed", elapsed, "messages_per_sec", rate, "permutations", perms)

	fmt.Fprintf(output, "%d messages x %d words in %s\n", n, length, elapsed)
	if n > 0 {
		fmt.Fprintf(output, "last digest: %s\n", formatWords(configFrom(c).Format, digests[n-1][:]))
	}
	return nil
}

func printDigest(c *cli.Context, words []uint64) error {
	if c.Bool(bytesOutFlag.Name) {
		b, err := poseidon.SumToBytes(words)
		if err != nil {
			return err
		}
		fmt.Fprintln(output, hex.EncodeToString(b[:]))
		return nil
	}
	d, err := poseidon.Sum(words)
	if err != nil {
		return err
	}
	fmt.Fprintln(output, formatWords(configFrom(c).Format, d[:]))
	return nil
}

// parseWords accepts decimal or 0x-prefixed hexadecimal words; range checks
// against the field order happen in the hashing calls.
func parseWords(args []string) ([]uint64, error) {
	words := make([]uint64, len(args))
	for i, a := range args {
		w, err := strconv.ParseUint(a, 0, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "word %d", i)
		}
		words[i] = w
	}
	return words, nil
}

func formatWords(format string, words []uint64) string {
	parts := make([]string, len(words))
	for i, w := range words {
		if format == formatHex {
			parts[i] = fmt.Sprintf("0x%016x", w)
		} else {
			parts[i] = strconv.FormatUint(w, 10)
		}
	}
	return strings.Join(parts, " ")
}
