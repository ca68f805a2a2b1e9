package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/edta-team/portfolio/internal/adapters/roster"
	"github.com/edta-team/portfolio/internal/platform/auth/password"
)

// Dev/ops helper: rewrites a roster's plaintext passwords as bcrypt hashes so the service
// can run with PASSWORD_MODE=bcrypt.
//
//	rosterhash --in roster.yaml --out roster.bcrypt.yaml

func main() {
	in := pflag.StringP("in", "i", "", "roster YAML to read (default: built-in roster)")
	out := pflag.StringP("out", "o", "-", "where to write the hashed roster (- for stdout)")
	pflag.Parse()

	if err := run(*in, *out, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "rosterhash: %v\n", err)
		os.Exit(1)
	}
}

func run(in, out string, stdout io.Writer) error {
	src, err := readRoster(in)
	if err != nil {
		return err
	}
	file, err := roster.Decode(bytes.NewReader(src))
	if err != nil {
		return err
	}
	// Validate ids before touching anything.
	if _, err := file.ToDomain(); err != nil {
		return err
	}

	hashed, n, err := hashPasswords(file, password.Hash)
	if err != nil {
		return err
	}

	var w io.Writer = stdout
	if out != "-" {
		f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("open output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := roster.Encode(w, hashed); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "hashed %d of %d passwords\n", n, len(hashed.Members))
	return nil
}

func readRoster(path string) ([]byte, error) {
	if path == "" {
		return roster.DefaultYAML(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return b, nil
}

// hashPasswords returns a copy of file with every plaintext password hashed. Empty
// passwords and values that already are bcrypt hashes are left alone.
func hashPasswords(file roster.File, hash func(string) (string, error)) (roster.File, int, error) {
	out := roster.File{
		DefaultImage: file.DefaultImage,
		Members:      make([]roster.Record, len(file.Members)),
	}
	copy(out.Members, file.Members)

	n := 0
	for i, rec := range out.Members {
		if rec.Password == "" || isBcryptHash(rec.Password) {
			continue
		}
		h, err := hash(rec.Password)
		if err != nil {
			return roster.File{}, 0, fmt.Errorf("member %d: %w", rec.ID, err)
		}
		out.Members[i].Password = h
		n++
	}
	return out, n, nil
}

func isBcryptHash(s string) bool {
	for _, p := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, p) && len(s) == 60 {
			return true
		}
	}
	return false
}
