// Package roster reads and writes the YAML roster the member store is seeded from.
package roster

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/edta-team/portfolio/internal/domain"
)

//go:embed default_roster.yaml
var defaultRoster []byte

// File is the on-disk roster shape.
type File struct {
	// DefaultImage is used for members that have no image of their own.
	DefaultImage string   `yaml:"defaultImage,omitempty"`
	Members      []Record `yaml:"members"`
}

// Record is one roster entry.
type Record struct {
	ID        int    `yaml:"id"`
	Name      string `yaml:"name"`
	Role      string `yaml:"role"`
	Image     string `yaml:"image,omitempty"`
	Age       int    `yaml:"age,omitempty"`
	DOB       string `yaml:"dob"`
	About     string `yaml:"about"`
	Instagram string `yaml:"instagram"`
	Password  string `yaml:"password,omitempty"`
}

var (
	// ErrEmpty indicates a roster without members.
	ErrEmpty = errors.New("roster has no members")
	// ErrDuplicateID indicates two entries share an id.
	ErrDuplicateID = errors.New("duplicate member id")
)

// Default returns the built-in roster.
func Default() ([]domain.Member, error) {
	return Parse(bytes.NewReader(defaultRoster))
}

// DefaultYAML returns a copy of the built-in roster file.
func DefaultYAML() []byte {
	return bytes.Clone(defaultRoster)
}

// Load reads a roster file from path.
func Load(path string) ([]domain.Member, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()
	ms, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}
	return ms, nil
}

// Parse decodes a roster and validates id uniqueness.
func Parse(r io.Reader) ([]domain.Member, error) {
	file, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return file.ToDomain()
}

// Decode reads the raw roster file without converting it.
func Decode(r io.Reader) (File, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return File{}, fmt.Errorf("decode roster: %w", err)
	}
	return file, nil
}

// Encode writes file as YAML.
func Encode(w io.Writer, file File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	return enc.Close()
}

// ToDomain converts the file into domain members in file order.
func (f File) ToDomain() ([]domain.Member, error) {
	if len(f.Members) == 0 {
		return nil, ErrEmpty
	}
	seen := make(map[int]struct{}, len(f.Members))
	out := make([]domain.Member, 0, len(f.Members))
	for _, rec := range f.Members {
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, rec.ID)
		}
		seen[rec.ID] = struct{}{}

		image := rec.Image
		if image == "" {
			image = f.DefaultImage
		}
		out = append(out, domain.Member{
			ID:        domain.MemberID(rec.ID),
			Name:      rec.Name,
			Role:      rec.Role,
			About:     rec.About,
			Instagram: rec.Instagram,
			Image:     image,
			DOB:       rec.DOB,
			Age:       rec.Age,
			Password:  rec.Password,
		})
	}
	return out, nil
}
