package password

import "testing"

func TestPlaintext_ExactCaseSensitive(t *testing.T) {
	t.Parallel()

	m := Plaintext{}
	cases := []struct {
		stored, submitted string
		want              bool
	}{
		{"1234", "1234", true},
		{"Secret", "secret", false},
		{"1234", "12345", false},
		{"1234", "", false},
		{"", "", true},
	}
	for _, tc := range cases {
		if got := m.Matches(tc.stored, tc.submitted); got != tc.want {
			t.Fatalf("Matches(%q,%q)=%v, want %v", tc.stored, tc.submitted, got, tc.want)
		}
	}
}

func TestBcrypt_MatchesHash(t *testing.T) {
	t.Parallel()

	h, err := Hash("1234")
	if err != nil {
		t.Fatalf("Hash() err=%v", err)
	}
	m := Bcrypt{}
	if !m.Matches(h, "1234") {
		t.Fatalf("expected hash to match")
	}
	if m.Matches(h, "1235") {
		t.Fatalf("expected mismatch")
	}
	if m.Matches("", "") {
		t.Fatalf("empty stored secret must not match")
	}
	if m.Matches("1234", "1234") {
		t.Fatalf("plaintext stored secret must not match in bcrypt mode")
	}
}

func TestForMode(t *testing.T) {
	t.Parallel()

	if m, err := ForMode("plaintext"); err != nil || m != (Plaintext{}) {
		t.Fatalf("ForMode(plaintext)=%v,%v", m, err)
	}
	if m, err := ForMode("bcrypt"); err != nil || m != (Bcrypt{}) {
		t.Fatalf("ForMode(bcrypt)=%v,%v", m, err)
	}
	if _, err := ForMode("md5"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSchemes_HashRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []Scheme{Plaintext{}, Bcrypt{}} {
		stored, err := s.Hash("newpass")
		if err != nil {
			t.Fatalf("%T.Hash() err=%v", s, err)
		}
		if !s.Matches(stored, "newpass") {
			t.Fatalf("%T: stored secret does not match its own password", s)
		}
		if s.Matches(stored, "1234") {
			t.Fatalf("%T: stored secret matches another password", s)
		}
		if s.Hashed() != (stored != "newpass") {
			t.Fatalf("%T: Hashed()=%v but stored=%q", s, s.Hashed(), stored)
		}
	}
}
