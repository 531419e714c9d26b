package hashtype

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"
)

// TestDetect tests length based classification.
func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hash string
		want []HashType
	}{
		{
			name: "md5 length is ambiguous with ntlm",
			hash: "0df70868a807d1cc89c11a41eb5b876f",
			want: []HashType{MD5, NTLM},
		},
		{
			name: "uppercase hex is accepted",
			hash: "617B17D38947695A7BE15B61395F447B",
			want: []HashType{MD5, NTLM},
		},
		{
			name: "sha1",
			hash: "03e2ad3de8d21b93a4a35517d5666ed143bf63fc",
			want: []HashType{SHA1},
		},
		{
			name: "256-bit family",
			hash: strings.Repeat("ab", 32),
			want: []HashType{SHA256, SHA3_256, MD6_256},
		},
		{
			name: "512-bit family",
			hash: "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
			want: []HashType{SHA512, SHA3_512, Whirlpool, MD6_512},
		},
		{
			name: "non hex characters",
			hash: "notavalidhash123",
			want: []HashType{Unknown},
		},
		{
			name: "non hex with valid length",
			hash: strings.Repeat("z", 32),
			want: []HashType{Unknown},
		},
		{
			name: "unsupported length",
			hash: strings.Repeat("a", 48),
			want: []HashType{Unknown},
		},
		{
			name: "odd length",
			hash: strings.Repeat("a", 33),
			want: []HashType{Unknown},
		},
		{
			name: "empty",
			hash: "",
			want: []HashType{Unknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Detect(tt.hash)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Detect(%q) = %v, want %v", tt.hash, got, tt.want)
			}
		})
	}
}

// TestDetectIsDeterministic tests that repeated calls yield identical sets.
func TestDetectIsDeterministic(t *testing.T) {
	t.Parallel()

	hash := strings.Repeat("0", 40)
	first := Detect(hash)
	for range 100 {
		if got := Detect(hash); !slices.Equal(got, first) {
			t.Fatalf("Detect changed result: %v vs %v", got, first)
		}
	}
}

// TestDetectSizesMatchDigestSize tests that every detected type has the
// digest size implied by the input length.
func TestDetectSizesMatchDigestSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{16, 20, 32, 64} {
		for _, ht := range Detect(strings.Repeat("0", size*2)) {
			if ht.DigestSize() != size {
				t.Errorf("%s: DigestSize() = %d, want %d", ht, ht.DigestSize(), size)
			}
		}
	}
}

// TestParse tests alias normalization.
func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  HashType
	}{
		{"md5", MD5},
		{"MD5", MD5},
		{"sha1", SHA1},
		{"sha-1", SHA1},
		{"SHA_1", SHA1},
		{"sha256", SHA256},
		{"sha-256", SHA256},
		{"SHA256", SHA256},
		{"sha512", SHA512},
		{"Sha-512", SHA512},
		{"sha3", SHA3_256},
		{"sha3-256", SHA3_256},
		{"SHA3_256", SHA3_256},
		{"sha3256", SHA3_256},
		{"SHA3256", SHA3_256},
		{"sha3-512", SHA3_512},
		{"sha3_512", SHA3_512},
		{"ntlm", NTLM},
		{"NTLM", NTLM},
		{"whirlpool", Whirlpool},
		{"WhirlPool", Whirlpool},
		{"md6", MD6_256},
		{"md6-256", MD6_256},
		{"md6_256", MD6_256},
		{"md6-512", MD6_512},
		{"  md5  ", MD5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

// TestParseUnknown tests that unrecognized names are rejected.
func TestParseUnknown(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "md4", "sha384", "bcrypt", "unknown", "sha3-384", "lm"} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(input)
			if !errors.Is(err, ErrUnknownAlgorithm) {
				t.Errorf("Parse(%q) error = %v, want ErrUnknownAlgorithm", input, err)
			}
			if got != Unknown {
				t.Errorf("Parse(%q) = %s, want Unknown", input, got)
			}
		})
	}
}

// TestParseRoundTripsDisplayName tests that every display name parses back.
func TestParseRoundTripsDisplayName(t *testing.T) {
	t.Parallel()

	for _, ht := range All() {
		got, err := Parse(ht.String())
		if err != nil {
			t.Errorf("Parse(%q): %v", ht.String(), err)
			continue
		}
		if got != ht {
			t.Errorf("Parse(%q) = %s, want %s", ht.String(), got, ht)
		}
	}
}

// TestParseList tests list parsing.
func TestParseList(t *testing.T) {
	t.Parallel()

	got, err := ParseList([]string{"ntlm", "md5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, []HashType{NTLM, MD5}) {
		t.Errorf("ParseList = %v", got)
	}

	if _, err := ParseList([]string{"md5", "nope"}); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

// TestSupported tests which types have an implementation.
func TestSupported(t *testing.T) {
	t.Parallel()

	for _, ht := range All() {
		want := ht != MD6_256 && ht != MD6_512
		if ht.Supported() != want {
			t.Errorf("%s.Supported() = %v, want %v", ht, ht.Supported(), want)
		}
	}
	if Unknown.Supported() {
		t.Error("Unknown must not be supported")
	}
}

// TestHashTypeJSON tests JSON encoding as display names.
func TestHashTypeJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal([]HashType{SHA3_256, Unknown})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["SHA3-256","Unknown"]` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var decoded []HashType
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !slices.Equal(decoded, []HashType{SHA3_256, Unknown}) {
		t.Errorf("decoded = %v", decoded)
	}
}

// TestIsUnknown tests the detection gate helper.
func TestIsUnknown(t *testing.T) {
	t.Parallel()

	if !IsUnknown([]HashType{Unknown}) {
		t.Error("expected {Unknown} to be unknown")
	}
	if !IsUnknown(nil) {
		t.Error("expected empty set to be unknown")
	}
	if IsUnknown([]HashType{MD5, NTLM}) {
		t.Error("expected {MD5, NTLM} to be known")
	}
}

func TestPrioritize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		detected  []HashType
		preferred []HashType
		want      []HashType
	}{
		{"no preference", []HashType{MD5, NTLM}, nil, []HashType{MD5, NTLM}},
		{"preferred moves first", []HashType{MD5, NTLM}, []HashType{NTLM}, []HashType{NTLM, MD5}},
		{"undetected preference ignored", []HashType{SHA1}, []HashType{NTLM, MD5}, []HashType{SHA1}},
		{"duplicates in preference", []HashType{SHA256, SHA3_256, MD6_256}, []HashType{SHA3_256, SHA3_256}, []HashType{SHA3_256, SHA256, MD6_256}},
		{
			"preferred order wins",
			[]HashType{SHA512, SHA3_512, Whirlpool, MD6_512},
			[]HashType{Whirlpool, SHA3_512},
			[]HashType{Whirlpool, SHA3_512, SHA512, MD6_512},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Prioritize(tt.detected, tt.preferred); !slices.Equal(got, tt.want) {
				t.Errorf("Prioritize(%v, %v) = %v, want %v", tt.detected, tt.preferred, got, tt.want)
			}
		})
	}
}
