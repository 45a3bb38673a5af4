package integrity

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

const (
	HashBits           = 64
	DefaultShingleSize = 3
)

// represents a 64-bit SimHash fingerprint of source code
type Fingerprint uint64

// generates SimHash fingerprints from source code
type SimHasher struct {
	shingleSize int
}

// creates a new SimHasher with the given shingle size
func NewSimHasher(shingleSize int) *SimHasher {
	if shingleSize < 1 {
		shingleSize = DefaultShingleSize
	}

	return &SimHasher{shingleSize: shingleSize}
}

// fingerprints code with the default shingle size
func Hash(code string) Fingerprint {
	return NewSimHasher(DefaultShingleSize).Hash(code)
}

// generates a SimHash fingerprint from source code.
// comments and whitespace differences do not change the result.
func (s *SimHasher) Hash(code string) Fingerprint {
	tokens := tokenize(stripComments(code))
	if len(tokens) == 0 {
		return 0
	}

	return computeSimHash(s.generateShingles(tokens))
}

// drops // line comments, # line comments and /* */ blocks
func stripComments(code string) string {
	var b strings.Builder
	b.Grow(len(code))

	for i := 0; i < len(code); i++ {
		switch {
		case code[i] == '/' && i+1 < len(code) && code[i+1] == '/',
			code[i] == '#':
			for i < len(code) && code[i] != '\n' {
				i++
			}
			b.WriteByte('\n')
		case code[i] == '/' && i+1 < len(code) && code[i+1] == '*':
			end := strings.Index(code[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			i += end + 3
			b.WriteByte(' ')
		default:
			b.WriteByte(code[i])
		}
	}

	return b.String()
}

// splits code into identifier/number tokens and single punctuation tokens
func tokenize(code string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, strings.ToLower(word.String()))
			word.Reset()
		}
	}

	for _, r := range code {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			word.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()

	return tokens
}

func (s *SimHasher) generateShingles(tokens []string) []string {
	if len(tokens) < s.shingleSize {
		return []string{strings.Join(tokens, " ")}
	}

	shingles := make([]string, 0, len(tokens)-s.shingleSize+1)

	for i := 0; i <= len(tokens)-s.shingleSize; i++ {
		shingles = append(shingles, strings.Join(tokens[i:i+s.shingleSize], " "))
	}

	return shingles
}

func computeSimHash(shingles []string) Fingerprint {
	var v [HashBits]int

	for _, shingle := range shingles {
		hash := hashString(shingle)

		for i := range HashBits {
			if (hash>>i)&1 == 1 {
				v[i]++
			} else {
				v[i]--
			}
		}
	}

	var fingerprint Fingerprint
	for i := range HashBits {
		if v[i] > 0 {
			fingerprint |= 1 << i
		}
	}

	return fingerprint
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // hash.Hash.Write never returns an error
	return h.Sum64()
}

// calculates the number of differing bits between two fingerprints
func HammingDistance(a, b Fingerprint) int {
	xor := a ^ b
	count := 0

	for xor != 0 {
		count++
		xor &= xor - 1
	}

	return count
}

// returns 1 - hamming/64 as a percentage rounded to two decimals
func Similarity(a, b Fingerprint) float64 {
	ratio := 1 - float64(HammingDistance(a, b))/HashBits
	return math.Round(ratio*10000) / 100
}

// stored as bigint in Postgres
func (f Fingerprint) Int64() int64 {
	return int64(f) //nolint:gosec // bit pattern is preserved
}

func FromInt64(v int64) Fingerprint {
	return Fingerprint(uint64(v)) //nolint:gosec // bit pattern is preserved
}
