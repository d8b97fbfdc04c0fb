package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	DefaultPasswordLength = 12
	MaxPasswordLength     = 128
)

// PasswordOptions selects the character classes used by GeneratePassword.
type PasswordOptions struct {
	Length    int
	Uppercase bool
	Lowercase bool
	Numbers   bool
	Symbols   bool
}

// DefaultPasswordOptions: 12 characters, lowercase letters and digits.
func DefaultPasswordOptions() PasswordOptions {
	return PasswordOptions{Length: DefaultPasswordLength, Lowercase: true, Numbers: true}
}

func (o PasswordOptions) charset() string {
	var cs string
	if o.Uppercase {
		cs += upperChars
	}
	if o.Lowercase {
		cs += lowerChars
	}
	if o.Numbers {
		cs += digitChars
	}
	if o.Symbols {
		cs += symbolChars
	}
	if cs == "" {
		cs = lowerChars + digitChars
	}
	return cs
}

// GeneratePassword draws each character uniformly from the selected
// classes using crypto/rand. A non-positive length uses the default and
// lengths above MaxPasswordLength are clamped.
func GeneratePassword(o PasswordOptions) (string, error) {
	n := o.Length
	if n <= 0 {
		n = DefaultPasswordLength
	}
	if n > MaxPasswordLength {
		n = MaxPasswordLength
	}

	cs := o.charset()
	limit := big.NewInt(int64(len(cs)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		out[i] = cs[idx.Int64()]
	}
	return string(out), nil
}
