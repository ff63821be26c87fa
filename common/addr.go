package common

import (
	"dggsvt/util"
	"github.com/pkg/errors"
	"strings"
)

const (
	// MaxDigits is the capacity of an Addr. Two digits select the root face, the rest descend the grid.
	MaxDigits = 40

	// MaxDigit is the largest digit a trie level can be keyed by.
	MaxDigit byte = 6

	// Terminator is reported for the first unused position of an address.
	Terminator byte = 0xf

	digitBits     = 3
	digitMask     = 0x7
	digitsPerWord = 20
)

// Addr is a fixed capacity path of base-7 digits from the trie root to a cell. Digits are packed into three bits
// each. The stored value 7 marks an unused position; digits are stored complemented (d^7) so the zero Addr is empty.
type Addr struct {
	words [2]uint64
}

func (a Addr) raw(n int) byte {
	return byte(a.words[n/digitsPerWord]>>(uint(n%digitsPerWord)*digitBits)) & digitMask
}

func checkPosition(n int) {
	if n < 0 || n >= MaxDigits {
		util.Bug("Address position %d out of range [0,%d)", n, MaxDigits)
	}
}

// Digit returns the digit at position n or Terminator when the address ends before n.
func (a Addr) Digit(n int) byte {
	checkPosition(n)
	stored := a.raw(n)
	if stored == 0 {
		return Terminator
	}
	return stored ^ digitMask
}

// SetDigit sets the digit at position n. Setting Terminator cuts the logical address at n.
func (a *Addr) SetDigit(n int, digit byte) {
	checkPosition(n)

	var stored byte
	if digit == Terminator {
		stored = 0
	} else if digit <= MaxDigit {
		stored = digit ^ digitMask
	} else {
		util.Bug("Invalid address digit %d", digit)
	}

	shift := uint(n%digitsPerWord) * digitBits
	word := &a.words[n/digitsPerWord]
	*word = *word&^(uint64(digitMask)<<shift) | uint64(stored)<<shift
}

// Len returns the number of digits before the first terminator.
func (a Addr) Len() int {
	for n := 0; n < MaxDigits; n++ {
		if a.raw(n) == 0 {
			return n
		}
	}
	return MaxDigits
}

// Append adds a digit after the last one. Exceeding MaxDigits is a bug.
func (a *Addr) Append(digit byte) {
	n := a.Len()
	if n >= MaxDigits {
		util.Bug("Address capacity of %d digits exceeded", MaxDigits)
	}
	if digit > MaxDigit {
		util.Bug("Invalid address digit %d", digit)
	}
	a.SetDigit(n, digit)
}

// Prefix returns the first n digits of the address.
func (a Addr) Prefix(n int) Addr {
	prefix := Addr{}
	for i := 0; i < n && i < MaxDigits; i++ {
		digit := a.Digit(i)
		if digit == Terminator {
			break
		}
		prefix.SetDigit(i, digit)
	}
	return prefix
}

// Compare walks both addresses digit by digit and stops at the first terminator found in either one. A logical
// prefix sorts before the longer address. Whatever is stored behind a terminator is ignored.
func (a Addr) Compare(b Addr) int {
	for n := 0; n < MaxDigits; n++ {
		da := a.Digit(n)
		db := b.Digit(n)

		if da == Terminator || db == Terminator {
			switch {
			case da == db:
				return 0
			case da == Terminator:
				return -1
			default:
				return 1
			}
		}

		if da != db {
			if da < db {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (a Addr) Equal(b Addr) bool {
	return a.Compare(b) == 0
}

func (a Addr) String() string {
	var builder strings.Builder
	for n := 0; n < MaxDigits; n++ {
		digit := a.Digit(n)
		if digit == Terminator {
			break
		}
		builder.WriteByte('0' + digit)
	}
	return builder.String()
}

// ParseAddr parses a string of digits 0-6 like "13005030".
func ParseAddr(s string) (Addr, error) {
	addr := Addr{}
	if len(s) > MaxDigits {
		return addr, errors.Errorf("Address '%s' exceeds the capacity of %d digits", s, MaxDigits)
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '0'+MaxDigit {
			return Addr{}, errors.Errorf("Invalid digit '%c' at position %d of address '%s'", s[i], i, s)
		}
		addr.SetDigit(i, s[i]-'0')
	}

	return addr, nil
}

// IndexToAddr encodes a cell index as trie address: the root's class and ordinal followed by the path digits.
// Invalid indices yield the empty address.
func IndexToAddr(index Index) Addr {
	addr := Addr{}
	if !index.IsValid() {
		return addr
	}

	code := EncodeRoot(index.Root)
	addr.Append(code >> 4)
	addr.Append(code & 0x0f)

	for i := 0; i < len(index.Path); i++ {
		addr.Append(index.Path[i] - '0')
	}

	return addr
}

// AddrToIndex is the inverse of IndexToAddr. Addresses without a valid root yield the zero Index.
func AddrToIndex(addr Addr) Index {
	length := addr.Len()
	if length < 2 {
		return Index{}
	}

	root := DecodeRoot(addr.Digit(0)<<4 | addr.Digit(1))
	if root == InvalidRoot {
		return Index{}
	}

	path := make([]byte, length-2)
	for n := 2; n < length; n++ {
		path[n-2] = '0' + addr.Digit(n)
	}

	return Index{Root: root, Path: string(path)}
}
