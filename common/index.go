package common

import (
	"dggsvt/util"
	"github.com/pkg/errors"
	"sort"
	"strings"
)

const (
	// MinSubResolution is the first resolution below the root faces. Only cells from here on carry payload.
	MinSubResolution = 2

	// MaxResolution is the finest resolution whose address still fits into an Addr.
	MaxResolution = MaxDigits - 1
)

// Index identifies one cell of the grid: a root face and the digit path descending from it. The root face itself has
// an empty path and resolution 1. The zero Index is invalid.
type Index struct {
	Root RootFace
	Path string // Digits '0' to '6', one per resolution below the root.
}

func NewIndex(root RootFace, digits ...byte) Index {
	index := Index{Root: root}
	for _, digit := range digits {
		index = index.Child(digit)
	}
	return index
}

// ParseIndex parses strings like "3-005030", "F-0" or "12".
func ParseIndex(s string) (Index, error) {
	rootString, path, _ := strings.Cut(strings.TrimSpace(s), "-")

	root, err := ParseRootFace(rootString)
	if err != nil {
		return Index{}, errors.Wrapf(err, "Invalid cell index '%s'", s)
	}

	if len(path) > MaxResolution-1 {
		return Index{}, errors.Errorf("Cell index '%s' exceeds the maximum resolution %d", s, MaxResolution)
	}

	for i := 0; i < len(path); i++ {
		if path[i] < '0' || path[i] > '0'+MaxDigit {
			return Index{}, errors.Errorf("Invalid digit '%c' in cell index '%s'", path[i], s)
		}
	}

	return Index{Root: root, Path: path}, nil
}

func (i Index) String() string {
	if i.Path == "" {
		return i.Root.String()
	}
	return i.Root.String() + "-" + i.Path
}

func (i Index) IsValid() bool {
	if !i.Root.IsValid() || len(i.Path) > MaxResolution-1 {
		return false
	}
	for n := 0; n < len(i.Path); n++ {
		if i.Path[n] < '0' || i.Path[n] > '0'+MaxDigit {
			return false
		}
	}
	return true
}

func (i Index) Resolution() int {
	return len(i.Path) + 1
}

func (i Index) IsRoot() bool {
	return i.Path == ""
}

// Digit returns the n-th path digit.
func (i Index) Digit(n int) byte {
	return i.Path[n] - '0'
}

// LastDigit returns the digit selecting this cell within its parent. Roots have none.
func (i Index) LastDigit() byte {
	if i.IsRoot() {
		return Terminator
	}
	return i.Digit(len(i.Path) - 1)
}

// Parent returns the cell one digit up. The parent of a root face is the zero Index.
func (i Index) Parent() Index {
	if i.IsRoot() {
		return Index{}
	}
	return Index{Root: i.Root, Path: i.Path[:len(i.Path)-1]}
}

// Ancestor returns the cell on this cell's path at the given resolution.
func (i Index) Ancestor(resolution int) Index {
	if resolution < 1 || resolution > i.Resolution() {
		util.Bug("Resolution %d is no ancestor resolution of %s", resolution, i)
	}
	return Index{Root: i.Root, Path: i.Path[:resolution-1]}
}

// Child returns the cell below this one selected by digit.
func (i Index) Child(digit byte) Index {
	if digit > MaxDigit {
		util.Bug("Invalid child digit %d for cell %s", digit, i)
	}
	if i.Resolution() >= MaxResolution {
		util.Bug("Cell %s has no children within the address capacity", i)
	}
	return Index{Root: i.Root, Path: i.Path + string('0'+digit)}
}

func (i Index) Less(other Index) bool {
	if i.Root != other.Root {
		return i.Root < other.Root
	}
	return i.Path < other.Path
}

// SortIndices sorts the cells in place and removes duplicates.
func SortIndices(indices []Index) []Index {
	sort.Slice(indices, func(a, b int) bool {
		return indices[a].Less(indices[b])
	})

	unique := indices[:0]
	for _, index := range indices {
		if len(unique) == 0 || index != unique[len(unique)-1] {
			unique = append(unique, index)
		}
	}
	return unique
}
