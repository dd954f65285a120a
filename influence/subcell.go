package influence

import "fmt"

// SubCell is one of the logical partitions of a grid cell
// FullCell occupies the whole cell, the others let up to five small actors share it
type SubCell uint8

const (
	FullCell SubCell = iota
	TopLeft
	TopRight
	Center
	BottomLeft
	BottomRight

	subCellCount
)

// partitions is the fixed search order for free non-full partitions
var partitions = [...]SubCell{TopLeft, TopRight, Center, BottomLeft, BottomRight}

// Partitions returns the five non-full partitions in search order
func Partitions() []SubCell {
	out := make([]SubCell, len(partitions))
	copy(out, partitions[:])
	return out
}

var subCellNames = [subCellCount]string{
	FullCell:    "full",
	TopLeft:     "top-left",
	TopRight:    "top-right",
	Center:      "center",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
}

// String returns the lowercase name of the partition
func (s SubCell) String() string {
	if s < subCellCount {
		return subCellNames[s]
	}
	return fmt.Sprintf("subcell(%d)", uint8(s))
}

// Valid reports whether s is one of the six defined partitions
func (s SubCell) Valid() bool {
	return s < subCellCount
}

// ParseSubCell maps a name produced by String back to its partition
// Empty string maps to FullCell
func ParseSubCell(name string) (SubCell, error) {
	if name == "" {
		return FullCell, nil
	}
	for i, n := range subCellNames {
		if n == name {
			return SubCell(i), nil
		}
	}
	return FullCell, fmt.Errorf("unknown subcell %q", name)
}
