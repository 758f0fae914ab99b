package signal

import (
	"fmt"
	"strings"
)

// Period is a named, contiguous range of years. End is exclusive.
type Period struct {
	Name  string
	Start int
	End   int
}

// Years returns the period's years in ascending order.
func (p Period) Years() []int {
	years := make([]int, 0, p.End-p.Start)
	for y := p.Start; y < p.End; y++ {
		years = append(years, y)
	}
	return years
}

// Code returns the short form used as a column-name suffix, e.g. "P1".
func (p Period) Code() string {
	return strings.ToUpper(p.Name)
}

// Label returns the human-readable form, e.g. "P1 (2010-2013)".
func (p Period) Label() string {
	return fmt.Sprintf("%s (%d-%d)", p.Name, p.Start, p.End-1)
}
