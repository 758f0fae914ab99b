package signal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sort"
)

// ErrPeriodMismatch is returned when the two evolution tables do not cover
// the same periods. Reconciling different period sets would silently produce
// wrong verdicts, so this is fatal.
var ErrPeriodMismatch = errors.New("evolution tables cover different periods")

// Validated holds, per keyword and period, the two source categories and the
// reconciled verdict.
type Validated struct {
	Codes    []string
	Keywords []string // sorted union of both map families
	kem      *Evolution
	kim      *Evolution
	verdicts map[string]map[string]Category
}

// CrossValidate outer-joins the KEM and KIM evolution tables and derives one
// verdict per keyword per period:
//
//   - both sides agree: the common category (NotPresent when both absent)
//   - anything else, including one-sided absence: NotValidated
//
// A keyword present in only one family still gets a row; its missing cells
// read as NotPresent, which never silently drops it.
func CrossValidate(kem, kim *Evolution) (*Validated, error) {
	if len(kem.Codes) != len(kim.Codes) {
		return nil, fmt.Errorf("%w: %v vs %v", ErrPeriodMismatch, kem.Codes, kim.Codes)
	}
	for i, code := range kem.Codes {
		if kim.Codes[i] != code {
			return nil, fmt.Errorf("%w: %v vs %v", ErrPeriodMismatch, kem.Codes, kim.Codes)
		}
	}

	union := make(map[string]struct{})
	for _, k := range kem.Keywords {
		union[k] = struct{}{}
	}
	for _, k := range kim.Keywords {
		union[k] = struct{}{}
	}
	keywords := make([]string, 0, len(union))
	for k := range union {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)

	v := &Validated{
		Codes:    kem.Codes,
		Keywords: keywords,
		kem:      kem,
		kim:      kim,
		verdicts: make(map[string]map[string]Category, len(keywords)),
	}
	for _, k := range keywords {
		row := make(map[string]Category, len(v.Codes))
		for _, code := range v.Codes {
			row[code] = reconcile(kem.Category(k, code), kim.Category(k, code))
		}
		v.verdicts[k] = row
	}
	return v, nil
}

// reconcile derives the validated category from the two source categories.
func reconcile(a, b Category) Category {
	if a == b {
		return a // includes NotPresent == NotPresent
	}
	return NotValidated
}

// KEM returns the frequency-based source category.
func (v *Validated) KEM(keyword, code string) Category {
	return v.kem.Category(keyword, code)
}

// KIM returns the document-based source category.
func (v *Validated) KIM(keyword, code string) Category {
	return v.kim.Category(keyword, code)
}

// Verdict returns the reconciled category.
func (v *Validated) Verdict(keyword, code string) Category {
	if row, ok := v.verdicts[keyword]; ok {
		if c, ok := row[code]; ok {
			return c
		}
	}
	return NotPresent
}

// filter returns a copy restricted to keywords for which keep is true.
func (v *Validated) filter(keep func(keyword string) bool) *Validated {
	out := &Validated{
		Codes:    v.Codes,
		kem:      v.kem,
		kim:      v.kim,
		verdicts: v.verdicts,
	}
	for _, k := range v.Keywords {
		if keep(k) {
			out.Keywords = append(out.Keywords, k)
		}
	}
	return out
}

// FilterAllValidated keeps keywords whose verdict is an actual signal
// category in at least one period.
func (v *Validated) FilterAllValidated() *Validated {
	return v.filter(func(k string) bool {
		for _, code := range v.Codes {
			if v.Verdict(k, code).IsSignal() {
				return true
			}
		}
		return false
	})
}

// FilterHighImpact narrows FilterAllValidated to keywords with a Weak or
// Strong Signal verdict in at least one period.
func (v *Validated) FilterHighImpact() *Validated {
	return v.FilterAllValidated().filter(func(k string) bool {
		for _, code := range v.Codes {
			if v.Verdict(k, code).IsHighImpact() {
				return true
			}
		}
		return false
	})
}

// WriteCSV writes the validated table: the verdict columns first, then the
// per-period KEM and KIM source columns, keyword as row key.
func (v *Validated) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"keyword"}
	for _, code := range v.Codes {
		header = append(header, "validated_"+code)
	}
	for _, code := range v.Codes {
		header = append(header, "kem_"+code, "kim_"+code)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, k := range v.Keywords {
		record := []string{k}
		for _, code := range v.Codes {
			record = append(record, string(v.Verdict(k, code)))
		}
		for _, code := range v.Codes {
			record = append(record, string(v.KEM(k, code)), string(v.KIM(k, code)))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing row %q: %w", k, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}
