package model

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// KNToTonnes converts kilonewtons to tonnes-force.
const KNToTonnes = 0.10197162129779283

// ConvertKNToTonnes converts a force in kN to t.
func ConvertKNToTonnes(kn float64) float64 {
	return kn * KNToTonnes
}

// FirstNonZero returns the first value that is not zero, or 0.
func FirstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

// ClosestTo returns the value in list nearest to x. ok is false for an
// empty list.
func ClosestTo(list []float64, x float64) (closest float64, ok bool) {
	for i, v := range list {
		if i == 0 || math.Abs(v-x) < math.Abs(closest-x) {
			closest = v
		}
	}
	return closest, len(list) > 0
}

// IDRange is an inclusive run of consecutive member IDs.
type IDRange struct {
	From int
	To   int
}

func (r IDRange) String() string {
	if r.From == r.To {
		return strconv.Itoa(r.From)
	}
	return strconv.Itoa(r.From) + " To " + strconv.Itoa(r.To)
}

// GroupConsecutive sorts ids and collapses runs of consecutive values.
func GroupConsecutive(ids []int) []IDRange {
	if len(ids) == 0 {
		return nil
	}
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)

	var out []IDRange
	cur := IDRange{From: sorted[0], To: sorted[0]}
	for _, id := range sorted[1:] {
		if id == cur.To+1 {
			cur.To = id
			continue
		}
		if id == cur.To {
			continue
		}
		out = append(out, cur)
		cur = IDRange{From: id, To: id}
	}
	return append(out, cur)
}

// FormatMemberList renders ids the way the analysis program lists members,
// e.g. "1 To 4 7 9 To 10".
func FormatMemberList(ids []int) string {
	ranges := GroupConsecutive(ids)
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}

// BeamIDs returns the IDs of beams in slice order.
func BeamIDs(beams []Beam3D) []int {
	ids := make([]int, len(beams))
	for i, b := range beams {
		ids[i] = b.ID
	}
	return ids
}

// MaxMemberRange bounds the number of IDs a single range may expand to.
const MaxMemberRange = 1_000_000

// ParseMemberList reads a member list written by FormatMemberList. Commas
// separate entries as well as spaces, and "a-b" is accepted for "a To b".
// The result is sorted and free of duplicates.
func ParseMemberList(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })

	seen := map[int]bool{}
	add := func(from, to int) error {
		switch {
		case from < 1:
			return fmt.Errorf("invalid member ID %d", from)
		case to < from:
			return fmt.Errorf("invalid member range %d To %d", from, to)
		case to-from >= MaxMemberRange:
			return fmt.Errorf("member range %d To %d exceeds %d members", from, to, MaxMemberRange)
		}
		for id := from; id <= to; id++ {
			seen[id] = true
		}
		return nil
	}

	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if from, to, ok := strings.Cut(f, "-"); ok && from != "" {
			a, err1 := strconv.Atoi(from)
			b, err2 := strconv.Atoi(to)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("invalid member range %q", f)
			}
			if err := add(a, b); err != nil {
				return nil, err
			}
			continue
		}

		a, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid member ID %q", f)
		}
		if i+2 < len(fields) && strings.EqualFold(fields[i+1], "to") {
			b, err := strconv.Atoi(fields[i+2])
			if err != nil {
				return nil, fmt.Errorf("invalid member ID %q", fields[i+2])
			}
			if err := add(a, b); err != nil {
				return nil, err
			}
			i += 2
			continue
		}
		if err := add(a, a); err != nil {
			return nil, err
		}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}
