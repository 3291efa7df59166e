// Package manifest encodes ship manifests to and from their stored string form.
//
// The stored form is a ';'-separated list of "shipTypeId,count" pairs, for example
// "202,3;204,5". Pairs are written in ascending ship id order so equal manifests
// encode to equal strings.
package manifest

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

const (
	pairSep  = ";"
	fieldSep = ","
)

// ErrMalformed is returned when a stored manifest string cannot be decoded.
var ErrMalformed = errors.New("malformed ship manifest")

// Encode serializes ships. Entries with a count of zero or less, or one that is
// NaN or infinite, are omitted.
func Encode(ships map[int]float64) string {
	ids := slices.Sorted(maps.Keys(ships))

	var b strings.Builder
	for _, id := range ids {
		count := ships[id]
		if count <= 0 || math.IsNaN(count) || math.IsInf(count, 0) {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(pairSep)
		}
		b.WriteString(strconv.Itoa(id))
		b.WriteString(fieldSep)
		b.WriteString(strconv.FormatFloat(count, 'f', -1, 64))
	}
	return b.String()
}

// Decode parses a stored manifest. An empty string yields an empty manifest.
// Pairs with a count of zero or less are dropped; repeated ids are summed.
// NaN and infinite counts are malformed.
func Decode(s string) (map[int]float64, error) {
	ships := make(map[int]float64)
	s = strings.TrimSpace(s)
	if s == "" {
		return ships, nil
	}

	for _, pair := range strings.Split(s, pairSep) {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		idStr, countStr, ok := strings.Cut(pair, fieldSep)
		if !ok {
			return nil, fmt.Errorf("%w: pair %q has no count", ErrMalformed, pair)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idStr))
		if err != nil {
			return nil, fmt.Errorf("%w: ship id %q: %v", ErrMalformed, idStr, err)
		}
		count, err := strconv.ParseFloat(strings.TrimSpace(countStr), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: count %q: %v", ErrMalformed, countStr, err)
		}
		if math.IsNaN(count) || math.IsInf(count, 0) {
			return nil, fmt.Errorf("%w: count %q is not finite", ErrMalformed, countStr)
		}

		if count > 0 {
			ships[id] += count
		}
	}

	return ships, nil
}
