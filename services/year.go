package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseYear reduces a release date to the year bucket key. A date made of
// several hyphen-separated numbers yields the largest one; a single
// component is returned untouched. The largest number is not always the
// year (e.g. "05-99"), which is accepted.
func ParseYear(date string) (string, error) {
	parts := strings.Split(date, "-")
	if len(parts) == 1 {
		return parts[0], nil
	}

	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return "", errors.Wrapf(err, "release date %q", date)
		}
		nums = append(nums, n)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(nums)))
	return strconv.Itoa(nums[0]), nil
}
