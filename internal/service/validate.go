package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"fieldmate/internal/utils"
)

var colorRe = regexp.MustCompile(`^#[0-9A-F]{6}$`)

// normalizeColor accepts "#rrggbb" in any case, with or without the '#'.
func normalizeColor(c string) (string, error) {
	c = strings.ToUpper(strings.TrimSpace(c))
	if !strings.HasPrefix(c, "#") {
		c = "#" + c
	}
	if !colorRe.MatchString(c) {
		return "", invalid("color must be #RRGGBB")
	}
	return c, nil
}

// normalizePhone keeps digits only; 9 to 15 of them are required.
func normalizePhone(field, p string) (string, error) {
	d := utils.DigitsOnly(p)
	if len(d) < 9 || len(d) > 15 {
		return "", invalid("%s must have 9 to 15 digits", field)
	}
	return d, nil
}

// optionalPhone is normalizePhone that lets an empty value through.
func optionalPhone(field, p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", nil
	}
	return normalizePhone(field, p)
}

func requireText(field, v string, max int) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", invalid("%s is required", field)
	}
	if utf8.RuneCountInString(v) > max {
		return "", invalid("%s is longer than %d characters", field, max)
	}
	return v, nil
}

func optionalText(field, v string, max int) (string, error) {
	v = strings.TrimSpace(v)
	if utf8.RuneCountInString(v) > max {
		return "", invalid("%s is longer than %d characters", field, max)
	}
	return v, nil
}

// uniqueIDs drops non-positive and duplicate ids, keeping order.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
