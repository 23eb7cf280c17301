package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ParseDurationEnv reads a duration from an env value. A bare integer is a
// number of seconds; anything else goes through time.ParseDuration. Matching
// single or double quotes around the value are ignored.
func ParseDurationEnv(s string) (time.Duration, error) {
	s = unquote(strings.TrimSpace(s))
	if s == "" {
		return 0, errors.New("empty duration")
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("want 10s, 5m or whole seconds: %w", err)
	}
	return d, nil
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
		return s[1 : len(s)-1]
	}
	return s
}

// ParseRedisURL splits a redis:// or rediss:// URL into address, password and DB.
func ParseRedisURL(s string) (addr, password string, db int, err error) {
	opt, err := redis.ParseURL(strings.TrimSpace(s))
	if err != nil {
		return "", "", 0, err
	}
	return opt.Addr, opt.Password, opt.DB, nil
}

func pgError(err error) *pgconn.PgError {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge
	}
	return nil
}

// IsPGUniqueViolation reports a unique constraint violation.
func IsPGUniqueViolation(err error) bool {
	pge := pgError(err)
	return pge != nil && pge.Code == pgUniqueViolation
}

// IsPGForeignKeyViolation reports a foreign key violation, on insert of a
// dangling reference or on delete of a still referenced row.
func IsPGForeignKeyViolation(err error) bool {
	pge := pgError(err)
	return pge != nil && pge.Code == pgForeignKeyViolation
}

// PGConstraint names the constraint a PostgreSQL error is about, or "".
func PGConstraint(err error) string {
	if pge := pgError(err); pge != nil {
		return pge.ConstraintName
	}
	return ""
}

// DigitsOnly strips everything but ASCII digits.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
