package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// TransAttribute is a container-managed transaction demarcation policy
type TransAttribute string

const (
	Required     TransAttribute = "Required"
	RequiresNew  TransAttribute = "RequiresNew"
	Mandatory    TransAttribute = "Mandatory"
	Never        TransAttribute = "Never"
	NotSupported TransAttribute = "NotSupported"
	Supports     TransAttribute = "Supports"
)

var transAttributes = []TransAttribute{Required, RequiresNew, Mandatory, Never, NotSupported, Supports}

// ParseTransAttribute accepts descriptor spelling (RequiresNew) and annotation
// spelling (REQUIRES_NEW, TransactionAttributeType.REQUIRES_NEW).
func ParseTransAttribute(s string) (TransAttribute, error) {
	want := normalizeEnum(s)
	for _, ta := range transAttributes {
		if normalizeEnum(string(ta)) == want {
			return ta, nil
		}
	}
	return "", fmt.Errorf("unknown transaction attribute %q", s)
}

// LockType is a singleton concurrency lock mode
type LockType string

const (
	ReadLock  LockType = "Read"
	WriteLock LockType = "Write"
)

// ParseLockType accepts Read/Write in any case, optionally qualified (LockType.READ)
func ParseLockType(s string) (LockType, error) {
	switch normalizeEnum(s) {
	case "READ":
		return ReadLock, nil
	case "WRITE":
		return WriteLock, nil
	}
	return "", fmt.Errorf("unknown lock type %q", s)
}

// TimeUnit names the unit of a Timeout
type TimeUnit string

const (
	Nanoseconds  TimeUnit = "NANOSECONDS"
	Microseconds TimeUnit = "MICROSECONDS"
	Milliseconds TimeUnit = "MILLISECONDS"
	Seconds      TimeUnit = "SECONDS"
	Minutes      TimeUnit = "MINUTES"
	Hours        TimeUnit = "HOURS"
	Days         TimeUnit = "DAYS"
)

var unitDurations = map[TimeUnit]time.Duration{
	Nanoseconds:  time.Nanosecond,
	Microseconds: time.Microsecond,
	Milliseconds: time.Millisecond,
	Seconds:      time.Second,
	Minutes:      time.Minute,
	Hours:        time.Hour,
	Days:         24 * time.Hour,
}

// ParseTimeUnit accepts NANOSECONDS..DAYS, case-insensitive and optionally qualified
func ParseTimeUnit(s string) (TimeUnit, error) {
	u := TimeUnit(normalizeEnum(s))
	if _, ok := unitDurations[u]; !ok {
		return "", fmt.Errorf("unknown time unit %q", s)
	}
	return u, nil
}

// Timeout is an access timeout. Time -1 waits forever, 0 does not wait.
type Timeout struct {
	Time int64    `json:"time"`
	Unit TimeUnit `json:"unit"`
}

// Validate rejects negative times other than -1, unknown units and times
// too long to express as a time.Duration
func (t Timeout) Validate() error {
	if t.Time < -1 {
		return fmt.Errorf("access timeout %d is below -1", t.Time)
	}
	unit, ok := unitDurations[t.Unit]
	if !ok {
		return fmt.Errorf("unknown time unit %q", t.Unit)
	}
	if t.Time > int64(math.MaxInt64/unit) {
		return fmt.Errorf("access timeout %d %s overflows", t.Time, t.Unit)
	}
	return nil
}

// Duration converts the timeout. A negative result means wait forever.
func (t Timeout) Duration() time.Duration {
	if t.Time < 0 {
		return -1
	}
	return time.Duration(t.Time) * unitDurations[t.Unit]
}

// String returns "1 HOURS"
func (t Timeout) String() string {
	return fmt.Sprintf("%d %s", t.Time, t.Unit)
}

// Permission is the resolved security policy of a method
type Permission struct {
	Roles     []string `json:"roles,omitempty"`
	Unchecked bool     `json:"unchecked,omitempty"`
	Excluded  bool     `json:"excluded,omitempty"`
}

// String returns "Unchecked", "Excluded" or the comma separated roles
func (p Permission) String() string {
	switch {
	case p.Unchecked:
		return "Unchecked"
	case p.Excluded:
		return "Excluded"
	default:
		return strings.Join(p.Roles, ", ")
	}
}

// normalizeEnum strips a qualifier and separators: "LockType.READ" -> "READ",
// "requires-new" -> "REQUIRESNEW".
func normalizeEnum(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "."); i >= 0 {
		s = s[i+1:]
	}
	s = strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
	return strings.ToUpper(s)
}
