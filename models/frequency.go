package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Period is a symbolic recurrence interval.
type Period string

const (
	PeriodDaily    Period = "daily"
	PeriodWeekly   Period = "weekly"
	PeriodBiweekly Period = "biweekly"
	PeriodMonthly  Period = "monthly"
)

// DefaultFrequencyDays is used when a reminder is created without a frequency.
const DefaultFrequencyDays = 7

// FallbackFrequencyDays is used when a frequency value cannot be parsed.
const FallbackFrequencyDays = 3

// Frequency is the recurrence interval of a recurring reminder. Days is the
// canonical representation; Period is retained only for monthly recurrence,
// which advances by calendar month rather than a fixed day count.
type Frequency struct {
	Days   int    `bson:"days,omitempty" json:"days,omitempty"`
	Period Period `bson:"period,omitempty" json:"period,omitempty"`
}

// IsZero reports whether no frequency was provided.
func (f Frequency) IsZero() bool {
	return f.Days == 0 && f.Period == ""
}

// ParseFrequency converts a raw frequency value into canonical form. Accepted
// inputs: a positive day count, or one of the symbolic periods. Anything else
// resolves to the fallback day count.
func ParseFrequency(raw string) Frequency {
	switch Period(strings.ToLower(strings.TrimSpace(raw))) {
	case PeriodDaily:
		return Frequency{Days: 1}
	case PeriodWeekly:
		return Frequency{Days: 7}
	case PeriodBiweekly:
		return Frequency{Days: 14}
	case PeriodMonthly:
		return Frequency{Period: PeriodMonthly}
	}
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n > 0 {
		return Frequency{Days: n}
	}
	return Frequency{Days: FallbackFrequencyDays}
}

// UnmarshalJSON accepts the canonical object form as well as the two legacy
// wire forms: a bare day count ("frequency": 14) and a symbolic string
// ("frequency": "weekly").
func (f *Frequency) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` {
		*f = Frequency{}
		return nil
	}

	var days int
	if err := json.Unmarshal(data, &days); err == nil {
		if days > 0 {
			*f = Frequency{Days: days}
		} else {
			*f = Frequency{Days: FallbackFrequencyDays}
		}
		return nil
	}

	var symbolic string
	if err := json.Unmarshal(data, &symbolic); err == nil {
		*f = ParseFrequency(symbolic)
		return nil
	}

	type plain Frequency
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*f = Frequency(obj)
	return nil
}
