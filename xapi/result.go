package xapi

import (
	"encoding/json"
	"fmt"
	"time"

	"xapigo/internal/iso8601"
)

// Duration is a calendar-free time delta carried on the wire as an ISO 8601
// period string.
type Duration time.Duration

// ParseDuration decodes an ISO 8601 duration string. Fractional parts are
// permitted only on the final unit present; years and months are rejected.
func ParseDuration(s string) (Duration, error) {
	d, err := iso8601.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%v: %w", err, ErrInvalidValue)
	}
	return Duration(d), nil
}

// String renders the minimal ISO 8601 form.
func (d Duration) String() string {
	return iso8601.FormatDuration(time.Duration(d))
}

// Score is the outcome measure of a result. All fields are optional.
type Score struct {
	Scaled *float64
	Raw    *float64
	Min    *float64
	Max    *float64
}

// Validate checks scaled is within [-1, 1] and min <= raw <= max for the
// fields present.
func (s *Score) Validate() error {
	if s.Scaled != nil && (*s.Scaled < -1 || *s.Scaled > 1) {
		return fmt.Errorf("score scaled %v outside [-1,1]: %w", *s.Scaled, ErrInvalidValue)
	}
	if s.Min != nil && s.Raw != nil && *s.Raw < *s.Min {
		return fmt.Errorf("score raw %v below min %v: %w", *s.Raw, *s.Min, ErrInvalidValue)
	}
	if s.Max != nil && s.Raw != nil && *s.Raw > *s.Max {
		return fmt.Errorf("score raw %v above max %v: %w", *s.Raw, *s.Max, ErrInvalidValue)
	}
	if s.Min != nil && s.Max != nil && *s.Min > *s.Max {
		return fmt.Errorf("score min %v above max %v: %w", *s.Min, *s.Max, ErrInvalidValue)
	}
	return nil
}

// AsVersion projects the score to its wire form.
func (s *Score) AsVersion(v Version) (map[string]any, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	out := map[string]any{}
	if s.Scaled != nil {
		out["scaled"] = *s.Scaled
	}
	if s.Raw != nil {
		out["raw"] = *s.Raw
	}
	if s.Min != nil {
		out["min"] = *s.Min
	}
	if s.Max != nil {
		out["max"] = *s.Max
	}
	return out, nil
}

// UnmarshalJSON decodes a score, rejecting unknown keys.
func (s *Score) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "Score")
	if err != nil {
		return err
	}
	if err := obj.checkKeys("Score", "scaled", "raw", "min", "max"); err != nil {
		return err
	}
	out := Score{}
	if out.Scaled, err = obj.float64Field("Score", "scaled"); err != nil {
		return err
	}
	if out.Raw, err = obj.float64Field("Score", "raw"); err != nil {
		return err
	}
	if out.Min, err = obj.float64Field("Score", "min"); err != nil {
		return err
	}
	if out.Max, err = obj.float64Field("Score", "max"); err != nil {
		return err
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*s = out
	return nil
}

// Result records the measured outcome of a statement.
type Result struct {
	Score      *Score
	Success    *bool
	Completion *bool
	Duration   *Duration
	Response   *string
	Extensions Extensions
}

// SetDuration parses an ISO 8601 duration string.
func (r *Result) SetDuration(s string) error {
	d, err := ParseDuration(s)
	if err != nil {
		return err
	}
	r.Duration = &d
	return nil
}

// Validate checks the nested score.
func (r *Result) Validate() error {
	if r.Score != nil {
		return r.Score.Validate()
	}
	return nil
}

// AsVersion projects the result to its wire form.
func (r *Result) AsVersion(v Version) (map[string]any, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	out := map[string]any{}
	if r.Score != nil {
		m, err := r.Score.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["score"] = m
	}
	if r.Success != nil {
		out["success"] = *r.Success
	}
	if r.Completion != nil {
		out["completion"] = *r.Completion
	}
	if r.Duration != nil {
		out["duration"] = r.Duration.String()
	}
	if r.Response != nil {
		out["response"] = *r.Response
	}
	if r.Extensions != nil {
		ext, err := r.Extensions.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["extensions"] = ext
	}
	return out, nil
}

// UnmarshalJSON decodes a result, rejecting unknown keys.
func (r *Result) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "Result")
	if err != nil {
		return err
	}
	if err := obj.checkKeys("Result", "score", "success", "completion", "duration", "response", "extensions"); err != nil {
		return err
	}
	out := Result{}
	if raw, ok := obj["score"]; ok {
		score := &Score{}
		if err := score.UnmarshalJSON(raw); err != nil {
			return err
		}
		out.Score = score
	}
	if out.Success, err = obj.boolField("Result", "success"); err != nil {
		return err
	}
	if out.Completion, err = obj.boolField("Result", "completion"); err != nil {
		return err
	}
	if s, err := obj.stringField("Result", "duration"); err != nil {
		return err
	} else if s != nil {
		if err := out.SetDuration(*s); err != nil {
			return err
		}
	}
	if out.Response, err = obj.stringField("Result", "response"); err != nil {
		return err
	}
	if raw, ok := obj["extensions"]; ok {
		if err := out.Extensions.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	*r = out
	return nil
}

// MarshalJSON renders the result at the latest protocol version.
func (r *Result) MarshalJSON() ([]byte, error) {
	m, err := r.AsVersion(LatestVersion())
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}
