package xapi

import (
	"encoding/json"
	"fmt"
)

// StatementsResult is one page of a statements query. More, when present,
// is the opaque continuation path the LRS returned; its absence means the
// end of the result set.
type StatementsResult struct {
	Statements StatementList
	More       *string
}

// AsVersion projects the result to its wire form.
func (r *StatementsResult) AsVersion(v Version) (map[string]any, error) {
	stmts, err := r.Statements.AsVersion(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{"statements": stmts}
	if r.More != nil {
		out["more"] = *r.More
	}
	return out, nil
}

// UnmarshalJSON decodes a query page, rejecting unknown keys.
func (r *StatementsResult) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "StatementsResult")
	if err != nil {
		return err
	}
	if err := obj.checkKeys("StatementsResult", "statements", "more"); err != nil {
		return err
	}
	out := StatementsResult{Statements: StatementList{}}
	if raw, ok := obj["statements"]; ok {
		if err := out.Statements.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	if out.More, err = obj.stringField("StatementsResult", "more"); err != nil {
		return err
	}
	*r = out
	return nil
}

// StatementsResultFromJSON reconstructs a query page from its wire form.
func StatementsResultFromJSON(data []byte) (*StatementsResult, error) {
	r := &StatementsResult{}
	if err := r.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return r, nil
}

// MarshalJSON renders the page at the latest protocol version.
func (r *StatementsResult) MarshalJSON() ([]byte, error) {
	m, err := r.AsVersion(LatestVersion())
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// About describes an LRS: the protocol versions it speaks plus any custom
// extensions. The version list must not be empty.
type About struct {
	Version    []Version
	Extensions Extensions
}

// Validate checks the version list is non-empty.
func (a *About) Validate() error {
	if len(a.Version) == 0 {
		return fmt.Errorf("about version list must not be empty: %w", ErrInvalidValue)
	}
	return nil
}

// AsVersion projects the about record to its wire form.
func (a *About) AsVersion(v Version) (map[string]any, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	versions := make([]any, 0, len(a.Version))
	for _, ver := range a.Version {
		versions = append(versions, string(ver))
	}
	out := map[string]any{"version": versions}
	if a.Extensions != nil {
		ext, err := a.Extensions.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["extensions"] = ext
	}
	return out, nil
}

// UnmarshalJSON decodes an about record, rejecting unknown keys. Version
// strings outside the supported set are carried through untouched; the LRS
// may speak versions this client does not.
func (a *About) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "About")
	if err != nil {
		return err
	}
	if err := obj.checkKeys("About", "version", "extensions"); err != nil {
		return err
	}
	out := About{}
	if raw, ok := obj["version"]; ok {
		var versions []string
		if err := json.Unmarshal(raw, &versions); err != nil {
			return fmt.Errorf("About.version: not a string array: %w", ErrInvalidType)
		}
		for _, v := range versions {
			out.Version = append(out.Version, Version(v))
		}
	}
	if raw, ok := obj["extensions"]; ok {
		if err := out.Extensions.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*a = out
	return nil
}

// AboutFromJSON reconstructs an about record from its wire form.
func AboutFromJSON(data []byte) (*About, error) {
	a := &About{}
	if err := a.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return a, nil
}
