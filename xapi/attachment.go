package xapi

import (
	"encoding/json"
	"fmt"
)

// Attachment carries the metadata of a statement attachment. The payload
// itself is not part of this layer; only the descriptor travels with the
// statement. Required: usage type, display, content type, length, sha2.
type Attachment struct {
	UsageType   string
	Display     LanguageMap
	Description LanguageMap
	ContentType string
	Length      int64
	SHA2        string
	FileURL     *string
}

// Validate checks the required fields.
func (a *Attachment) Validate() error {
	if a.UsageType == "" {
		return fmt.Errorf("attachment usageType must not be empty: %w", ErrInvalidValue)
	}
	if a.Display == nil {
		return fmt.Errorf("attachment display is required: %w", ErrInvalidValue)
	}
	if a.ContentType == "" {
		return fmt.Errorf("attachment contentType must not be empty: %w", ErrInvalidValue)
	}
	if a.Length < 0 {
		return fmt.Errorf("attachment length %d negative: %w", a.Length, ErrInvalidValue)
	}
	if a.SHA2 == "" {
		return fmt.Errorf("attachment sha2 must not be empty: %w", ErrInvalidValue)
	}
	return nil
}

// AsVersion projects the attachment to its wire form.
func (a *Attachment) AsVersion(v Version) (map[string]any, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	disp, err := a.Display.AsVersion(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{
		"usageType":   a.UsageType,
		"display":     disp,
		"contentType": a.ContentType,
		"length":      a.Length,
		"sha2":        a.SHA2,
	}
	if a.Description != nil {
		desc, err := a.Description.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["description"] = desc
	}
	if a.FileURL != nil {
		out["fileUrl"] = *a.FileURL
	}
	return out, nil
}

// UnmarshalJSON decodes an attachment, rejecting unknown keys.
func (a *Attachment) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "Attachment")
	if err != nil {
		return err
	}
	if err := obj.checkKeys("Attachment", "usageType", "display", "description", "contentType", "length", "sha2", "fileUrl"); err != nil {
		return err
	}
	out := Attachment{}
	if s, err := obj.stringField("Attachment", "usageType"); err != nil {
		return err
	} else if s != nil {
		out.UsageType = *s
	}
	if raw, ok := obj["display"]; ok {
		if err := out.Display.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	if raw, ok := obj["description"]; ok {
		if err := out.Description.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	if s, err := obj.stringField("Attachment", "contentType"); err != nil {
		return err
	} else if s != nil {
		out.ContentType = *s
	}
	if n, err := obj.int64Field("Attachment", "length"); err != nil {
		return err
	} else if n != nil {
		out.Length = *n
	}
	if s, err := obj.stringField("Attachment", "sha2"); err != nil {
		return err
	} else if s != nil {
		out.SHA2 = *s
	}
	if out.FileURL, err = obj.stringField("Attachment", "fileUrl"); err != nil {
		return err
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*a = out
	return nil
}

// MarshalJSON renders the attachment at the latest protocol version.
func (a *Attachment) MarshalJSON() ([]byte, error) {
	m, err := a.AsVersion(LatestVersion())
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// AttachmentList is an ordered, homogeneous sequence of attachments.
type AttachmentList []*Attachment

// AsVersion projects the list element-wise.
func (l AttachmentList) AsVersion(v Version) ([]any, error) {
	out := make([]any, 0, len(l))
	for i, a := range l {
		m, err := a.AsVersion(v)
		if err != nil {
			return nil, fmt.Errorf("attachment[%d]: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// UnmarshalJSON decodes a JSON array of attachments.
func (l *AttachmentList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("attachment list: not a JSON array: %w", ErrInvalidType)
	}
	out := make(AttachmentList, 0, len(raw))
	for i, r := range raw {
		a := &Attachment{}
		if err := a.UnmarshalJSON(r); err != nil {
			return fmt.Errorf("attachment[%d]: %w", i, err)
		}
		out = append(out, a)
	}
	*l = out
	return nil
}
