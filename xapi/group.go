package xapi

import (
	"encoding/json"
	"fmt"
)

// AgentList is an ordered, homogeneous sequence of agents.
type AgentList []*Agent

// AsVersion projects the list element-wise.
func (l AgentList) AsVersion(v Version) ([]any, error) {
	out := make([]any, 0, len(l))
	for i, a := range l {
		m, err := a.AsVersion(v)
		if err != nil {
			return nil, fmt.Errorf("agent[%d]: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// UnmarshalJSON decodes a JSON array of agents.
func (l *AgentList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("agent list: not a JSON array: %w", ErrInvalidType)
	}
	out := make(AgentList, 0, len(raw))
	for i, r := range raw {
		a := &Agent{}
		if err := a.UnmarshalJSON(r); err != nil {
			return fmt.Errorf("agent[%d]: %w", i, err)
		}
		out = append(out, a)
	}
	*l = out
	return nil
}

// Group is a set of agents, either anonymous (members only) or identified by
// the same IFI fields an Agent carries. The wire objectType is always
// "Group".
type Group struct {
	Name        *string
	Mbox        *string
	MboxSHA1Sum *string
	OpenID      *string
	Account     *AgentAccount
	Members     AgentList
}

func (g *Group) isActor() {}

// ObjectType returns the fixed discriminator "Group".
func (g *Group) ObjectType() string { return "Group" }

func (g *Group) hasIFI() bool {
	return g.Mbox != nil || g.MboxSHA1Sum != nil || g.OpenID != nil || g.Account != nil
}

// Validate applies the Agent field constraints plus the group rule: an
// anonymous group must carry members.
func (g *Group) Validate() error {
	proxy := Agent{Name: g.Name, Mbox: g.Mbox, MboxSHA1Sum: g.MboxSHA1Sum, OpenID: g.OpenID, Account: g.Account}
	if err := proxy.Validate(); err != nil {
		return err
	}
	if !g.hasIFI() && len(g.Members) == 0 {
		return fmt.Errorf("anonymous group must have members: %w", ErrInvalidValue)
	}
	for _, m := range g.Members {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AsVersion projects the group to its wire form.
func (g *Group) AsVersion(v Version) (map[string]any, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	out := map[string]any{"objectType": g.ObjectType()}
	if g.Name != nil {
		out["name"] = *g.Name
	}
	if g.Mbox != nil {
		out["mbox"] = *g.Mbox
	}
	if g.MboxSHA1Sum != nil {
		out["mbox_sha1sum"] = *g.MboxSHA1Sum
	}
	if g.OpenID != nil {
		out["openid"] = *g.OpenID
	}
	if g.Account != nil {
		acct, err := g.Account.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["account"] = acct
	}
	if g.Members != nil {
		members, err := g.Members.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["member"] = members
	}
	return out, nil
}

// UnmarshalJSON decodes a group, rejecting unknown keys.
func (g *Group) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "Group")
	if err != nil {
		return err
	}
	if err := obj.checkKeys("Group", "objectType", "object_type", "name", "mbox", "mbox_sha1sum", "openid", "account", "member"); err != nil {
		return err
	}
	ot, err := obj.objectType("Group")
	if err != nil {
		return err
	}
	if ot != "" && ot != "Group" {
		return fmt.Errorf("Group: objectType %q: %w", ot, ErrInvalidValue)
	}
	proxy := Agent{}
	out := Group{}
	if s, err := obj.stringField("Group", "name"); err != nil {
		return err
	} else if s != nil {
		if err := proxy.SetName(*s); err != nil {
			return err
		}
	}
	if s, err := obj.stringField("Group", "mbox"); err != nil {
		return err
	} else if s != nil {
		if err := proxy.SetMbox(*s); err != nil {
			return err
		}
	}
	if s, err := obj.stringField("Group", "mbox_sha1sum"); err != nil {
		return err
	} else if s != nil {
		if err := proxy.SetMboxSHA1Sum(*s); err != nil {
			return err
		}
	}
	if s, err := obj.stringField("Group", "openid"); err != nil {
		return err
	} else if s != nil {
		if err := proxy.SetOpenID(*s); err != nil {
			return err
		}
	}
	if raw, ok := obj["account"]; ok {
		acct := &AgentAccount{}
		if err := acct.UnmarshalJSON(raw); err != nil {
			return err
		}
		proxy.Account = acct
	}
	out.Name, out.Mbox, out.MboxSHA1Sum, out.OpenID, out.Account = proxy.Name, proxy.Mbox, proxy.MboxSHA1Sum, proxy.OpenID, proxy.Account
	if raw, ok := obj["member"]; ok {
		if err := out.Members.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*g = out
	return nil
}

// MarshalJSON renders the group at the latest protocol version.
func (g *Group) MarshalJSON() ([]byte, error) {
	m, err := g.AsVersion(LatestVersion())
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}
