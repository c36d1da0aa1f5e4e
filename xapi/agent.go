package xapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AgentAccount identifies an Agent by an account on some system. Both fields
// are required when the account is present.
type AgentAccount struct {
	Name     string
	HomePage string
}

// NewAgentAccount builds a validated account.
func NewAgentAccount(name, homePage string) (*AgentAccount, error) {
	a := &AgentAccount{Name: name, HomePage: homePage}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks both fields are non-empty.
func (a *AgentAccount) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("account name must not be empty: %w", ErrInvalidValue)
	}
	if a.HomePage == "" {
		return fmt.Errorf("account homePage must not be empty: %w", ErrInvalidValue)
	}
	return nil
}

// AsVersion projects the account to its wire form.
func (a *AgentAccount) AsVersion(v Version) (map[string]any, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return map[string]any{"name": a.Name, "homePage": a.HomePage}, nil
}

// UnmarshalJSON decodes an account, rejecting unknown keys.
func (a *AgentAccount) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "AgentAccount")
	if err != nil {
		return err
	}
	if err := obj.checkKeys("AgentAccount", "name", "homePage"); err != nil {
		return err
	}
	name, err := obj.stringField("AgentAccount", "name")
	if err != nil {
		return err
	}
	home, err := obj.stringField("AgentAccount", "homePage")
	if err != nil {
		return err
	}
	out := AgentAccount{}
	if name != nil {
		out.Name = *name
	}
	if home != nil {
		out.HomePage = *home
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*a = out
	return nil
}

// MarshalJSON renders the account at the latest protocol version.
func (a *AgentAccount) MarshalJSON() ([]byte, error) {
	m, err := a.AsVersion(LatestVersion())
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// Agent identifies a person by exactly one inverse-functional identifier:
// mbox, mbox_sha1sum, openid or account. The wire objectType is always
// "Agent" and cannot be overridden.
type Agent struct {
	Name        *string
	Mbox        *string
	MboxSHA1Sum *string
	OpenID      *string
	Account     *AgentAccount
}

// NewAgentWithMbox builds an Agent from a mail address, prefixing mailto:
// when missing.
func NewAgentWithMbox(mbox string) (*Agent, error) {
	a := &Agent{}
	if err := a.SetMbox(mbox); err != nil {
		return nil, err
	}
	return a, nil
}

// NewAgentWithAccount builds an Agent identified by an account.
func NewAgentWithAccount(name, homePage string) (*Agent, error) {
	acct, err := NewAgentAccount(name, homePage)
	if err != nil {
		return nil, err
	}
	return &Agent{Account: acct}, nil
}

func (a *Agent) isActor() {}

// ObjectType returns the fixed discriminator "Agent".
func (a *Agent) ObjectType() string { return "Agent" }

// SetName rejects the empty string.
func (a *Agent) SetName(name string) error {
	if name == "" {
		return fmt.Errorf("agent name must not be empty: %w", ErrInvalidValue)
	}
	a.Name = &name
	return nil
}

// SetMbox stores the mail IFI, prefixing mailto: when missing.
func (a *Agent) SetMbox(mbox string) error {
	if mbox == "" {
		return fmt.Errorf("agent mbox must not be empty: %w", ErrInvalidValue)
	}
	if !strings.HasPrefix(mbox, "mailto:") {
		mbox = "mailto:" + mbox
	}
	a.Mbox = &mbox
	return nil
}

// SetMboxSHA1Sum stores the hashed mail IFI.
func (a *Agent) SetMboxSHA1Sum(sum string) error {
	if sum == "" {
		return fmt.Errorf("agent mbox_sha1sum must not be empty: %w", ErrInvalidValue)
	}
	a.MboxSHA1Sum = &sum
	return nil
}

// SetOpenID stores the OpenID IFI.
func (a *Agent) SetOpenID(id string) error {
	if id == "" {
		return fmt.Errorf("agent openid must not be empty: %w", ErrInvalidValue)
	}
	a.OpenID = &id
	return nil
}

// Validate rejects empty IFI values and a malformed account.
func (a *Agent) Validate() error {
	if a.Name != nil && *a.Name == "" {
		return fmt.Errorf("agent name must not be empty: %w", ErrInvalidValue)
	}
	if a.Mbox != nil && *a.Mbox == "" {
		return fmt.Errorf("agent mbox must not be empty: %w", ErrInvalidValue)
	}
	if a.MboxSHA1Sum != nil && *a.MboxSHA1Sum == "" {
		return fmt.Errorf("agent mbox_sha1sum must not be empty: %w", ErrInvalidValue)
	}
	if a.OpenID != nil && *a.OpenID == "" {
		return fmt.Errorf("agent openid must not be empty: %w", ErrInvalidValue)
	}
	if a.Account != nil {
		if err := a.Account.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AsVersion projects the agent to its wire form. The objectType
// discriminator is always emitted.
func (a *Agent) AsVersion(v Version) (map[string]any, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	out := map[string]any{"objectType": a.ObjectType()}
	if a.Name != nil {
		out["name"] = *a.Name
	}
	if a.Mbox != nil {
		out["mbox"] = *a.Mbox
	}
	if a.MboxSHA1Sum != nil {
		out["mbox_sha1sum"] = *a.MboxSHA1Sum
	}
	if a.OpenID != nil {
		out["openid"] = *a.OpenID
	}
	if a.Account != nil {
		acct, err := a.Account.AsVersion(v)
		if err != nil {
			return nil, err
		}
		out["account"] = acct
	}
	return out, nil
}

// UnmarshalJSON decodes an agent, rejecting unknown keys and re-running the
// setter constraints (mailto: prefix included).
func (a *Agent) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data, "Agent")
	if err != nil {
		return err
	}
	if err := obj.checkKeys("Agent", "objectType", "object_type", "name", "mbox", "mbox_sha1sum", "openid", "account"); err != nil {
		return err
	}
	ot, err := obj.objectType("Agent")
	if err != nil {
		return err
	}
	if ot != "" && ot != "Agent" {
		return fmt.Errorf("Agent: objectType %q: %w", ot, ErrInvalidValue)
	}
	out := Agent{}
	if s, err := obj.stringField("Agent", "name"); err != nil {
		return err
	} else if s != nil {
		if err := out.SetName(*s); err != nil {
			return err
		}
	}
	if s, err := obj.stringField("Agent", "mbox"); err != nil {
		return err
	} else if s != nil {
		if err := out.SetMbox(*s); err != nil {
			return err
		}
	}
	if s, err := obj.stringField("Agent", "mbox_sha1sum"); err != nil {
		return err
	} else if s != nil {
		if err := out.SetMboxSHA1Sum(*s); err != nil {
			return err
		}
	}
	if s, err := obj.stringField("Agent", "openid"); err != nil {
		return err
	} else if s != nil {
		if err := out.SetOpenID(*s); err != nil {
			return err
		}
	}
	if raw, ok := obj["account"]; ok {
		acct := &AgentAccount{}
		if err := acct.UnmarshalJSON(raw); err != nil {
			return err
		}
		out.Account = acct
	}
	*a = out
	return nil
}

// MarshalJSON renders the agent at the latest protocol version.
func (a *Agent) MarshalJSON() ([]byte, error) {
	m, err := a.AsVersion(LatestVersion())
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}
