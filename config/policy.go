package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// DefaultPolicyFile is picked up from the working directory when the config
// does not name a policy file explicitly.
const DefaultPolicyFile = "depaudit.hcl"

// Policy holds audit policy loaded from an optional HCL file:
//
//	audit {
//	  include_transitive = true
//	  show_up_to_date    = false
//	}
//
//	ignore {
//	  packages = ["com.unity.burst"]
//	  scopes   = ["com.unity.modules"]
//	}
type Policy struct {
	IgnoredPackages []string
	IgnoredScopes   []string

	IncludeTransitive bool
	ShowUpToDate      bool
}

// DefaultPolicy returns the policy used when no policy file exists.
func DefaultPolicy() *Policy {
	return &Policy{IncludeTransitive: true}
}

// Ignores reports whether the named package is excluded from lookups,
// either listed explicitly or covered by an ignored scope prefix.
func (p *Policy) Ignores(name string) bool {
	for _, ignored := range p.IgnoredPackages {
		if name == ignored {
			return true
		}
	}
	for _, scope := range p.IgnoredScopes {
		if name == scope || strings.HasPrefix(name, scope+".") {
			return true
		}
	}
	return false
}

// LoadPolicy parses an HCL policy file.
func LoadPolicy(path string) (*Policy, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse policy file %q: %w", path, diags)
	}

	content, _, partialDiags := file.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "audit"},
			{Type: "ignore"},
		},
	})
	if partialDiags.HasErrors() {
		return nil, fmt.Errorf("invalid policy file %q: %w", path, partialDiags)
	}

	policy := DefaultPolicy()
	for _, block := range content.Blocks {
		switch block.Type {
		case "audit":
			if err := decodeAuditBlock(block, policy); err != nil {
				return nil, err
			}
		case "ignore":
			if err := decodeIgnoreBlock(block, policy); err != nil {
				return nil, err
			}
		}
	}

	return policy, nil
}

func decodeAuditBlock(block *hcl.Block, policy *Policy) error {
	attrs, _ := block.Body.JustAttributes()

	if attr, ok := attrs["include_transitive"]; ok {
		val, err := boolValue(attr)
		if err != nil {
			return err
		}
		policy.IncludeTransitive = val
	}
	if attr, ok := attrs["show_up_to_date"]; ok {
		val, err := boolValue(attr)
		if err != nil {
			return err
		}
		policy.ShowUpToDate = val
	}
	return nil
}

func decodeIgnoreBlock(block *hcl.Block, policy *Policy) error {
	attrs, _ := block.Body.JustAttributes()

	if attr, ok := attrs["packages"]; ok {
		values, err := stringListValue(attr)
		if err != nil {
			return err
		}
		policy.IgnoredPackages = append(policy.IgnoredPackages, values...)
	}
	if attr, ok := attrs["scopes"]; ok {
		values, err := stringListValue(attr)
		if err != nil {
			return err
		}
		policy.IgnoredScopes = append(policy.IgnoredScopes, values...)
	}
	return nil
}

func boolValue(attr *hcl.Attribute) (bool, error) {
	val, diags := attr.Expr.Value(&hcl.EvalContext{})
	if diags.HasErrors() || val.Type() != cty.Bool {
		return false, fmt.Errorf("policy attribute %q must be a boolean", attr.Name)
	}
	return val.True(), nil
}

func stringListValue(attr *hcl.Attribute) ([]string, error) {
	val, diags := attr.Expr.Value(&hcl.EvalContext{})
	if diags.HasErrors() || !val.CanIterateElements() {
		return nil, fmt.Errorf("policy attribute %q must be a list of strings", attr.Name)
	}

	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, element := it.Element()
		if element.Type() != cty.String {
			return nil, fmt.Errorf("policy attribute %q must be a list of strings", attr.Name)
		}
		out = append(out, element.AsString())
	}
	return out, nil
}
