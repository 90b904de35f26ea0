package assemble

import (
	"fmt"
	"strings"
)

// Binding maps token names to values. Supported value kinds:
//
//	string    scalar, HTML-escaped on substitution
//	Raw       scalar, substituted verbatim (pre-sanitized markup)
//	bool      conditional block: rendered once iff true
//	[]Binding repeated block: instantiated once per item, in order;
//	          an empty list renders nothing at all
type Binding map[string]any

// Raw marks a string as already-rendered markup that must not be escaped.
type Raw string

// Assemble substitutes every token in the template from the bindings.
// It is referentially transparent: identical inputs yield byte-identical
// output. Any token without a binding aborts with MissingBindingError and
// no partial output.
func Assemble(template string, b Binding) (string, error) {
	nodes, err := parse(template)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.Grow(len(template))
	if err := render(&out, nodes, []Binding{b}); err != nil {
		return "", err
	}
	return out.String(), nil
}

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

type node any

type textNode string

type tokenNode string

type sectionNode struct {
	name     string
	children []node
}

// parse splits the template into literal text, {{token}} scalars, and
// {{#name}}...{{/name}} sections.
func parse(template string) ([]node, error) {
	nodes, rest, err := parseUntil(template, "")
	if err != nil {
		return nil, err
	}
	if rest != "" {
		// parseUntil only leaves input behind when it stops at a closer.
		return nil, &TemplateError{Message: "unexpected section close"}
	}
	return nodes, nil
}

// parseUntil consumes nodes until the end of input or the close tag of the
// named section. It returns the remaining input after the close tag.
func parseUntil(s, section string) ([]node, string, error) {
	var nodes []node
	for {
		start := strings.Index(s, openDelim)
		if start < 0 {
			if section != "" {
				return nil, "", &TemplateError{Message: fmt.Sprintf("unclosed section %q", section)}
			}
			if s != "" {
				nodes = append(nodes, textNode(s))
			}
			return nodes, "", nil
		}

		if start > 0 {
			nodes = append(nodes, textNode(s[:start]))
		}
		s = s[start+len(openDelim):]

		end := strings.Index(s, closeDelim)
		if end < 0 {
			return nil, "", &TemplateError{Message: "unterminated token"}
		}
		tag := strings.TrimSpace(s[:end])
		s = s[end+len(closeDelim):]

		switch {
		case tag == "":
			return nil, "", &TemplateError{Message: "empty token"}

		case strings.HasPrefix(tag, "#"):
			name := strings.TrimSpace(tag[1:])
			children, rest, err := parseUntil(s, name)
			if err != nil {
				return nil, "", err
			}
			nodes = append(nodes, sectionNode{name: name, children: children})
			s = rest

		case strings.HasPrefix(tag, "/"):
			name := strings.TrimSpace(tag[1:])
			if section == "" {
				return nil, "", &TemplateError{Message: fmt.Sprintf("close of unopened section %q", name)}
			}
			if name != section {
				return nil, "", &TemplateError{
					Message: fmt.Sprintf("section %q closed by %q", section, name),
				}
			}
			return nodes, s, nil

		default:
			nodes = append(nodes, tokenNode(tag))
		}
	}
}

// render walks the node list against a binding stack: lookups try the
// innermost block's bindings first, then enclosing scopes.
func render(out *strings.Builder, nodes []node, stack []Binding) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case textNode:
			out.WriteString(string(n))

		case tokenNode:
			value, ok := lookup(stack, string(n))
			if !ok {
				return &MissingBindingError{Token: string(n)}
			}
			switch v := value.(type) {
			case string:
				out.WriteString(EscapeHTML(v))
			case Raw:
				out.WriteString(string(v))
			default:
				return &TemplateError{
					Message: fmt.Sprintf("token %q is bound to %T, want a scalar", string(n), value),
				}
			}

		case sectionNode:
			value, ok := lookup(stack, n.name)
			if !ok {
				return &MissingBindingError{Token: n.name}
			}
			switch v := value.(type) {
			case bool:
				if v {
					if err := render(out, n.children, stack); err != nil {
						return err
					}
				}
			case []Binding:
				for _, item := range v {
					if err := render(out, n.children, append(stack, item)); err != nil {
						return err
					}
				}
			default:
				return &TemplateError{
					Message: fmt.Sprintf("section %q is bound to %T, want bool or []Binding", n.name, value),
				}
			}
		}
	}
	return nil
}

func lookup(stack []Binding, name string) (any, bool) {
	for i := len(stack) - 1; i >= 0; i-- {
		if value, ok := stack[i][name]; ok {
			return value, true
		}
	}
	return nil, false
}
