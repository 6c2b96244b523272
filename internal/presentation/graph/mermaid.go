package graph

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/danilucaci/stylemap/pkg/tokens"
)

var aliasRe = regexp.MustCompile(`\{([A-Za-z0-9_$-]+(?:[./][A-Za-z0-9_$-]+)*)\}`)

// GenerateMermaid produces a Mermaid flowchart syntax string from a token
// sheet. It applies semantic styling:
// - Sheet root: ((Circle))
// - Group (nested mapping): [Rectangle]
// - Token (leaf): (Rounded)
// Alias references are rendered as dotted arrows between tokens.
func GenerateMermaid(sheet string, doc tokens.Mapping) string {
	rootID := sanitizeMermaidID(sheet)

	type node struct {
		id     string
		label  string
		parent string
		leaf   bool
	}
	nodes := make(map[string]node)
	var order []string

	declare := func(n node) {
		if _, seen := nodes[n.id]; !seen {
			nodes[n.id] = n
			order = append(order, n.id)
		}
	}

	type aliasEdge struct{ from, to string }
	var edges []aliasEdge

	tokens.Walk(doc, func(path tokens.KeyPath, value any) {
		// Groups are not visited by Walk (it only yields leaves), so
		// derive them from the leaf path prefixes.
		parent := rootID
		for i := 1; i < len(path); i++ {
			prefix := path[:i]
			id := sanitizeMermaidID(prefix.String())
			declare(node{id: id, label: prefix[len(prefix)-1], parent: parent})
			parent = id
		}

		id := sanitizeMermaidID(path.String())
		declare(node{id: id, label: path[len(path)-1], parent: parent, leaf: true})

		if s, ok := value.(string); ok {
			for _, m := range aliasRe.FindAllStringSubmatch(s, -1) {
				edges = append(edges, aliasEdge{from: id, to: sanitizeMermaidID(m[1])})
			}
		}
	})
	sort.Strings(order)

	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", rootID, sheet))

	for _, id := range order {
		n := nodes[id]
		opener, closer := "[", "]"
		if n.leaf {
			opener, closer = "(", ")"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", n.id, opener, n.label, closer))
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", n.parent, n.id))
	}

	for _, e := range edges {
		// Dotted line marks an alias reference
		sb.WriteString(fmt.Sprintf("    %s -. ref .-> %s\n", e.from, e.to))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "$", "_")
	return s
}
