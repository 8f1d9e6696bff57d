package memmap

import "fmt"

// ViolationKind distinguishes the two structural invariants a tree can break.
type ViolationKind string

const (
	// ViolationContainment means a child range extends outside its parent.
	ViolationContainment ViolationKind = "containment"

	// ViolationOverlap means two adjacent siblings overlap. Touching ranges
	// (a.End == b.Start) are allowed.
	ViolationOverlap ViolationKind = "overlap"
)

// Violation describes one broken invariant found during validation.
type Violation struct {
	Kind ViolationKind

	// Path is the slash-joined name path of the offending parent,
	// starting at "root".
	Path string

	// Child and Sibling name the implicated children. Sibling is empty for
	// containment violations.
	Child   string
	Sibling string

	// Message is the human-readable description with hex-formatted ranges.
	Message string
}

func (v Violation) String() string { return v.Message }

// Validate checks the containment and non-overlap invariants over the whole
// tree and returns every violation found, not just the first. An empty result
// means the tree is valid. Rendering must not proceed on a non-empty result.
func Validate(root *Node) []Violation {
	return validate(root, "root")
}

func validate(n *Node, path string) []Violation {
	var out []Violation
	kids := n.Children

	for _, c := range kids {
		if c.Start < n.Start || c.End() > n.End() {
			out = append(out, Violation{
				Kind:  ViolationContainment,
				Path:  path + "/" + n.Name,
				Child: c.Name,
				Message: fmt.Sprintf("%s/%s: child %q [%#x..%#x] outside parent [%#x..%#x]",
					path, n.Name, c.Name, c.Start, c.End(), n.Start, n.End()),
			})
		}
		out = append(out, validate(c, path+"/"+n.Name)...)
	}

	for i := 0; i+1 < len(kids); i++ {
		a, b := kids[i], kids[i+1]
		if a.End() > b.Start {
			out = append(out, Violation{
				Kind:    ViolationOverlap,
				Path:    path + "/" + n.Name,
				Child:   a.Name,
				Sibling: b.Name,
				Message: fmt.Sprintf("%s/%s: overlap between %q [%#x..%#x] and %q [%#x..%#x]",
					path, n.Name, a.Name, a.Start, a.End(), b.Name, b.Start, b.End()),
			})
		}
	}

	return out
}
