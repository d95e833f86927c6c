package mesh

import "fmt"

// Kind is a built-in primitive shape. Each kind has fixed canonical
// dimensions and tessellation (see params.go); authors pick a kind, never
// its parameters.
type Kind int

const (
	Plane Kind = iota
	Box
	Sphere
	Torus
	Knot
	Cylinder
	Cone
	Icosahedron
	Octahedron
	Dodecahedron
	Tetrahedron
	Ring
	kindCount
)

var kindNames = [kindCount]string{
	"plane", "box", "sphere", "torus", "knot", "cylinder", "cone",
	"icosahedron", "octahedron", "dodecahedron", "tetrahedron", "ring",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the defined primitive kinds.
func (k Kind) Valid() bool { return k >= 0 && k < kindCount }

// Kinds returns all primitive kinds in declaration order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind resolves a kind by its lowercase name.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown primitive kind %q", name)
}

// Descriptor is the logical shape selection: either a primitive kind or a
// reference to an externally loaded model. It is a small value, compared and
// keyed by content.
type Descriptor struct {
	Kind     Kind
	ModelURL string // non-empty selects a custom model; Kind is ignored
}

// Primitive returns a descriptor selecting the given built-in kind.
func Primitive(k Kind) Descriptor { return Descriptor{Kind: k} }

// CustomModel returns a descriptor selecting the model at url.
func CustomModel(url string) Descriptor { return Descriptor{ModelURL: url} }

// IsCustom reports whether the descriptor references an external model.
func (d Descriptor) IsCustom() bool { return d.ModelURL != "" }

// Key returns a stable identity string, used for fault-reset keys and for
// matching load completions against the active selection.
func (d Descriptor) Key() string {
	if d.IsCustom() {
		return "model:" + d.ModelURL
	}
	return "primitive:" + d.Kind.String()
}
