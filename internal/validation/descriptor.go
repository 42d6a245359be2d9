package validation

// Kind is the wire type a field must decode to.
type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"
	KindUUID   Kind = "uuid"
	KindDate   Kind = "date"
	KindList   Kind = "list"
)

// Field is one declarative rule of an entity descriptor.
type Field struct {
	Name     string
	Kind     Kind
	Required bool

	// Enum restricts a string field to a closed set of values.
	Enum []string

	// Min and Max bound numeric fields inclusively.
	Min *float64
	Max *float64

	// MinLen is the minimum element count of a list field.
	MinLen int

	// Elem describes each element of a list field.
	Elem *Descriptor

	// Ref names the entity a uuid field points at. Format is checked here;
	// existence inside the tenant is the normalization layer's job.
	Ref string

	// ServerManaged fields are set by the service layer and rejected when
	// present in caller input (soft-delete flags, tenant scope).
	ServerManaged bool
}

// Descriptor declares the request shape of one entity. The same descriptor
// drives the create variant (Validate) and the update variant
// (ValidatePartial).
type Descriptor struct {
	Entity string
	Fields []Field
}

// Registry holds every entity descriptor. It is built once at startup and
// passed to the handlers; nothing self-registers through package state.
type Registry struct {
	descriptors map[string]Descriptor
}

func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[string]Descriptor)}
}

func (r *Registry) Register(d Descriptor) {
	r.descriptors[d.Entity] = d
}

func (r *Registry) Get(entity string) (Descriptor, bool) {
	d, ok := r.descriptors[entity]
	return d, ok
}

func bound(v float64) *float64 { return &v }
