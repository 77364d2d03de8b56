package catalog

// Kind tags the variant held by a Record.
type Kind int

const (
	KindOpaque Kind = iota
	KindObject
	KindConstellation
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindConstellation:
		return "constellation"
	default:
		return "opaque"
	}
}

// Record is one entry flowing from the loaders through selection to the
// encoder. Exactly one of Object, Constellation or Value is meaningful,
// as indicated by Kind.
type Record struct {
	Kind          Kind
	Object        *CelestialObject
	Constellation *Constellation
	Value         any // passed through unchanged by encoders
}

// ObjectRecord wraps a celestial object.
func ObjectRecord(o *CelestialObject) Record {
	return Record{Kind: KindObject, Object: o}
}

// ConstellationRecord wraps a constellation.
func ConstellationRecord(c *Constellation) Record {
	return Record{Kind: KindConstellation, Constellation: c}
}

// OpaqueRecord wraps any other JSON-marshalable value.
func OpaqueRecord(v any) Record {
	return Record{Kind: KindOpaque, Value: v}
}

// ID returns the object id or constellation abbreviation.
func (r Record) ID() string {
	switch r.Kind {
	case KindObject:
		return r.Object.ID
	case KindConstellation:
		return r.Constellation.Abbr
	default:
		return ""
	}
}
