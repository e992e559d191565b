package draft

// DefaultLayerName is the name of the layer that always exists in a
// drawing. Entities created without an explicit layer land here.
const DefaultLayerName = "0"

// Layer groups entities for visibility, locking, and draw ordering.
// Entities reference layers by name; the kernel does not enforce
// referential integrity when a layer is removed.
type Layer struct {
	ID          string
	Name        string
	Color       string
	Visible     bool
	Locked      bool
	Order       int
	Description string
}

// DefaultLayer returns the always-present layer "0".
func DefaultLayer() Layer {
	return Layer{
		ID:      DefaultLayerName,
		Name:    DefaultLayerName,
		Color:   "#000000",
		Visible: true,
	}
}

// Document is an in-memory drawing: an id-keyed entity map plus the layer
// list. It is the unit the codecs consume and produce. The zero value is
// not usable; construct with NewDocument.
type Document struct {
	Entities map[string]Entity
	Layers   []Layer
}

// NewDocument creates an empty document containing only the default layer.
func NewDocument() *Document {
	return &Document{
		Entities: make(map[string]Entity),
		Layers:   []Layer{DefaultLayer()},
	}
}

// Add inserts an entity keyed by its identifier.
func (d *Document) Add(e Entity) {
	d.Entities[e.Base().ID] = e
}

// LayerByName returns the named layer.
func (d *Document) LayerByName(name string) (Layer, bool) {
	for _, l := range d.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}

// EntitiesOnLayer returns all entities whose layer name matches.
func (d *Document) EntitiesOnLayer(name string) []Entity {
	var out []Entity
	for _, e := range d.Entities {
		if e.Base().Layer == name {
			out = append(out, e)
		}
	}
	return out
}
