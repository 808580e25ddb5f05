package compositor

// LayerTree owns layers and their render surfaces. Surfaces hold only
// the owning layer's ID and look the layer up through the tree, so a
// surface can never outlive or control its layer: removing the layer
// removes the surface in the same step, and a stale surface handle
// degrades to replica-free queries instead of dangling.
//
// The tree is a single-writer structure; it does no locking and
// expects the embedding system to serialize mutation against reads at
// frame boundaries.
type LayerTree struct {
	nextID   LayerID
	layers   map[LayerID]*Layer
	surfaces map[LayerID]*RenderSurface
	order    []LayerID
}

// NewLayerTree returns an empty tree.
func NewLayerTree() *LayerTree {
	return &LayerTree{
		nextID:   1,
		layers:   make(map[LayerID]*Layer),
		surfaces: make(map[LayerID]*RenderSurface),
	}
}

// CreateLayer adds a layer and returns its handle.
func (t *LayerTree) CreateLayer(name string) LayerID {
	id := t.nextID
	t.nextID++

	t.layers[id] = &Layer{id: id, name: name, tree: t}
	t.order = append(t.order, id)
	return id
}

// Layer returns the layer for id, or false when it does not exist.
func (t *LayerTree) Layer(id LayerID) (*Layer, bool) {
	l, ok := t.layers[id]
	return l, ok
}

// RemoveLayer removes a layer and its surface. Removing an unknown id
// is a no-op.
func (t *LayerTree) RemoveLayer(id LayerID) {
	if _, ok := t.layers[id]; !ok {
		return
	}
	delete(t.layers, id)
	delete(t.surfaces, id)
	for i, ordered := range t.order {
		if ordered == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of live layers.
func (t *LayerTree) Len() int {
	return len(t.layers)
}

// Walk calls fn for each live layer in creation order.
func (t *LayerTree) Walk(fn func(*Layer)) {
	for _, id := range t.order {
		if l, ok := t.layers[id]; ok {
			fn(l)
		}
	}
}

// surfaceFor returns the surface for a live layer, creating it on
// demand with default draw state (opacity 1, zero transforms).
func (t *LayerTree) surfaceFor(id LayerID) *RenderSurface {
	if s, ok := t.surfaces[id]; ok {
		return s
	}
	if _, ok := t.layers[id]; !ok {
		return nil
	}

	s := &RenderSurface{
		owningLayer: id,
		tree:        t,
		drawOpacity: 1,
	}
	t.surfaces[id] = s
	return s
}
