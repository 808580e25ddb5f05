package compositor

// LayerID is a stable handle for a layer within its LayerTree. The
// zero value never identifies a live layer.
type LayerID uint32

// Layer is a node in the layer tree. The compositing geometry engine
// only reads two things from it: whether it carries a replica (a
// mirrored duplicate drawn through a second transform) and its
// identity; content ownership stays with the embedding system.
type Layer struct {
	id   LayerID
	name string
	tree *LayerTree

	replica bool
}

// ID returns the layer's handle.
func (l *Layer) ID() LayerID {
	return l.id
}

// Name returns the diagnostic name given at creation.
func (l *Layer) Name() string {
	return l.name
}

// HasReplica reports whether the layer owns a mirrored replica. A
// surface unions the replica-mapped content rect into its drawable
// content rect when this is true.
func (l *Layer) HasReplica() bool {
	return l.replica
}

// SetReplica sets or clears the layer's replica flag.
func (l *Layer) SetReplica(has bool) {
	l.replica = has
}

// Surface returns the layer's render surface, creating it on first
// use. The surface is owned by the tree and torn down with the layer.
func (l *Layer) Surface() *RenderSurface {
	return l.tree.surfaceFor(l.id)
}
