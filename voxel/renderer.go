package voxel

// Renderer is the engine side of the world: it materializes unit cubes and
// hands back handles the World owns until it destroys them.
type Renderer interface {
	// CreateCube creates a unit cube at pos tagged with key.
	CreateCube(pos Coord, c Color, key string) (Handle, error)
	Destroy(h Handle) error
	// FindByKey returns every live object tagged with key.
	FindByKey(key string) []Handle
	Color(h Handle) (Color, bool)
	Pos(h Handle) (Coord, bool)
}
