package engine2d

// Sprite holds the visual attributes of a renderable entity.
type Sprite struct {
	// Size is the unscaled width and height in world units.
	Size Vec2
	// TileIndex selects the atlas tile. It wraps modulo the atlas tile count.
	TileIndex uint32
	Color     Color
	// Spin is applied to the entity's local rotation every fixed step, in
	// radians per second.
	Spin float64
	// Animation, when set, drives TileIndex. The World takes its own copy on
	// spawn; it is never shared between sprites.
	Animation *Animation
}

// NewSprite returns a white sprite of the given size showing tile.
func NewSprite(size Vec2, tile uint32) Sprite {
	return Sprite{Size: size, TileIndex: tile, Color: ColorWhite}
}
