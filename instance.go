package engine2d

// Instance is the per-sprite record handed to the rendering boundary each
// frame. All values are in world space.
type Instance struct {
	Position [2]float32
	Size     [2]float32
	UVMin    [2]float32
	UVMax    [2]float32
	Rotation float32
	Color    [4]float32
}

// InstanceSink receives the full instance set once per frame. Each upload
// replaces the previous one; it is never a diff. The slice is only valid for
// the duration of the call.
type InstanceSink interface {
	UploadInstances(instances []Instance)
}

// NewInstance projects a resolved world transform and sprite into a record.
// The drawn size is the sprite size multiplied by the world scale.
func NewInstance(world Transform, sprite *Sprite, atlas Atlas) Instance {
	uvMin, uvMax := atlas.UV(sprite.TileIndex)
	return Instance{
		Position: world.Position.array32(),
		Size:     sprite.Size.Mul(world.Scale).array32(),
		UVMin:    uvMin.array32(),
		UVMax:    uvMax.array32(),
		Rotation: float32(world.Rotation),
		Color:    sprite.Color.array32(),
	}
}

// AppendInstances resolves world transforms and appends one record per live
// sprite, in ascending handle order, to dst[:0]. Callers reuse dst across
// frames to avoid reallocating.
func AppendInstances(dst []Instance, w *World, atlas Atlas) []Instance {
	dst = dst[:0]
	w.EachSprite(func(_ Entity, world Transform, sprite *Sprite) {
		dst = append(dst, NewInstance(world, sprite, atlas))
	})
	return dst
}
