package game

import "fmt"

// Vec2 is a point or extent in the presentation layer's world space, with y
// pointing up.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v Vec2) Scaled(factor float64) Vec2 {
	return Vec2{X: v.X * factor, Y: v.Y * factor}
}

func (v Vec2) String() string {
	return fmt.Sprintf("Vec2(%g, %g)", v.X, v.Y)
}

// Bounds is an axis-aligned rectangle anchored at its lower left corner.
type Bounds struct {
	Position Vec2
	Size     Vec2
}

// Contains reports whether point lies in the half-open rectangle
// [Position, Position+Size).
func (bounds Bounds) Contains(point Vec2) bool {
	return point.X >= bounds.Position.X &&
		point.Y >= bounds.Position.Y &&
		point.X < bounds.Position.X+bounds.Size.X &&
		point.Y < bounds.Position.Y+bounds.Size.Y
}

// Geometry places a board in world space: Origin is the lower left corner of
// cell (0, 0) and every cell is a TileSize square. A cell's sprite is inset
// by TilePadding / 2 on every side.
type Geometry struct {
	Origin      Vec2
	TileSize    float64
	TilePadding float64
}

// CenteredGeometry centers a width x height board on the world origin,
// shifted by offset.
func CenteredGeometry(width, height uint16, tileSize float64, offset Vec2) Geometry {
	size := V(float64(width)*tileSize, float64(height)*tileSize)
	return Geometry{
		Origin:   size.Scaled(-0.5).Add(offset),
		TileSize: tileSize,
	}
}

// TileBounds is the sprite rectangle of the cell at coords.
func (geometry Geometry) TileBounds(coords Coordinates) Bounds {
	inset := geometry.TilePadding / 2
	corner := V(float64(coords.X)*geometry.TileSize, float64(coords.Y)*geometry.TileSize)
	return Bounds{
		Position: geometry.Origin.Add(corner).Add(V(inset, inset)),
		Size:     V(geometry.TileSize-geometry.TilePadding, geometry.TileSize-geometry.TilePadding),
	}
}

func (geometry Geometry) bounds(width, height uint16) Bounds {
	return Bounds{
		Position: geometry.Origin,
		Size:     V(float64(width)*geometry.TileSize, float64(height)*geometry.TileSize),
	}
}
