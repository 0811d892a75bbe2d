package core

import (
	"fmt"
	"math"
)

// Vec3 represents a 3D vector. Points and colors share the same representation.
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{
		X: v.X * other.X,
		Y: v.Y * other.Y,
		Z: v.Z * other.Z,
	}
}

// Divide returns the vector divided by a scalar.
// Dividing by zero yields non-finite components.
func (v Vec3) Divide(scalar float64) Vec3 {
	return v.Multiply(1 / scalar)
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{
		X: -v.X,
		Y: -v.Y,
		Z: -v.Z,
	}
}

// Index returns the i-th component (0 = X, 1 = Y, 2 = Z)
func (v Vec3) Index(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic(fmt.Sprintf("core: Vec3 index %d out of range", i))
}

// Set assigns the i-th component in place
func (v *Vec3) Set(i int, value float64) *Vec3 {
	switch i {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	case 2:
		v.Z = value
	default:
		panic(fmt.Sprintf("core: Vec3 index %d out of range", i))
	}
	return v
}

// AddAssign adds other to v in place and returns v for chaining
func (v *Vec3) AddAssign(other Vec3) *Vec3 {
	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
	return v
}

// MultiplyAssign scales v in place and returns v for chaining
func (v *Vec3) MultiplyAssign(scalar float64) *Vec3 {
	v.X *= scalar
	v.Y *= scalar
	v.Z *= scalar
	return v
}

// DivideAssign divides v in place and returns v for chaining
func (v *Vec3) DivideAssign(scalar float64) *Vec3 {
	return v.MultiplyAssign(1 / scalar)
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// UnitVector returns v scaled to unit length.
// The caller must ensure v is non-zero; a zero vector produces NaN components.
func (v Vec3) UnitVector() Vec3 {
	return v.Divide(v.Length())
}

// Clamp returns a vector with components clamped to [min, max]
func (v Vec3) Clamp(minVal, maxVal float64) Vec3 {
	return Vec3{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

// String formats the vector as "x y z"
func (v Vec3) String() string {
	return fmt.Sprintf("%g %g %g", v.X, v.Y, v.Z)
}
