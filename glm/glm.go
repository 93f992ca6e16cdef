/*
Package glm is a 32 bit math package for the GPU-facing half of the renderer:
the matrix stack, symbol transforms and vertex packing all live in float32
space so that uploaded buffers match the GPU's native format one-to-one.

Geographic and projected-meter math, where double precision round-trip
accuracy matters, lives in package geom instead. glm is deliberately the
"last mile": values already projected are cast down to float32 here.

The name and split follow github.com/soypat/glgl/math/ms3, trimmed to the
subset an orthographic 2D chart renderer actually exercises: no quaternions,
no SVD, no iterative solvers.
*/
package glm

import (
	math "github.com/chewxy/math32"
)

// Vec is a 3D vector of float32 components.
type Vec struct {
	X, Y, Z float32
}

// Vec2 is a 2D vector of float32 components, used for window/texture space.
type Vec2 struct {
	X, Y float32
}

func Add(a, b Vec) Vec   { return Vec{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func Sub(a, b Vec) Vec   { return Vec{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func Scale(k float32, a Vec) Vec { return Vec{k * a.X, k * a.Y, k * a.Z} }

func Norm(a Vec) float32 { return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z) }

func Unit(a Vec) Vec {
	n := Norm(a)
	if n == 0 {
		return Vec{}
	}
	return Scale(1/n, a)
}

func Dot(a, b Vec) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func Cross(a, b Vec) Vec {
	return Vec{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Array returns the vector's components as [x,y,z].
func (v Vec) Array() [3]float32 { return [3]float32{v.X, v.Y, v.Z} }
