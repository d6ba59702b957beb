// Package gfx is a small, predictable software 3D renderer for the travel globe.
//
// It is intended for one kind of scene: a textured sphere, a few translucent
// shells, small marker meshes, polylines and a point starfield. It is not a game
// engine and does not provide a GPU abstraction.
//
// Pipeline (fixed):
//
//	Frame → Transform → Projection → Culling → Rasterization → Target.
//
// The renderer draws into a caller-provided Target. Geometry is built once per
// geometry key and held in Resources until the owner disposes it.
package gfx
