// Package shaders holds the GLSL sources for the triangle pipeline. The
// compiled SPIR-V is loaded from this directory at startup.
package shaders

//go:generate glslc triangle.vert -o vert.spv
//go:generate glslc triangle.frag -o frag.spv
