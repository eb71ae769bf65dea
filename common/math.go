package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DirectionFromAngles reconstructs a unit forward vector from yaw and pitch angles in degrees.
// Yaw rotates about the world Y axis (yaw = 0 points along +X, yaw = -90 along -Z),
// pitch tilts toward +Y.
//
// Parameters:
//   - yaw: horizontal angle in degrees
//   - pitch: vertical angle in degrees
//
// Returns:
//   - mgl32.Vec3: the normalized direction
func DirectionFromAngles(yaw, pitch float32) mgl32.Vec3 {
	yawRad := mgl32.DegToRad(yaw)
	pitchRad := mgl32.DegToRad(pitch)
	cosPitch := math32.Cos(pitchRad)

	dir := mgl32.Vec3{
		math32.Cos(yawRad) * cosPitch,
		math32.Sin(pitchRad),
		math32.Sin(yawRad) * cosPitch,
	}
	return dir.Normalize()
}
