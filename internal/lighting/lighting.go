// Package lighting selects between letting the author's shader determine
// all pixel output and substituting a reference-lit material for visual
// comparison, and owns the adjustable environment light.
package lighting

import (
	"github.com/chewxy/math32"

	"shader-preview/internal/material"
	"shader-preview/internal/program"
)

// Mode is the lighting policy for the session.
type Mode int

const (
	// ShaderDriven: the author's compiled program fully determines output
	// color. The scene carries only decorative lighting the program never
	// consumes. This is the default.
	ShaderDriven Mode = iota

	// ReferenceLit: a standard lit material, unrelated to author source, is
	// bound instead, under the adjustable environment light.
	ReferenceLit
)

func (m Mode) String() string {
	if m == ReferenceLit {
		return "reference-lit"
	}
	return "shader-driven"
}

// DefaultLightAngle is the initial environment light rotation, degrees
// around the vertical axis.
const DefaultLightAngle = float32(45)

// lightElevation is the fixed elevation of the environment light above the
// horizon, degrees. Only the rotation is user-adjustable.
const lightElevation = float32(40)

// Controller holds the current mode and environment light rotation.
type Controller struct {
	mode  Mode
	angle float32 // degrees around Y
}

// NewController returns a controller in ShaderDriven mode with the default
// light angle.
func NewController() *Controller {
	return &Controller{mode: ShaderDriven, angle: DefaultLightAngle}
}

// Mode returns the current lighting mode.
func (c *Controller) Mode() Mode { return c.mode }

// SetMode switches the lighting mode. Returns true when the mode changed.
func (c *Controller) SetMode(m Mode) bool {
	if c.mode == m {
		return false
	}
	c.mode = m
	return true
}

// Toggle flips between the two modes and returns the new one.
func (c *Controller) Toggle() Mode {
	if c.mode == ShaderDriven {
		c.mode = ReferenceLit
	} else {
		c.mode = ShaderDriven
	}
	return c.mode
}

// LightAngle returns the environment light rotation in degrees.
func (c *Controller) LightAngle() float32 { return c.angle }

// SetLightAngle sets the environment light rotation in degrees, wrapped to
// [0, 360).
func (c *Controller) SetLightAngle(deg float32) {
	c.angle = math32.Mod(deg, 360)
	if c.angle < 0 {
		c.angle += 360
	}
}

// LightDirection returns the normalized direction from the scene toward the
// environment light, derived from the rotation angle and fixed elevation.
func (c *Controller) LightDirection() [3]float32 {
	az := c.angle * math32.Pi / 180
	el := lightElevation * math32.Pi / 180
	cosEl := math32.Cos(el)
	return [3]float32{
		math32.Cos(az) * cosEl,
		math32.Sin(el),
		math32.Sin(az) * cosEl,
	}
}

// ReferenceSource is the standard lit program bound in ReferenceLit mode:
// one directional light plus ambient and a Blinn-Phong specular term.
func ReferenceSource() program.Source {
	return program.Source{VertexText: program.DefaultVertex, FragmentText: referenceFS}
}

// ReferenceUniforms returns the uniform values the reference program needs
// for the controller's current light, merged over the session's base set.
func (c *Controller) ReferenceUniforms(viewPos [3]float32) map[string]material.Value {
	dir := c.LightDirection()
	return map[string]material.Value{
		"lightDir":   material.Vec3(dir[0], dir[1], dir[2]),
		"viewPos":    material.Vec3(viewPos[0], viewPos[1], viewPos[2]),
		"ambient":    material.Vec4(0.2, 0.22, 0.26, 1.0),
		"lightColor": material.Vec3(1.0, 0.98, 0.95),
		"baseColor":  material.Vec4(0.62, 0.64, 0.68, 1.0),
	}
}

const referenceFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform vec4 baseColor;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = baseColor.rgb * NdotL * lightColor;
  vec3 amb = ambient.rgb * baseColor.rgb;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), 48.0) * 0.35;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, baseColor.a);
}
`
