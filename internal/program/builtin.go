package program

// Built-in GLSL 330 programs. Author fragment programs receive the same
// varyings (fragPosition, fragTexCoord, fragNormal) and the uniform contract
// (elapsedTime, viewportResolution) established by DefaultVertex.
const (
	// DefaultVertex transforms raylib vertex attributes and forwards the
	// varyings author fragment programs are written against. Used whenever a
	// Source has empty vertex text.
	DefaultVertex = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`

	// EmptyFallbackFragment is bound when author source is trivially empty.
	// Flat neutral gray: shows the surface exists while clearly rendering
	// "nothing written yet". Must stay visually distinct from
	// FaultFallbackFragment so authors can tell empty from broken.
	EmptyFallbackFragment = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
out vec4 finalColor;
void main() {
  finalColor = vec4(0.52, 0.54, 0.58, 1.0);
}
`

	// FaultFallbackFragment is bound by the fault boundary after a compile or
	// render failure: magenta with black diagonal stripes, the conventional
	// "shader broken" look.
	FaultFallbackFragment = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
out vec4 finalColor;
void main() {
  float band = mod(floor((fragTexCoord.x + fragTexCoord.y) * 12.0), 2.0);
  finalColor = mix(vec4(1.0, 0.0, 1.0, 1.0), vec4(0.0, 0.0, 0.0, 1.0), band);
}
`
)

// EmptyFallback is the full program substituted for trivially empty input.
func EmptyFallback() Source {
	return Source{VertexText: DefaultVertex, FragmentText: EmptyFallbackFragment}
}

// FaultFallback is the full program rendered while the fault boundary is
// tripped.
func FaultFallback() Source {
	return Source{VertexText: DefaultVertex, FragmentText: FaultFallbackFragment}
}
