package scene

const terrainVertexShader = `#version 410 core
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec4 aColor;

uniform mat4 uViewProj;

out vec3 vNormal;
out vec4 vColor;
out vec3 vWorld;

void main() {
    vNormal = aNormal;
    vColor = aColor;
    vWorld = aPosition;
    gl_Position = uViewProj * vec4(aPosition, 1.0);
}
`

const terrainFragmentShader = `#version 410 core
in vec3 vNormal;
in vec4 vColor;
in vec3 vWorld;

uniform vec3 uLightDir;
uniform float uAmbient;
uniform vec3 uHighlight;
uniform float uHighlightRadius;

out vec4 FragColor;

void main() {
    float diffuse = max(dot(normalize(vNormal), normalize(uLightDir)), 0.0);
    vec3 color = vColor.rgb * (uAmbient + (1.0 - uAmbient) * diffuse);

    // Ring around the selected cell.
    float d = distance(vWorld.xz, uHighlight.xz);
    if (uHighlightRadius > 0.0 && abs(d - uHighlightRadius) < 0.4) {
        color = mix(color, vec3(1.0, 0.9, 0.2), 0.8);
    }
    FragColor = vec4(color, 1.0);
}
`
