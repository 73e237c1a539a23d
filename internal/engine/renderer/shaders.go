package renderer

// litVertexShader is shared by the terrain, frame and water meshes. Color is
// a vec4; three-component vertex colors read alpha as 1.
const litVertexShader = `#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec4 aColor;

uniform mat4 uViewProj;
uniform mat4 uLightViewProj;

out vec3 vNormal;
out vec4 vColor;
out vec4 vLightSpace;

void main() {
    vNormal = aNormal;
    vColor = aColor;
    vLightSpace = uLightViewProj * vec4(aPosition, 1.0);
    gl_Position = uViewProj * vec4(aPosition, 1.0);
}
`

const litFragmentShader = `#version 410 core

in vec3 vNormal;
in vec4 vColor;
in vec4 vLightSpace;

uniform vec3 uLightDir;
uniform vec3 uLightColor;
uniform float uIntensity;
uniform float uAmbient;
uniform int uShadows;
uniform sampler2DShadow uShadowMap;

out vec4 FragColor;

float shadowFactor() {
    if (uShadows == 0) {
        return 1.0;
    }
    vec3 p = vLightSpace.xyz / vLightSpace.w * 0.5 + 0.5;
    if (p.z > 1.0) {
        return 1.0;
    }
    vec2 texel = 1.0 / vec2(textureSize(uShadowMap, 0));
    float lit = 0.0;
    for (int x = -1; x <= 1; x++) {
        for (int y = -1; y <= 1; y++) {
            lit += texture(uShadowMap, vec3(p.xy + vec2(x, y) * texel, p.z));
        }
    }
    return lit / 9.0;
}

void main() {
    vec3 n = normalize(vNormal);
    float diffuse = max(dot(n, normalize(uLightDir)), 0.0) * uIntensity;
    vec3 lit = vColor.rgb * uLightColor * (uAmbient + diffuse * shadowFactor());
    FragColor = vec4(clamp(lit, 0.0, 1.0), vColor.a);
}
`

// depthVertexShader reads only the position attribute, so the depth pass
// draws the same vertex buffers as the color pass.
const depthVertexShader = `#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uLightViewProj;

void main() {
    gl_Position = uLightViewProj * vec4(aPosition, 1.0);
}
`

const depthFragmentShader = `#version 410 core

void main() {
}
`
