package main

// Vertices arrive in clip space; coverage is in the atlas alpha channel.

const vertexShaderSource = `#version 410 core
layout(location = 0) in vec2 inPos;
layout(location = 1) in vec2 inUV;
out vec2 vUV;
void main() {
    vUV = inUV;
    gl_Position = vec4(inPos, 0.0, 1.0);
}
` + "\x00"

const fragmentShaderSource = `#version 410 core
in vec2 vUV;
uniform sampler2D uAtlas;
uniform vec4 uColor;
out vec4 fragColor;
void main() {
    float a = texture(uAtlas, vUV).a;
    fragColor = vec4(uColor.rgb, uColor.a * a);
}
` + "\x00"
