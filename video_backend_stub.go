//go:build headless

// video_backend_stub.go - Ebiten replacement for headless builds

package main

func init() {
	compiledFeatures = append(compiledFeatures, "video:headless")
}

func NewEbitenOutput() (VideoOutput, error) {
	return NewHeadlessVideoOutput(), nil
}
