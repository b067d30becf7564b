package fraktaly

// Renderer produces escape grids. *Generator is the in-process
// implementation; the server and clients accept any Renderer.
type Renderer interface {
	Generate(p Params) (*Grid, error)
}
