package starfield

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gekko3d/starfield/rt/core"
	"github.com/gekko3d/starfield/rt/shaders"
	"github.com/google/uuid"
)

type AssetId string

type ShaderAsset struct {
	Name    string
	Listing string
}

type AssetServer struct {
	meshes  map[AssetId]*core.Mesh
	shaders map[AssetId]ShaderAsset
}

func NewAssetServer() *AssetServer {
	return &AssetServer{
		meshes:  make(map[AssetId]*core.Mesh),
		shaders: make(map[AssetId]ShaderAsset),
	}
}

func (server *AssetServer) LoadMesh(mesh *core.Mesh) AssetId {
	id := makeAssetId()
	server.meshes[id] = mesh
	return id
}

func (server *AssetServer) LoadShader(name, listing string) AssetId {
	id := makeAssetId()
	server.shaders[id] = ShaderAsset{Name: name, Listing: listing}
	return id
}

func (server *AssetServer) LoadShaderFile(filename string) (AssetId, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("load shader: %w", err)
	}
	return server.LoadShader(filepath.Base(filename), string(data)), nil
}

func (server *AssetServer) Mesh(id AssetId) (*core.Mesh, bool) {
	m, ok := server.meshes[id]
	return m, ok
}

func (server *AssetServer) Shader(id AssetId) (ShaderAsset, bool) {
	s, ok := server.shaders[id]
	return s, ok
}

// StarAssets names the assets the renderer draws with.
type StarAssets struct {
	Cube       AssetId
	StarShader AssetId
	TextShader AssetId
}

// AssetServerModule registers the cube mesh and the shaders. StarShaderFile,
// when set, replaces the embedded star shader.
type AssetServerModule struct {
	StarShaderFile string
}

func (m AssetServerModule) Install(app *App, cmd *Commands) {
	server := NewAssetServer()
	assets := &StarAssets{
		Cube:       server.LoadMesh(core.NewCube()),
		StarShader: server.LoadShader("star.wgsl", shaders.StarWGSL),
		TextShader: server.LoadShader("text.wgsl", shaders.TextWGSL),
	}

	if m.StarShaderFile != "" {
		id, err := server.LoadShaderFile(m.StarShaderFile)
		if err != nil {
			panic(fmt.Sprintf("star shader override: %v", err))
		}
		assets.StarShader = id
		cmd.Logger().Infof("using star shader %s", m.StarShaderFile)
	}

	cmd.AddResources(server, assets)
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
