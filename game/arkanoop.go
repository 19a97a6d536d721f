package game

import (
	"fmt"

	"github.com/spaghettifunk/arkanoop/engine"
	"github.com/spaghettifunk/arkanoop/engine/assets"
	"github.com/spaghettifunk/arkanoop/engine/containers"
	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/math"
	"github.com/spaghettifunk/arkanoop/engine/renderer"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

// batch collects the quads drawn with one texture.
type batch struct {
	vertices []metadata.Vertex
	indices  []uint32
}

type Arkanoop struct {
	*engine.Game

	config  Config
	sheets  map[string]*SpriteSheet
	world   *World
	hud     *HUD
	border  *metadata.Mesh
	alloc   *renderer.TextureIndexAllocator
	batches map[containers.Handle]*batch
	order   []containers.Handle
}

func NewArkanoop(appConfig *engine.ApplicationConfig, config Config) *Arkanoop {
	a := &Arkanoop{
		Game: &engine.Game{
			ApplicationConfig: appConfig,
		},
		config:  config,
		sheets:  make(map[string]*SpriteSheet),
		batches: make(map[containers.Handle]*batch),
	}

	a.FnInitialize = a.Initialize
	a.FnUpdate = a.Update
	a.FnRender = a.Render
	a.FnOnResize = a.OnResize
	a.FnAssetChanged = a.AssetChanged
	a.FnShutdown = a.Shutdown
	return a
}

func (a *Arkanoop) Initialize() error {
	for _, sc := range a.config.SpriteSheets {
		tex, err := a.Renderer.Texture(containers.Handle(sc.Texture))
		if err != nil {
			return fmt.Errorf("sprite sheet '%s': texture %d: %w", sc.Name, sc.Texture, err)
		}
		sheet, err := NewSpriteSheet(sc, tex.Width, tex.Height)
		if err != nil {
			return err
		}
		a.sheets[sc.Name] = sheet
	}

	world, err := NewWorld(a.config, a.sheets[a.config.BallSheet], a.sheets[a.config.BrickSheet], a.View)
	if err != nil {
		return err
	}
	paddleSheet, ok := a.sheets[a.config.Paddle.Sheet]
	if !ok {
		return fmt.Errorf("paddle sprite sheet '%s' is not declared", a.config.Paddle.Sheet)
	}
	world.Paddle.Texture = paddleSheet.Texture
	world.Paddle.UV = paddleSheet.Sprite(a.config.Paddle.Cell)
	a.world = world

	a.border, err = a.Renderer.CreateMesh(metadata.DrawModeLineStrip, borderArrays(a.View.ViewSize(), a.config.BorderColour), 2)
	if err != nil {
		return err
	}

	// Texture unit 0 belongs to the texture table.
	a.alloc = renderer.NewTextureIndexAllocator(renderer.MaxTextureIndex)
	a.alloc.Next()
	if a.config.HUD.Font != "" {
		if err := a.loadHUD(); err != nil {
			return err
		}
	}

	core.LogInfo("level ready: %d bricks, %d lives", len(world.Bricks), world.Lives)
	return nil
}

func (a *Arkanoop) loadHUD() error {
	hud, err := LoadHUD(a.Renderer, a.Assets, a.alloc, a.ApplicationConfig.AssetPath(a.config.HUD.Font), a.config.HUD)
	if err != nil {
		return err
	}
	if a.hud != nil {
		a.hud.Destroy()
	}
	a.hud = hud
	return nil
}

func (a *Arkanoop) Update(deltaTime float64) error {
	a.world.Update(float32(deltaTime), a.Input)
	return nil
}

func (a *Arkanoop) Render(deltaTime float64) error {
	r := a.Renderer
	view := a.View.ViewSize()
	projection := math.NewMat4Orthographic2D(view.X, view.Y)

	// A program can be missing while a broken shader is being edited.
	if err := r.SetUniform(containers.Handle(a.config.BorderShader), projection, "projection"); err == nil {
		r.DrawMesh(a.border)
	}

	sprite := containers.Handle(a.config.SpriteShader)
	if err := r.SetUniform(sprite, projection, "projection"); err != nil {
		return nil
	}
	if err := r.SetUniformInt(sprite, 0, "tex"); err != nil {
		return err
	}

	a.resetBatches()
	for _, b := range a.world.Bricks {
		if !b.Destroyed() {
			a.queue(&b.Sprite)
		}
	}
	a.queue(&a.world.Paddle.Sprite)
	a.queue(&a.world.Ball.Sprite)
	// A texture table cut short by a failed reload drops the batches it no
	// longer covers until the file loads again.
	for _, h := range a.order {
		if err := r.BindTexture(h, 0); err != nil {
			core.LogDebug("skipping sprites of texture %d: %s", h, err)
			continue
		}
		b := a.batches[h]
		r.DrawElements(metadata.DrawModeTriangles, b.vertices, b.indices)
	}
	r.UnbindTexture()

	if a.hud != nil {
		a.hud.Begin()
		a.hud.Text(fmt.Sprintf("SCORE %d", a.world.Score), math.NewVec2(8, 8))
		lives := fmt.Sprintf("LIVES %d", a.world.Lives)
		a.hud.Text(lives, math.NewVec2(view.X-8-TextWidth(a.hud.Font(), lives, a.hud.Scale), 8))
		if msg := stateMessage(a.world.State); msg != "" {
			a.hud.TextCentered(msg, view.X/2, view.Y/2+32)
		}
		if err := a.hud.Draw(r, sprite); err != nil {
			return err
		}
	}

	r.UnbindShader()
	return nil
}

func (a *Arkanoop) OnResize(width uint32, height uint32) error {
	core.LogDebug("framebuffer %dx%d, view stays %.0fx%.0f", width, height, a.View.ViewSize().X, a.View.ViewSize().Y)
	return nil
}

// AssetChanged reloads the HUD font. Textures and shaders are reloaded by the engine.
func (a *Arkanoop) AssetChanged(change assets.AssetChange) error {
	if a.hud == nil || change.Path != a.hud.Path {
		return nil
	}
	core.LogInfo("reloading hud font '%s'", change.Path)
	return a.loadHUD()
}

func (a *Arkanoop) Shutdown() error {
	if a.hud != nil {
		a.hud.Destroy()
		a.hud = nil
	}
	a.Renderer.DestroyMesh(a.border)
	a.border = nil
	return nil
}

func (a *Arkanoop) resetBatches() {
	for _, b := range a.batches {
		b.vertices = b.vertices[:0]
		b.indices = b.indices[:0]
	}
	a.order = a.order[:0]
}

func (a *Arkanoop) queue(s *Sprite) {
	b, ok := a.batches[s.Texture]
	if !ok {
		b = &batch{}
		a.batches[s.Texture] = b
	}
	if len(b.indices) == 0 {
		a.order = append(a.order, s.Texture)
	}
	b.vertices, b.indices = s.AppendQuad(b.vertices, b.indices)
}

func stateMessage(s PlayState) string {
	switch s {
	case PlayStatePaused:
		return "PAUSED"
	case PlayStateWon:
		return "YOU WIN! PRESS R"
	case PlayStateLost:
		return "GAME OVER, PRESS R"
	default:
		return ""
	}
}

// borderArrays outlines the view as a closed line strip: positions in the
// first stream, colours in the second.
func borderArrays(view math.Vec2, colour [4]float32) [][]math.Vec4 {
	corners := []math.Vec2{{X: 0.5, Y: 0.5}, {X: view.X - 0.5, Y: 0.5}, {X: view.X - 0.5, Y: view.Y - 0.5}, {X: 0.5, Y: view.Y - 0.5}, {X: 0.5, Y: 0.5}}
	positions := make([]math.Vec4, len(corners))
	colours := make([]math.Vec4, len(corners))
	for i, c := range corners {
		positions[i] = math.NewVec4(c.X, c.Y, 0, 1)
		colours[i] = math.NewVec4(colour[0], colour[1], colour[2], colour[3])
	}
	return [][]math.Vec4{positions, colours}
}
