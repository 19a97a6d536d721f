package renderer

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/arkanoop/engine/containers"
	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/math"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

/**
 * @brief Builds one program per configuration, in order, into the next slots of
 * the program table. The batch is all or nothing: when any source cannot be
 * read, or any stage fails to compile, link or validate, every program built by
 * this call is released and the error is returned.
 */
func (r *Renderer) CreateShaders(programs []metadata.ShaderProgramConfig) (err error) {
	if err := r.shaders.Reserve(len(programs)); err != nil {
		core.LogError("Max shaders: %d: %v", r.shaders.Cap(), err)
		return err
	}

	start := r.shaders.Len()
	defer func() {
		if err != nil {
			r.freeShadersFrom(start)
		}
	}()

	for _, cfg := range programs {
		if err := r.buildProgram(cfg); err != nil {
			return err
		}
	}
	return r.checkError("CreateShaders")
}

func (r *Renderer) buildProgram(cfg metadata.ShaderProgramConfig) error {
	vertexSource, err := r.loadSource(cfg.VertexPath)
	if err != nil {
		return err
	}
	fragmentSource, err := r.loadSource(cfg.FragmentPath)
	if err != nil {
		return err
	}

	program := metadata.ShaderProgram{
		VertexID:   r.backend.CreateShader(metadata.ShaderStageVertex),
		FragmentID: r.backend.CreateShader(metadata.ShaderStageFragment),
		ID:         r.backend.CreateProgram(),
		State:      metadata.ShaderStateUnlinked,
		Config:     cfg,
	}
	if program.VertexID == 0 || program.FragmentID == 0 || program.ID == 0 {
		r.releaseProgram(program)
		err := fmt.Errorf("failed to create shader objects for '%s' and '%s'", cfg.VertexPath, cfg.FragmentPath)
		core.LogError(err.Error())
		return err
	}

	// The table owns the objects from here on, whatever happens next.
	h, err := r.shaders.Insert(program)
	if err != nil {
		r.releaseProgram(program)
		return err
	}
	defer func() {
		_ = r.shaders.Set(h, program)
	}()

	program.State = metadata.ShaderStateCompiling
	if err := r.compileStage(program.VertexID, metadata.ShaderStageVertex, cfg.VertexPath, vertexSource); err != nil {
		program.State = metadata.ShaderStateFailed
		return err
	}
	if err := r.compileStage(program.FragmentID, metadata.ShaderStageFragment, cfg.FragmentPath, fragmentSource); err != nil {
		program.State = metadata.ShaderStateFailed
		return err
	}
	program.State = metadata.ShaderStateCompiled

	program.State = metadata.ShaderStateLinking
	if err := r.linkProgram(program); err != nil {
		program.State = metadata.ShaderStateFailed
		return err
	}
	program.State = metadata.ShaderStateLinked

	core.LogDebug("shader program %d linked from '%s' and '%s'", h, cfg.VertexPath, cfg.FragmentPath)
	return nil
}

func (r *Renderer) loadSource(path string) (string, error) {
	source, err := r.assets.LoadShaderSource(path)
	if err != nil {
		var assetErr *core.AssetError
		if !errors.As(err, &assetErr) {
			err = &core.AssetError{Path: path, Err: err}
		}
		core.LogError(err.Error())
		return "", err
	}
	return source, nil
}

func (r *Renderer) compileStage(id uint32, stage metadata.ShaderStage, path, source string) error {
	r.backend.ShaderSource(id, source)
	r.backend.CompileShader(id)
	if r.backend.CompileStatus(id) {
		return nil
	}
	err := &core.ShaderError{
		Kind:  core.ErrCompile,
		Stage: stage.String(),
		Path:  path,
		Log:   r.backend.ShaderInfoLog(id, int32(r.config.ErrorMsgBufferSize)),
	}
	core.LogError(err.Error())
	return err
}

func (r *Renderer) linkProgram(program metadata.ShaderProgram) error {
	r.backend.AttachShader(program.ID, program.VertexID)
	r.backend.AttachShader(program.ID, program.FragmentID)

	r.backend.LinkProgram(program.ID)
	if !r.backend.LinkStatus(program.ID) {
		err := &core.ShaderError{
			Kind:  core.ErrLink,
			Stage: "link",
			Log:   r.backend.ProgramInfoLog(program.ID, int32(r.config.ErrorMsgBufferSize)),
		}
		core.LogError(err.Error())
		return err
	}

	r.backend.ValidateProgram(program.ID)
	if !r.backend.ValidateStatus(program.ID) {
		err := &core.ShaderError{
			Kind:  core.ErrLink,
			Stage: "validate",
			Log:   r.backend.ProgramInfoLog(program.ID, int32(r.config.ErrorMsgBufferSize)),
		}
		core.LogError(err.Error())
		return err
	}
	return nil
}

// releaseProgram detaches and deletes the stages of program, then the program.
func (r *Renderer) releaseProgram(program metadata.ShaderProgram) {
	if program.ID != 0 {
		if program.VertexID != 0 {
			r.backend.DetachShader(program.ID, program.VertexID)
		}
		if program.FragmentID != 0 {
			r.backend.DetachShader(program.ID, program.FragmentID)
		}
	}
	if program.VertexID != 0 {
		r.backend.DeleteShader(program.VertexID)
	}
	if program.FragmentID != 0 {
		r.backend.DeleteShader(program.FragmentID)
	}
	if program.ID != 0 {
		r.backend.DeleteProgram(program.ID)
	}
}

// FreeShaders unbinds the current program and releases the table in order,
// stopping at the first empty slot.
func (r *Renderer) FreeShaders() {
	r.freeShadersFrom(0)
}

func (r *Renderer) freeShadersFrom(start int) {
	r.backend.UseProgram(0)
	r.shaders.Each(func(h containers.Handle, p metadata.ShaderProgram) bool {
		if int(h) < start {
			return true
		}
		if p.ID == 0 {
			return false
		}
		r.releaseProgram(p)
		return true
	})
	r.shaders.Truncate(start)
}

// ReloadShaders replaces the whole program table.
func (r *Renderer) ReloadShaders(programs []metadata.ShaderProgramConfig) error {
	r.FreeShaders()
	return r.CreateShaders(programs)
}

func (r *Renderer) ShaderProgram(h containers.Handle) (metadata.ShaderProgram, error) {
	return r.shaders.Get(h)
}

func (r *Renderer) ShaderCount() int {
	return r.shaders.Len()
}

func (r *Renderer) BindShader(h containers.Handle) error {
	p, err := r.shaders.Get(h)
	if err != nil {
		return err
	}
	r.backend.UseProgram(p.ID)
	return nil
}

func (r *Renderer) UnbindShader() {
	r.backend.UseProgram(0)
}

// UniformLocation returns -1 when the program has no active uniform called name.
func (r *Renderer) UniformLocation(h containers.Handle, name string) (int32, error) {
	p, err := r.shaders.Get(h)
	if err != nil {
		return -1, err
	}
	return r.backend.GetUniformLocation(p.ID, name), nil
}

/**
 * @brief Uploads m to the uniform called name of program h. The program is
 * left bound. An unknown name resolves to location -1 and the upload is
 * silently ignored by the backend.
 */
func (r *Renderer) SetUniform(h containers.Handle, m math.Mat4, name string) error {
	loc, err := r.useForUniform(h, name)
	if err != nil {
		return err
	}
	r.backend.UniformMatrix4(loc, m)
	return nil
}

func (r *Renderer) SetUniformVec4(h containers.Handle, v math.Vec4, name string) error {
	loc, err := r.useForUniform(h, name)
	if err != nil {
		return err
	}
	r.backend.UniformVec4(loc, v)
	return nil
}

// SetUniformInt is used for sampler uniforms, where v is the texture unit.
func (r *Renderer) SetUniformInt(h containers.Handle, v int32, name string) error {
	loc, err := r.useForUniform(h, name)
	if err != nil {
		return err
	}
	r.backend.UniformInt(loc, v)
	return nil
}

func (r *Renderer) useForUniform(h containers.Handle, name string) (int32, error) {
	p, err := r.shaders.Get(h)
	if err != nil {
		return -1, err
	}
	r.backend.UseProgram(p.ID)
	return r.backend.GetUniformLocation(p.ID, name), nil
}
