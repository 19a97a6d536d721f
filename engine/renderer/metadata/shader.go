package metadata

/**
 * @brief Represents the construction state of a shader program.
 */
type ShaderState int

const (
	/** @brief Nothing has been compiled yet. */
	ShaderStateUnlinked ShaderState = iota
	/** @brief A stage is being compiled. */
	ShaderStateCompiling
	/** @brief Both stages compiled successfully. */
	ShaderStateCompiled
	/** @brief The program is being linked. */
	ShaderStateLinking
	/** @brief The program linked and validated, and is ready for use. */
	ShaderStateLinked
	/** @brief A compile, link or validate step failed. The program is unusable. */
	ShaderStateFailed
)

func (s ShaderState) String() string {
	switch s {
	case ShaderStateUnlinked:
		return "unlinked"
	case ShaderStateCompiling:
		return "compiling"
	case ShaderStateCompiled:
		return "compiled"
	case ShaderStateLinking:
		return "linking"
	case ShaderStateLinked:
		return "linked"
	case ShaderStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

/** @brief Shader stages available in the system. */
type ShaderStage int

const (
	ShaderStageVertex   ShaderStage = 0x00000001
	ShaderStageFragment ShaderStage = 0x00000004
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

/**
 * @brief The pair of source files a program is built from.
 */
type ShaderProgramConfig struct {
	VertexPath   string `toml:"vertex"`
	FragmentPath string `toml:"fragment"`
}

/**
 * @brief A slot of the renderer shader program table. The program owns its
 * two stage objects until it is freed.
 */
type ShaderProgram struct {
	/** @brief The backend program object, 0 when the slot holds nothing. */
	ID uint32
	/** @brief The vertex stage object. */
	VertexID uint32
	/** @brief The fragment stage object. */
	FragmentID uint32
	/** @brief Where construction stopped. */
	State ShaderState
	/** @brief The source files used to build this program. */
	Config ShaderProgramConfig
}
