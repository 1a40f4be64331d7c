package api

import (
	"net/http"

	"smash/pdf"

	"github.com/gin-gonic/gin"
)

type compressRequest struct {
	InputPath  string `json:"input_path" binding:"required"`
	OutputPath string `json:"output_path"`
	Preset     string `json:"preset" binding:"required"`
}

type mergeRequest struct {
	InputPaths []string `json:"input_paths" binding:"required"`
	OutputPath string   `json:"output_path" binding:"required"`
}

type splitRequest struct {
	InputPath string           `json:"input_path" binding:"required"`
	OutputDir string           `json:"output_dir" binding:"required"`
	Options   pdf.SplitOptions `json:"options"`
}

type inputRequest struct {
	InputPath string `json:"input_path" binding:"required"`
}

type protectRequest struct {
	InputPath     string `json:"input_path" binding:"required"`
	OutputPath    string `json:"output_path"`
	UserPassword  string `json:"user_password"`
	OwnerPassword string `json:"owner_password"`
}

type unlockRequest struct {
	InputPath  string `json:"input_path" binding:"required"`
	OutputPath string `json:"output_path"`
	Password   string `json:"password"`
}

type optimizeRequest struct {
	InputPath  string `json:"input_path" binding:"required"`
	OutputPath string `json:"output_path"`
}

type removePagesRequest struct {
	InputPath  string `json:"input_path" binding:"required"`
	OutputPath string `json:"output_path"`
	Pages      string `json:"pages" binding:"required"`
}

func HandleCompress(c *gin.Context, config *Config) {
	var req compressRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := config.Tools.Compress(c.Request.Context(), req.InputPath, req.OutputPath, req.Preset)
	respond(c, config, result, err)
}

func HandleMerge(c *gin.Context, config *Config) {
	var req mergeRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := config.Tools.Merge(c.Request.Context(), req.InputPaths, req.OutputPath)
	respond(c, config, result, err)
}

func HandleSplit(c *gin.Context, config *Config) {
	var req splitRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := config.Tools.Split(c.Request.Context(), req.InputPath, req.OutputDir, req.Options)
	respond(c, config, result, err)
}

func HandlePageCount(c *gin.Context, config *Config) {
	var req inputRequest
	if !bindJSON(c, &req) {
		return
	}
	count, err := config.Tools.PageCount(c.Request.Context(), req.InputPath)
	respond(c, config, gin.H{"page_count": count}, err)
}

func HandleProtect(c *gin.Context, config *Config) {
	var req protectRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := config.Tools.Protect(c.Request.Context(), req.InputPath, req.OutputPath, req.UserPassword, req.OwnerPassword)
	respond(c, config, result, err)
}

func HandleUnlock(c *gin.Context, config *Config) {
	var req unlockRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := config.Tools.Unlock(c.Request.Context(), req.InputPath, req.OutputPath, req.Password)
	respond(c, config, result, err)
}

func HandleOptimize(c *gin.Context, config *Config) {
	var req optimizeRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := config.Tools.Optimize(c.Request.Context(), req.InputPath, req.OutputPath)
	respond(c, config, result, err)
}

func HandleRemovePages(c *gin.Context, config *Config) {
	var req removePagesRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := config.Tools.RemovePages(c.Request.Context(), req.InputPath, req.OutputPath, req.Pages)
	respond(c, config, result, err)
}

func HandleIsEncrypted(c *gin.Context, config *Config) {
	var req inputRequest
	if !bindJSON(c, &req) {
		return
	}
	encrypted, err := config.Tools.IsEncrypted(c.Request.Context(), req.InputPath)
	respond(c, config, gin.H{"encrypted": encrypted}, err)
}

// HandleToolInfo reports where a tool was found and its version.
func HandleToolInfo(c *gin.Context, config *Config, tool pdf.Tool) {
	path, err := config.Tools.Resolve(tool)
	if err != nil {
		respond(c, config, nil, err)
		return
	}
	version, err := config.Tools.Version(c.Request.Context(), tool)
	if err != nil {
		respond(c, config, nil, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path, "version": version})
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return false
	}
	return true
}
