package api

import (
	"net/http"

	"smash/pdf"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Config holds what the handlers need
type Config struct {
	MaxFileSize int64
	TempDir     string
	Tools       *pdf.Tools
	Logger      *logrus.Logger
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(config *Config) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(config.Logger), gin.Recovery())
	r.MaxMultipartMemory = config.MaxFileSize

	SetupRoutes(r, config)
	return r
}

func SetupRoutes(r *gin.Engine, config *Config) {
	pdfGroup := r.Group("/api/pdf")
	{
		pdfGroup.POST("/compress", func(c *gin.Context) { HandleCompress(c, config) })
		pdfGroup.POST("/merge", func(c *gin.Context) { HandleMerge(c, config) })
		pdfGroup.POST("/split", func(c *gin.Context) { HandleSplit(c, config) })
		pdfGroup.POST("/page-count", func(c *gin.Context) { HandlePageCount(c, config) })
		pdfGroup.POST("/protect", func(c *gin.Context) { HandleProtect(c, config) })
		pdfGroup.POST("/unlock", func(c *gin.Context) { HandleUnlock(c, config) })
		pdfGroup.POST("/optimize", func(c *gin.Context) { HandleOptimize(c, config) })
		pdfGroup.POST("/remove-pages", func(c *gin.Context) { HandleRemovePages(c, config) })
		pdfGroup.POST("/is-encrypted", func(c *gin.Context) { HandleIsEncrypted(c, config) })
		pdfGroup.POST("/upload", func(c *gin.Context) { HandleUpload(c, config) })
		pdfGroup.GET("/download", func(c *gin.Context) { HandleDownload(c, config) })
	}

	toolsGroup := r.Group("/api/tools")
	{
		toolsGroup.GET("/ghostscript", func(c *gin.Context) { HandleToolInfo(c, config, pdf.Ghostscript) })
		toolsGroup.GET("/qpdf", func(c *gin.Context) { HandleToolInfo(c, config, pdf.QPDF) })
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		_, gsOK := config.Tools.FindGhostscript()
		_, qpdfOK := config.Tools.FindQPDF()
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"service":     "smash",
			"ghostscript": gsOK,
			"qpdf":        qpdfOK,
		})
	})
}
