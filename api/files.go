package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HandleUpload stages an uploaded PDF in the temp dir and returns its path,
// which the path-based endpoints then accept as input.
func HandleUpload(c *gin.Context, config *Config) {
	file, header, err := c.Request.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if err := validatePDFFile(file, header, config.MaxFileSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ensureTempDir(config.TempDir); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp directory"})
		return
	}

	// Sanitize filename to prevent path traversal
	safeFilename := sanitizeFilename(header.Filename)
	filename := filepath.Join(config.TempDir, generateUniqueID()+"_"+safeFilename)

	out, err := os.Create(filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}
	_, err = out.ReadFrom(file)
	out.Close()
	if err != nil {
		os.Remove(filename)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	config.Logger.WithFields(logrus.Fields{"filename": header.Filename, "path": filename, "size": header.Size}).Info("upload staged")
	c.JSON(http.StatusOK, gin.H{"filename": header.Filename, "path": filename})
}

// HandleDownload serves a file from the temp dir only.
func HandleDownload(c *gin.Context, config *Config) {
	requested := c.Query("path")
	if requested == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	path, ok := withinDir(config.TempDir, requested)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "path is outside the temp directory"})
		return
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.FileAttachment(path, sanitizeFilename(filepath.Base(path)))
}

// withinDir resolves p and reports whether it lies inside dir.
func withinDir(dir, p string) (string, bool) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	absPath, err := filepath.Abs(p)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return absPath, true
}

// SweepTempDir removes regular files in dir last modified before now-ttl.
// It returns how many were removed.
func SweepTempDir(dir string, ttl time.Duration, now time.Time) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > ttl {
			if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}

// RunSweeper sweeps the temp dir every SweepInterval until ctx is done.
func RunSweeper(ctx context.Context, config *Config) {
	ticker := time.NewTicker(SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := SweepTempDir(config.TempDir, StagedFileTTL, now)
			if err != nil {
				config.Logger.WithError(err).Warn("temp dir sweep failed")
			} else if n > 0 {
				config.Logger.WithField("removed", n).Debug("temp dir swept")
			}
		}
	}
}

// ensureTempDir creates the temp directory if it doesn't exist
func ensureTempDir(tempDir string) error {
	return os.MkdirAll(tempDir, DefaultFilePermissions)
}

// sanitizeFilename removes path traversal attempts and characters with
// meaning in PostScript strings
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.Map(func(r rune) rune {
		switch r {
		case '(', ')', '%':
			return -1
		}
		return r
	}, filename)
	filename = strings.TrimSpace(filepath.Base(filename))

	if filename == "" || filename == "." {
		filename = "document.pdf"
	}
	return filename
}

// generateUniqueID generates a unique identifier for temp files
func generateUniqueID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return fmt.Sprintf("%d_%s", time.Now().UnixNano(), hex.EncodeToString(b))
}

// validatePDFFile checks the size limit and the %PDF header
func validatePDFFile(file multipart.File, header *multipart.FileHeader, maxSize int64) error {
	if header.Size > maxSize {
		return fmt.Errorf("file size %d exceeds maximum allowed %d bytes", header.Size, maxSize)
	}

	buffer := make([]byte, 4)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file header: %w", err)
	}
	if n < 4 || string(buffer[:4]) != "%PDF" {
		return fmt.Errorf("invalid PDF file: header does not match")
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to reset file position: %w", err)
	}
	return nil
}
