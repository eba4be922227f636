package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Hermes08/FastMVP-Core/internal/archive"
	"github.com/Hermes08/FastMVP-Core/internal/lifecycle"
	"github.com/Hermes08/FastMVP-Core/internal/scaffold"
)

// handleGenerate runs a full generation cycle and streams the archive
// back as a download. Validation failures are reported before any
// filesystem work happens; later failures come back sanitized, with the
// failing path only in the logs.
func (s *Server) handleGenerate(c *gin.Context) {
	log := s.log(c)

	var raw scaffold.RawConfig
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cfg, err := scaffold.Normalize(raw)
	if err != nil {
		var vErr *scaffold.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid configuration"})
		return
	}

	delivered := false
	err = s.gen.Generate(c.Request.Context(), cfg, func(ctx context.Context, archivePath string) error {
		data, readErr := os.ReadFile(archivePath)
		if readErr != nil {
			if os.IsNotExist(readErr) {
				return fmt.Errorf("%w: %s", lifecycle.ErrArchiveMissing, archivePath)
			}
			return readErr
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", cfg.Slug+".zip"))
		c.Header("Content-Length", strconv.Itoa(len(data)))
		c.Data(http.StatusOK, "application/zip", data)
		delivered = true
		return nil
	})
	if err != nil && !delivered {
		s.writeError(c, log, err)
	}
}

// writeError maps internal errors onto sanitized responses. Internal
// paths never reach the client.
func (s *Server) writeError(c *gin.Context, log *zap.Logger, err error) {
	var (
		vErr *scaffold.ValidationError
		wErr *scaffold.WriteError
		aErr *archive.Error
	)

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, lifecycle.ErrArchiveMissing):
		log.Error("archive missing at delivery", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "generated archive not found"})
	case errors.As(err, &wErr):
		log.Error("scaffold write failed", zap.String("path", wErr.Path), zap.Error(wErr.Err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate project"})
	case errors.As(err, &aErr):
		log.Error("archive creation failed", zap.String("path", aErr.Path), zap.Error(aErr.Err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate project"})
	default:
		log.Error("generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate project"})
	}
}
