// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/citecheck/internal/detect"
	"github.com/pdiddy/citecheck/internal/document"
	"github.com/pdiddy/citecheck/pkg/types"
)

// Error messages returned to clients.
const (
	msgTextTooShort  = "Text too short"
	msgNoSentences   = "No sentences detected"
	msgCompareResult = "Visual comparison enabled in UI"
)

type textRequest struct {
	Text string `json:"text"`
}

// detectResponse is the analysis with the verification report alongside.
type detectResponse struct {
	types.Analysis
	References types.Report `json:"references"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": s.version})
}

func (s *Server) detectText(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	s.respondDetect(c, req.Text)
}

func (s *Server) detectFile(c *gin.Context) {
	s.limitBody(c)
	text, status, err := s.readUpload(c, "file")
	if err != nil {
		c.JSON(status, errorResponse{Error: err.Error()})
		return
	}
	s.respondDetect(c, text)
}

func (s *Server) respondDetect(c *gin.Context, text string) {
	analysis, err := s.analyzer.Analyze(text)
	if err != nil {
		status, msg := analysisError(err)
		c.JSON(status, errorResponse{Error: msg})
		return
	}
	report := s.verifier.Verify(c.Request.Context(), text)
	c.JSON(http.StatusOK, detectResponse{Analysis: analysis, References: report})
}

func (s *Server) verifyReferences(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if err := document.Validate(req.Text); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: msgTextTooShort})
		return
	}
	c.JSON(http.StatusOK, s.verifier.Verify(c.Request.Context(), req.Text))
}

// compare analyzes two uploads side by side. A document that cannot be
// analyzed is reported in place as {"error": ...}.
func (s *Server) compare(c *gin.Context) {
	s.limitBody(c)

	docs := make([]any, 2)
	for i, field := range []string{"file1", "file2"} {
		text, status, err := s.readUpload(c, field)
		if err != nil && status != http.StatusUnprocessableEntity {
			c.JSON(status, errorResponse{Error: err.Error()})
			return
		}
		if err != nil {
			docs[i] = errorResponse{Error: err.Error()}
			continue
		}
		analysis, err := s.analyzer.Analyze(text)
		if err != nil {
			_, msg := analysisError(err)
			docs[i] = errorResponse{Error: msg}
			continue
		}
		docs[i] = analysis
	}

	c.JSON(http.StatusOK, gin.H{"doc1": docs[0], "doc2": docs[1], "similarity": msgCompareResult})
}

func (s *Server) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)
}

// readUpload extracts the text of one multipart file. The status describes
// how a failure should be reported.
func (s *Server) readUpload(c *gin.Context, field string) (string, int, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", tooLarge.Limit)
		}
		return "", http.StatusBadRequest, fmt.Errorf("missing multipart field %q", field)
	}

	data, err := readFileHeader(fh)
	if err != nil {
		return "", http.StatusBadRequest, fmt.Errorf("reading %s: %w", fh.Filename, err)
	}

	text, err := document.FromBytes(data, fh.Filename)
	if err != nil {
		if errors.Is(err, document.ErrUnsupportedFormat) {
			return "", http.StatusUnsupportedMediaType, err
		}
		return "", http.StatusUnprocessableEntity, err
	}
	return text, http.StatusOK, nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func analysisError(err error) (int, string) {
	switch {
	case errors.Is(err, document.ErrTextTooShort):
		return http.StatusUnprocessableEntity, msgTextTooShort
	case errors.Is(err, detect.ErrNoSentences):
		return http.StatusUnprocessableEntity, msgNoSentences
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
