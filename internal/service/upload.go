// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/util"
)

// Upload defaults
const (
	DefaultUploadDir = "./uploads"
	UploadURLPrefix  = "/uploads/"
	// maxStemLength bounds the slug taken from the client's filename
	maxStemLength = 64
)

// UploadService moves uploaded attachments into the uploads directory.
type UploadService struct {
	uploadDir string
	now       func() time.Time
}

// NewUploadService creates a new upload service.
func NewUploadService(uploadDir string) *UploadService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	return &UploadService{
		uploadDir: uploadDir,
		now:       time.Now,
	}
}

// Dir returns the directory attachments are written to.
func (s *UploadService) Dir() string {
	return s.uploadDir
}

// EnsureDir creates the uploads directory if needed.
func (s *UploadService) EnsureDir() error {
	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return fmt.Errorf("creating upload directory: %w", err)
	}
	return nil
}

// Relocate writes file under a fresh name and returns its public reference
// "/uploads/<name>". The name starts with the current time in milliseconds,
// so names sort by upload time. Existing files are never replaced.
func (s *UploadService) Relocate(file io.Reader, originalName string) (string, error) {
	name := s.storedName(originalName)

	path, err := util.SafeJoinPath(s.uploadDir, name)
	if err != nil {
		return "", fmt.Errorf("resolving upload path: %w", err)
	}

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}

	if _, err := io.Copy(out, file); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("writing upload file: %w", err)
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("syncing upload file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("closing upload file: %w", err)
	}

	return UploadURLPrefix + name, nil
}

// storedName builds "<unix-millis>-<8 hex>-<slug><.ext>".
func (s *UploadService) storedName(originalName string) string {
	base, err := util.SanitizeFilename(originalName)
	if err != nil {
		base = ""
	}

	stem, ext := util.SplitFilename(base)
	slug := util.Slugify(stem)
	if len(slug) > maxStemLength {
		slug = strings.TrimRight(slug[:maxStemLength], "-")
	}
	if slug == "" {
		slug = "file"
	}

	millis := strconv.FormatInt(s.now().UnixMilli(), 10)
	return millis + "-" + uuid.NewString()[:8] + "-" + slug + ext
}
