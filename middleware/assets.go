package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"sync"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/logger"
)

// Static files whose URLs carry a content hash
const (
	StyleSheetPath = "static/css/style.css"
	AppScriptPath  = "static/js/app.js"
)

var (
	assetVersions     = map[string]string{}
	assetVersionsOnce sync.Once
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions() {
	assetVersionsOnce.Do(func() {
		log := logger.WithComponent("assets")
		for _, path := range []string{StyleSheetPath, AppScriptPath} {
			if version := computeFileHash(path); version != "" {
				assetVersions[path] = version
			}
		}
		log.Info().Int("files", len(assetVersions)).Msg("Asset versions initialized")
	})
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log := logger.WithComponent("assets")
		log.Warn().Err(err).Str("path", path).Msg("Failed to open file for hashing")
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log := logger.WithComponent("assets")
		log.Warn().Err(err).Str("path", path).Msg("Failed to hash file")
		return ""
	}

	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// AssetVersion returns the version hash of a static file, or "1" when unknown.
// ctx is unused; it keeps the signature in line with the other template helpers.
func AssetVersion(ctx context.Context, path string) string {
	if version, ok := assetVersions[path]; ok {
		return version
	}
	return "1"
}

// AssetURL returns the public URL of a static file with its version query
func AssetURL(ctx context.Context, path string) string {
	return "/" + path + "?v=" + AssetVersion(ctx, path)
}
