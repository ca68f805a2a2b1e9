package imagecodec

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	openapi_types "github.com/oapi-codegen/runtime/types"

	port "github.com/edta-team/portfolio/internal/ports/out/imagecodec"
)

// DataURLDecoder encodes image files as base64 data: URLs.
type DataURLDecoder struct {
	// MaxBytes bounds the accepted file size; zero means unlimited.
	MaxBytes int64
}

func NewDataURLDecoder(maxBytes int64) DataURLDecoder {
	return DataURLDecoder{MaxBytes: maxBytes}
}

func (d DataURLDecoder) Decode(ctx context.Context, file openapi_types.File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if d.MaxBytes > 0 && file.FileSize() > d.MaxBytes {
		return "", port.ErrTooLarge
	}
	data, err := file.Bytes()
	if err != nil {
		return "", fmt.Errorf("read %q: %w", file.Filename(), err)
	}
	if len(data) == 0 {
		return "", port.ErrNoFile
	}
	if d.MaxBytes > 0 && int64(len(data)) > d.MaxBytes {
		return "", port.ErrTooLarge
	}

	contentType := http.DetectContentType(data)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", port.ErrNotImage
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
