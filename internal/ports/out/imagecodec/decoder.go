package imagecodec

import (
	"context"
	"errors"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

var (
	// ErrNoFile indicates the upload carried no file content.
	ErrNoFile = errors.New("no file chosen")

	// ErrNotImage indicates the file is not an image type.
	ErrNotImage = errors.New("file is not an image")

	// ErrTooLarge indicates the file exceeds the configured size limit.
	ErrTooLarge = errors.New("image too large")
)

// Decoder turns an uploaded image file into a representation that can be stored in a
// member's image field and embedded directly by a browser.
type Decoder interface {
	Decode(ctx context.Context, file openapi_types.File) (string, error)
}
