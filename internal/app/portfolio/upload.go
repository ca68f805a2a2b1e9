package portfolio

import (
	"context"
	"errors"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/edta-team/portfolio/internal/domain"
	"github.com/edta-team/portfolio/internal/ports/out/imagecodec"
)

// UploadOutcome reports what became of a decoded image.
type UploadOutcome string

const (
	// UploadApplied means the image landed in the edit buffer.
	UploadApplied UploadOutcome = "applied"
	// UploadDiscarded means the edit session the upload was issued for had ended.
	UploadDiscarded UploadOutcome = "discarded"
	// UploadSkipped means there was nothing usable to decode (no file, not an image).
	UploadSkipped UploadOutcome = "skipped"
	// UploadFailed means decoding failed for another reason.
	UploadFailed UploadOutcome = "failed"
)

// PendingUpload is an image decode running outside the controller's update cycle.
type PendingUpload struct {
	// EditSessionID is the edit session the result is meant for.
	EditSessionID EditSessionID

	done    chan struct{}
	outcome UploadOutcome
	err     error
}

// Done is closed once the decode has finished and its result was applied or dropped.
func (p *PendingUpload) Done() <-chan struct{} { return p.done }

// Wait blocks until the upload finished or ctx ends. The returned error is the decode
// error, if any, or ctx.Err().
func (p *PendingUpload) Wait(ctx context.Context) (UploadOutcome, error) {
	select {
	case <-p.done:
		return p.outcome, p.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (p *PendingUpload) finish(outcome UploadOutcome, err error) {
	p.outcome = outcome
	p.err = err
	close(p.done)
}

// UploadImage decodes file in the background and, when done, stores the result as the
// buffer's image, provided the edit session the upload was issued under is still the
// active one. Results for an ended or replaced edit session are discarded.
//
// The decode is not tied to ctx's cancellation: it outlives the request that started it.
func (c *Controller) UploadImage(ctx context.Context, file openapi_types.File) (*PendingUpload, error) {
	c.mu.Lock()
	if !c.st.editing {
		c.mu.Unlock()
		return nil, invalidTransition("uploadImage", "not editing")
	}
	tag := c.st.editID
	c.mu.Unlock()

	p := &PendingUpload{EditSessionID: tag, done: make(chan struct{})}
	decodeCtx := context.WithoutCancel(ctx)

	c.uploads.Add(1)
	go func() {
		defer c.uploads.Done()
		image, err := c.decoder.Decode(decodeCtx, file)
		p.finish(c.applyDecoded(tag, file.Filename(), image, err))
	}()
	return p, nil
}

// WaitUploads blocks until every upload started so far has finished.
func (c *Controller) WaitUploads() {
	c.uploads.Wait()
}

func (c *Controller) applyDecoded(tag EditSessionID, filename string, image string, decodeErr error) (UploadOutcome, error) {
	log := c.log.WithField("edit_session", string(tag)).WithField("file", filename)

	if decodeErr != nil {
		if errors.Is(decodeErr, imagecodec.ErrNoFile) || errors.Is(decodeErr, imagecodec.ErrNotImage) {
			log.WithError(decodeErr).Debug("upload ignored")
			return UploadSkipped, nil
		}
		log.WithError(decodeErr).Warn("image decode failed")
		return UploadFailed, decodeErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.st.editing || c.st.editID != tag {
		log.Info("stale upload discarded")
		return UploadDiscarded, nil
	}
	c.st.buffer.Set(domain.FieldImage, image)
	return UploadApplied, nil
}
