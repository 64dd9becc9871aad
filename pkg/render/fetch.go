package render

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/umlpad/pkg/errors"
	"github.com/matzehuels/umlpad/pkg/httputil"
)

// Image is a diagram downloaded from the rendering service.
type Image struct {
	Result      *Result
	ContentType string
	Data        []byte
}

// Fetch renders code and downloads the image in a single attempt.
// A 400 from the server becomes RENDER_FAILED (the service rejected the
// diagram); other failures become NETWORK_ERROR.
func (r *Renderer) Fetch(ctx context.Context, code string) (*Image, error) {
	res, err := r.Render(ctx, code)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Get(ctx, res.URL)
	if err != nil {
		if stderrors.Is(err, httputil.ErrBadRequest) {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "rendering service rejected the diagram")
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "rendering service unavailable")
	}

	return &Image{
		Result:      res,
		ContentType: resp.ContentType,
		Data:        resp.Body,
	}, nil
}
