package chandasdna

import (
	"context"

	"github.com/vedicmetrics/ChandasDNA/pkg/models"
)

// Fallback chains two identifiers: Primary is consulted first and Secondary
// takes over when Primary errors, detects nothing, or reports a confidence
// below MinConfidence. A failed primary never makes the verse an error as
// long as the secondary produces a result.
type Fallback struct {
	Primary   Identifier
	Secondary Identifier
	// MinConfidence is the lowest primary confidence accepted without
	// consulting the secondary.
	MinConfidence float64
	Log           Logger
}

func (f *Fallback) Identify(ctx context.Context, shloka, hint string) (*models.Identification, error) {
	primary, perr := f.Primary.Identify(ctx, shloka, hint)
	if perr == nil && primary.Detected && primary.Confidence >= f.MinConfidence {
		return primary, nil
	}
	if perr != nil && f.Log != nil {
		f.Log.Warnf("primary identifier failed, falling back: %v", perr)
	}

	secondary, serr := f.Secondary.Identify(ctx, shloka, hint)
	if serr != nil {
		if perr == nil {
			// weak primary result beats no result
			return primary, nil
		}
		return nil, serr
	}
	if perr == nil && !secondary.Detected && primary.Detected {
		return primary, nil
	}
	return secondary, nil
}
