package command

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
)

// featureEnabled treats a missing gate as enabled.
func featureEnabled(ctx context.Context, gate featuregate.FeatureGate, key string) (bool, error) {
	if gate == nil {
		return true, nil
	}
	return gate.Enabled(ctx, key)
}
