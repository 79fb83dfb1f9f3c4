package main

import (
	"context"

	"github.com/goliatone/go-contacts/cmd/contactsd/config"
	featuregate "github.com/goliatone/go-featuregate/gate"
)

// configGate resolves feature flags from the loaded configuration. Unknown
// keys are enabled.
type configGate struct {
	flags map[string]bool
}

func newConfigGate(cfg config.FeaturesConfig) *configGate {
	return &configGate{flags: map[string]bool{
		featuregate.FeatureUsersSignup: cfg.Signup,
	}}
}

func (g *configGate) Enabled(_ context.Context, key string, _ ...featuregate.ResolveOption) (bool, error) {
	enabled, ok := g.flags[key]
	if !ok {
		return true, nil
	}
	return enabled, nil
}

var _ featuregate.FeatureGate = (*configGate)(nil)
