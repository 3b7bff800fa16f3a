package analyzer

import (
	"context"

	"github.com/blackwell-systems/codegauge/internal/estimate"
)

// Provider produces a bundle for a descriptor. The heuristic provider is
// the only implementation today; a real analysis backend would implement
// this interface and keep the bundle shape unchanged.
type Provider interface {
	Analyze(ctx context.Context, d estimate.Descriptor, r estimate.Rand) (*Bundle, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, d estimate.Descriptor, r estimate.Rand) (*Bundle, error)

// Analyze calls f.
func (f ProviderFunc) Analyze(ctx context.Context, d estimate.Descriptor, r estimate.Rand) (*Bundle, error) {
	return f(ctx, d, r)
}

// HeuristicProvider runs the estimators in dependency order:
// volume, languages, contributors, quality, security.
type HeuristicProvider struct{}

// Analyze implements Provider. It never fails.
func (HeuristicProvider) Analyze(_ context.Context, d estimate.Descriptor, r estimate.Rand) (*Bundle, error) {
	return assemble(d, r), nil
}

func assemble(d estimate.Descriptor, r estimate.Rand) *Bundle {
	vol := estimate.EstimateVolume(d, r)
	langs := estimate.EstimateLanguages(vol.Files, r)
	if langs == nil {
		langs = []estimate.LanguageShare{}
	}
	contributors := estimate.EstimateContributors(d.Kind, vol.Files, r)

	return &Bundle{
		Overview: Overview{
			FileCount:    vol.Files,
			LineCount:    vol.Lines,
			Languages:    langs,
			Contributors: contributors,
		},
		Quality:  estimate.EstimateQuality(vol, langs, r),
		Security: estimate.EstimateSecurity(d.Kind, vol, langs, r),
	}
}

// basicAnalysis is the fallback used when the provider fails. It runs the
// same estimators but makes no vulnerability or license claims.
// Outdated dependencies and the security score are kept as estimated.
func basicAnalysis(d estimate.Descriptor, r estimate.Rand) *Bundle {
	b := assemble(d, r)
	b.Security.Vulnerabilities = 0
	b.Security.License = estimate.LicenseUnknown
	b.Degraded = true
	return b
}
