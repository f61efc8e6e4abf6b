package constellation

// Config contains the tunable constants of the analysis pipeline. The merge
// threshold is the only user-adjustable knob; everything else is fixed by
// the product design.
type Config struct {
	// ConnectionThreshold is the fixed similarity cutoff for drawing a
	// connection between two thoughts. Not user-configurable.
	ConnectionThreshold float64

	// MergeThreshold is the user-adjustable similarity cutoff for collapsing
	// thoughts into one bubble. Lower means more aggressive merging.
	MergeThreshold float64

	// MinRadius is the smallest bubble radius ever rendered.
	MinRadius float64
	// RadiusBase and RadiusScale map prevalence to an unmerged base radius.
	RadiusBase  float64
	RadiusScale float64

	// MergedRadiusBase/Scale map summed group prevalence to a merged base
	// radius, clamped to [MinMergedRadius, MaxMergedRadius].
	MergedRadiusBase  float64
	MergedRadiusScale float64
	MinMergedRadius   float64
	MaxMergedRadius   float64

	// DensityFactorInitial scales radius growth per touching neighbor at
	// initial construction; DensityFactorSteady is the lower value used on
	// animation ticks to prevent overlap oscillation.
	DensityFactorInitial float64
	DensityFactorSteady  float64

	// EaseFactor is the fraction of remaining distance a node moves toward
	// its layout target per tick.
	EaseFactor float64
}

// MergeThresholdPresets are the five merge aggressiveness presets exposed by
// the UI, from conservative to aggressive.
var MergeThresholdPresets = []float64{0.40, 0.30, 0.20, 0.15, 0.10}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		ConnectionThreshold:  0.2,
		MergeThreshold:       0.30,
		MinRadius:            40,
		RadiusBase:           40,
		RadiusScale:          12,
		MergedRadiusBase:     60,
		MergedRadiusScale:    15,
		MinMergedRadius:      60,
		MaxMergedRadius:      120,
		DensityFactorInitial: 0.25,
		DensityFactorSteady:  0.15,
		EaseFactor:           0.1,
	}
}

// ValidMergeThreshold reports whether t is inside the supported range.
func ValidMergeThreshold(t float64) bool {
	return t > 0 && t < 1
}
