package filter

import "fmt"

// Conditioner chains the full normalize -> detrend cascade -> smooth
// pipeline over one sample window. All stages are value-only transforms;
// timestamp alignment with the source window is preserved.
type Conditioner struct {
	normalizer *Normalizer
	detrender  *Detrender
	smoother   *Smoother
}

// ConditionerConfig holds the tunables for the conditioning pipeline.
type ConditionerConfig struct {
	WindowLen      int
	NormBlockSize  int
	DetrendSpreads []int
	SmoothRatioK   float64
}

// NewConditioner validates the configuration and builds the pipeline.
func NewConditioner(cfg ConditionerConfig) (*Conditioner, error) {
	normalizer, err := NewNormalizer(cfg.WindowLen, cfg.NormBlockSize)
	if err != nil {
		return nil, fmt.Errorf("conditioner: %w", err)
	}
	smoother, err := NewSmoother(cfg.SmoothRatioK)
	if err != nil {
		return nil, fmt.Errorf("conditioner: %w", err)
	}
	return &Conditioner{
		normalizer: normalizer,
		detrender:  NewDetrender(cfg.DetrendSpreads...),
		smoother:   smoother,
	}, nil
}

// Apply runs the full conditioning chain and returns a new slice.
func (c *Conditioner) Apply(values []float64) []float64 {
	return c.smoother.Apply(c.detrender.Apply(c.normalizer.Apply(values)))
}
