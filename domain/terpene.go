package domain

// TerpeneProfile maps a terpene name (e.g. "myrcene", "limonene") to an
// intensity, conventionally in [0, 1]. The key set is open: any terpene
// string is allowed. An empty profile means "no terpene data available".
type TerpeneProfile map[string]float64

// Clone returns an independent copy so callers can mutate freely.
func (p TerpeneProfile) Clone() TerpeneProfile {
	if p == nil {
		return nil
	}
	out := make(TerpeneProfile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
