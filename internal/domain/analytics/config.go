package analytics

// Valores por defecto de la clasificación y del score de riesgo.
const (
	DefaultLimitA = 80.0 // % acumulado máximo de la clase A
	DefaultLimitB = 95.0 // % acumulado máximo de la clase B

	DefaultPercentilAlta    = 0.8
	DefaultPercentilExtrema = 0.9

	DefaultPesoEstoqueBaixo   = 2
	DefaultPesoSaidaAlta      = 2
	DefaultPesoSaidaExtrema   = 1
	DefaultPesoGiroAlto       = 1
	DefaultPesoTipoCritico    = 1
	DefaultPesoRupturaPressao = 2
)

// Clases ABC.
const (
	ClasseA = "A"
	ClasseB = "B"
	ClasseC = "C"
)

// DefaultCriticalMarkers devuelve los marcadores de categoría crítica (EPI y EPC).
// Se comparan sin tildes ni mayúsculas como substring de la categoría.
func DefaultCriticalMarkers() []string {
	return []string{"epi", "epc"}
}

// ParetoLimits cortes del % acumulado para las clases A y B.
type ParetoLimits struct {
	A float64 `json:"limitA"`
	B float64 `json:"limitB"`
}

// DefaultParetoLimits 80/95.
func DefaultParetoLimits() ParetoLimits {
	return ParetoLimits{A: DefaultLimitA, B: DefaultLimitB}
}

// withDefaults reemplaza los cortes no positivos por los valores por defecto.
func (l ParetoLimits) withDefaults() ParetoLimits {
	if l.A <= 0 {
		l.A = DefaultLimitA
	}
	if l.B <= 0 {
		l.B = DefaultLimitB
	}
	return l
}

// RiskWeights peso de cada flag en el score. Un peso 0 desactiva la flag en el score.
type RiskWeights struct {
	EstoqueBaixo   int `json:"estoqueBaixo"`
	SaidaAlta      int `json:"saidaAlta"`
	SaidaExtrema   int `json:"saidaExtrema"`
	GiroAlto       int `json:"giroAlto"`
	TipoCritico    int `json:"tipoCritico"`
	RupturaPressao int `json:"rupturaPressao"`
}

// DefaultRiskWeights 2/2/1/1/1/2.
func DefaultRiskWeights() RiskWeights {
	return RiskWeights{
		EstoqueBaixo:   DefaultPesoEstoqueBaixo,
		SaidaAlta:      DefaultPesoSaidaAlta,
		SaidaExtrema:   DefaultPesoSaidaExtrema,
		GiroAlto:       DefaultPesoGiroAlto,
		TipoCritico:    DefaultPesoTipoCritico,
		RupturaPressao: DefaultPesoRupturaPressao,
	}
}

// RiskConfig parámetros del score de riesgo operacional.
type RiskConfig struct {
	Weights         RiskWeights
	CriticalMarkers []string // nil = DefaultCriticalMarkers
}

// DefaultRiskConfig pesos y marcadores por defecto.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{Weights: DefaultRiskWeights(), CriticalMarkers: DefaultCriticalMarkers()}
}

// PercentileTargets percentiles usados como umbrales dinámicos.
type PercentileTargets struct {
	Alta    float64 `json:"alta"`    // salida alta y giro alto
	Extrema float64 `json:"extrema"` // salida extrema
}

// DefaultPercentileTargets 0.8 / 0.9.
func DefaultPercentileTargets() PercentileTargets {
	return PercentileTargets{Alta: DefaultPercentilAlta, Extrema: DefaultPercentilExtrema}
}

func (p PercentileTargets) withDefaults() PercentileTargets {
	if p.Alta <= 0 || p.Alta > 1 {
		p.Alta = DefaultPercentilAlta
	}
	if p.Extrema <= 0 || p.Extrema > 1 {
		p.Extrema = DefaultPercentilExtrema
	}
	return p
}

// Config agrupa toda la configuración del motor.
type Config struct {
	Pareto    ParetoLimits
	Risk      RiskConfig
	Percentis PercentileTargets
}

// DefaultConfig configuración con todos los valores por defecto.
func DefaultConfig() Config {
	return Config{
		Pareto:    DefaultParetoLimits(),
		Risk:      DefaultRiskConfig(),
		Percentis: DefaultPercentileTargets(),
	}
}
