// Package scoring fuses the keyword and classifier signals into the final
// hybrid risk score and writes the text explanation.
package scoring

import (
	"math"

	"github.com/shopspring/decimal"

	"fraudtect/internal/core/domain"
)

// Fusion weights. The keyword score is scaled by KeywordScale before weighting.
const (
	MLWeight      = 0.6
	KeywordWeight = 0.4
	KeywordScale  = 5
)

// Round2 redondea a dos decimales con mitades lejos de cero.
func Round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

// Clamp limita f a [lo, hi].
func Clamp(f, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, f))
}

// Fuse combina el score léxico y la probabilidad del modelo (0-100) en un
// score acotado a [0,100] con dos decimales.
func Fuse(lexical int, mlProb float64) float64 {
	return Round2(FuseRaw(lexical, mlProb))
}

// FuseRaw es Fuse sin redondear. El veredicto se decide sobre este valor,
// así 64.996 sigue siendo "Likely Scam" aunque se muestre como 65.
func FuseRaw(lexical int, mlProb float64) float64 {
	raw := MLWeight*mlProb + KeywordWeight*float64(lexical*KeywordScale)
	return Clamp(raw, 0, 100)
}

// Confidence mide la distancia de la probabilidad al punto de indecisión.
// No interviene en el score fusionado.
func Confidence(mlProb float64) float64 {
	return Round2(math.Abs(mlProb-50) * 2)
}

// Verdict retorna el tier de texto para un score fusionado.
func Verdict(score float64) domain.Verdict {
	return domain.TextVerdictFromScore(score)
}
