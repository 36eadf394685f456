// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta de la terminal. Los tonos cálidos marcan riesgo, los fríos lo benigno.
var (
	// AlarmRed - riesgo crítico
	AlarmRed = pterm.NewRGB(215, 38, 56)

	// WarningAmber - riesgo alto
	WarningAmber = pterm.NewRGB(255, 107, 53)

	// CautionGold - sospechoso
	CautionGold = pterm.NewRGB(255, 182, 39)

	// SafeTeal - legítimo, operaciones exitosas
	SafeTeal = pterm.NewRGB(0, 206, 209)

	// MutedGray - texto secundario, señales omitidas
	MutedGray = pterm.NewRGB(120, 120, 120)

	// PaperWhite - texto principal
	PaperWhite = pterm.NewRGB(232, 232, 232)
)

// Estilos preconfigurados
var (
	StyleCritical  = AlarmRed.ToRGBStyle()
	StyleError     = WarningAmber.ToRGBStyle()
	StyleWarning   = CautionGold.ToRGBStyle()
	StyleSuccess   = SafeTeal.ToRGBStyle()
	StyleSecondary = MutedGray.ToRGBStyle()
	StyleText      = PaperWhite.ToRGBStyle()
)

// DisableColor desactiva colores y estilos (salida no interactiva, tests).
func DisableColor() {
	pterm.DisableStyling()
}

// EnableColor reactiva colores y estilos.
func EnableColor() {
	pterm.EnableStyling()
}
