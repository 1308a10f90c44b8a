package tui

// Color constants for the durok theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text
	ColorPrimaryText   = "#E6EAF2"
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383"
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240"

	// Accents
	ColorAccentMain   = "#7C3AED" // Logo, selection, active borders
	ColorAccentBright = "#A78BFA" // Clock, highlights

	// Timer and totals state
	ColorError   = "#EF4444" // Exceeded / over target
	ColorSuccess = "#22C55E" // Running, entry logged
	ColorWarning = "#F59E0B" // Paused
)
