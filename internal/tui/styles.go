package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary       = lipgloss.Color("#00BFFF") // Cyan: primary accent
	colorAccent        = lipgloss.Color("#FFD700") // Gold: favorites
	colorSuccess       = lipgloss.Color("#00E676") // Green: read
	colorPartial       = lipgloss.Color("#5B8DEF") // Blue: in progress
	colorDanger        = lipgloss.Color("#FF5252") // Red: errors, reset
	colorMuted         = lipgloss.Color("#636363") // Gray: de-emphasized
	colorMutedLight    = lipgloss.Color("#8C8C8C") // Lighter gray: normal text
	colorWhite         = lipgloss.Color("#EEEEEE") // Off-white: primary text
	colorBrightWhite   = lipgloss.Color("#FFFFFF") // Pure white: emphatic text
	colorSurface       = lipgloss.Color("#1E1E2E") // Dark surface: status bar bg
	colorSurfaceBright = lipgloss.Color("#2A2A3C") // Lighter surface: selected row bg
	colorSurfaceDim    = lipgloss.Color("#181825") // Darkest surface: footer bg
)

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

// Status icons for books and chapters.
const (
	iconRead    = "●"
	iconPartial = "◐"
	iconUnread  = "○"
	iconStar    = "★"
)

// Status bar styles.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStatusLabel = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleStatusValue = lipgloss.NewStyle().
				Foreground(colorWhite)
)

// Breadcrumb bar style.
var styleBreadcrumb = lipgloss.NewStyle().
	Background(colorSurfaceBright).
	Foreground(colorMutedLight).
	Padding(0, 1)

// Book and chapter row styles.
var (
	styleRowSelected = lipgloss.NewStyle().
				Foreground(colorBrightWhite).
				Bold(true)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleRowRead = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleRowPartial = lipgloss.NewStyle().
			Foreground(colorPartial)

	styleRowUnread = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleStar = lipgloss.NewStyle().
			Foreground(colorAccent)

	styleSelectionIndicator = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleSectionTitle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleDim = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Chapter grid cell styles.
var (
	styleCellRead = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	styleCellUnread = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleCellCursor = lipgloss.NewStyle().
			Background(colorSurfaceBright).
			Foreground(colorBrightWhite).
			Bold(true)
)

// Reflection panel style.
var styleReflection = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Foreground(colorWhite).
	Padding(0, 1)

// Prompt overlay styles.
var (
	stylePromptOverlay = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(colorAccent).
				Padding(1, 2).
				Bold(true)

	styleDangerOverlay = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(colorDanger).
				Padding(1, 2).
				Bold(true)

	stylePromptAction = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger)
)

// Footer styles: top border, clear key/desc contrast.
var (
	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorSurfaceDim).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(colorMuted)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleFooterSep = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleFooterDesc = lipgloss.NewStyle().
			Foreground(colorMutedLight)
)
