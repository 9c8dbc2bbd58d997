package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme contains all configurable visual styles of the front end.
type Theme struct {
	Name string

	// Monochrome drops the field's cell colors.
	Monochrome bool

	// Titles and text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style

	// Menu styles
	MenuItemNormal lipgloss.Style
	MenuItemActive lipgloss.Style

	// Level screen
	FieldBorder  lipgloss.Style
	PoolItem     lipgloss.Style
	PoolActive   lipgloss.Style
	PoolPlaced   lipgloss.Style
	StrengthOK   lipgloss.Style
	StrengthLow  lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style
	Warning      lipgloss.Style
	Notice       lipgloss.Style
	Help         lipgloss.Style
	TableHeader  lipgloss.Color
	TableSelectF lipgloss.Color
	TableSelectB lipgloss.Color
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("151")),
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		MenuItemNormal: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),

		FieldBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		PoolItem:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1),
		PoolActive: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1),
		PoolPlaced: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true).Padding(0, 1),

		StrengthOK:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		StrengthLow: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Failure:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Notice:      lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Italic(true),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		TableHeader:  lipgloss.Color("240"),
		TableSelectF: lipgloss.Color("229"),
		TableSelectB: lipgloss.Color("57"),
	}
}

// PastelTheme returns a softer pastel theme.
func PastelTheme() Theme {
	theme := DefaultTheme()
	theme.Name = "pastel"
	theme.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("218")).Bold(true)
	theme.Subtitle = lipgloss.NewStyle().Foreground(lipgloss.Color("183"))
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	theme.PoolActive = lipgloss.NewStyle().Foreground(lipgloss.Color("236")).Background(lipgloss.Color("218")).Padding(0, 1)
	theme.StrengthOK = lipgloss.NewStyle().Foreground(lipgloss.Color("157")).Bold(true)
	theme.StrengthLow = lipgloss.NewStyle().Foreground(lipgloss.Color("223"))
	theme.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("157")).Bold(true)
	theme.Failure = lipgloss.NewStyle().Foreground(lipgloss.Color("210")).Bold(true)
	theme.Notice = lipgloss.NewStyle().Foreground(lipgloss.Color("123")).Italic(true)
	theme.TableSelectF = lipgloss.Color("236")
	theme.TableSelectB = lipgloss.Color("218")
	return theme
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Name = "monochrome"
	theme.Monochrome = true
	theme.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.Subtitle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	theme.PoolActive = lipgloss.NewStyle().Reverse(true).Padding(0, 1)
	theme.StrengthOK = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.StrengthLow = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	theme.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.Failure = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true)
	theme.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.Notice = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Italic(true)
	theme.TableSelectF = lipgloss.Color("0")
	theme.TableSelectB = lipgloss.Color("250")
	return theme
}

// ThemeByName returns the named theme, or the default one for unknown names.
func ThemeByName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pastel":
		return PastelTheme()
	case "monochrome", "mono":
		return MonochromeTheme()
	default:
		return DefaultTheme()
	}
}
