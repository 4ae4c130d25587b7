package style

import (
	"github.com/pterm/pterm"
)

// Status classifies a resolution outcome for terminal badges
type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
	StatusWarning Status = "warning"
)

// StatusStyle returns the appropriate pterm style for a status badge
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusValid:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case StatusInvalid:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	case StatusWarning:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Badge renders the short uppercase badge for a status
func Badge(status Status) string {
	switch status {
	case StatusValid:
		return StatusStyle(status).Sprint(" OK ")
	case StatusInvalid:
		return StatusStyle(status).Sprint(" INVALID ")
	case StatusWarning:
		return StatusStyle(status).Sprint(" WARN ")
	default:
		return string(status)
	}
}
