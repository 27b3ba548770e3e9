package accounts

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/launcher-core/internal/application"
	"github.com/bnema/launcher-core/internal/domain"
)

// DefaultTokenLifetime is the lifetime of a freshly issued game token.
const DefaultTokenLifetime = 24 * time.Hour

type RenderOptions struct {
	Now           time.Time
	TokenLifetime time.Duration
}

func renderHeader(count int, s styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render("Launcher Accounts"),
		s.header.Render(fmt.Sprintf("accounts: %d", count)),
	)
}

func renderEmpty(s styles) string {
	return s.empty.Render("No accounts stored. Run `launcher login` to add one.")
}

func renderAccount(account application.AccountView, opts RenderOptions, s styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.account.Render(accountTitle(account.Username, account.ID)),
		s.detail.Render(fmt.Sprintf("type: %s  profile: %s", kindLabel(account.Kind), profileLabel(account.HasProfile))),
		tokenLine(account, opts, s),
	)
}

func tokenLine(account application.AccountView, opts RenderOptions, s styles) string {
	label := s.tokenKey.Render("token:")
	if account.Expires == nil {
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.detail.Render("never expires"))
	}

	if opts.Now.IsZero() {
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ",
			s.detail.Render("expires "+account.Expires.Format(time.RFC3339)))
	}

	if account.Expired {
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ",
			renderProgressBar(0, 24, s), " ",
			s.warning.Render("[expired]"), " ",
			s.detail.Render("run `launcher refresh`"))
	}

	lifetime := opts.TokenLifetime
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	remaining := account.Expires.Sub(opts.Now)
	leftPercent := clampPercent(100 * remaining.Seconds() / lifetime.Seconds())
	expiresStyle := lipgloss.NewStyle().Foreground(interpolateColor(leftPercent, 0, 100))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		label,
		" ",
		renderProgressBar(leftPercent, 24, s),
		" ",
		expiresStyle.Render(formatExpiresRelative(*account.Expires, opts.Now)),
	)
}

func renderProgressBar(leftPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(leftPercent) / 100.0))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatExpiresRelative(expires, now time.Time) string {
	remaining := expires.Sub(now)
	if remaining < time.Hour {
		minutes := int(math.Ceil(remaining.Minutes()))
		if minutes < 1 {
			minutes = 1
		}
		suffix := "minutes"
		if minutes == 1 {
			suffix = "minute"
		}
		return fmt.Sprintf("expires in %d %s (%s)", minutes, suffix, expires.Format("15:04"))
	}

	if remaining < 24*time.Hour {
		hours := int(math.Ceil(remaining.Hours()))
		suffix := "hours"
		if hours == 1 {
			suffix = "hour"
		}
		return fmt.Sprintf("expires in %d %s (%s)", hours, suffix, expires.Format("15:04"))
	}

	days := int(math.Ceil(remaining.Hours() / 24))
	suffix := "days"
	if days == 1 {
		suffix = "day"
	}
	return fmt.Sprintf("expires in %d %s (%s)", days, suffix, expires.Format("15:04 on 02 Jan"))
}

func accountTitle(username string, id domain.AccountID) string {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		trimmed = "unknown"
	}
	return fmt.Sprintf("%s (%s)", trimmed, id)
}

func kindLabel(kind domain.AccountKind) string {
	if kind == "" {
		return "unknown"
	}
	return string(kind)
}

func profileLabel(hasProfile bool) string {
	if hasProfile {
		return "yes"
	}
	return "no (placeholder identity)"
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale: 240 faded at min, 255 bright at max.
	interpolated := 240.0 + (255.0-240.0)*normalized
	return lipgloss.Color(fmt.Sprintf("%d", int(interpolated)))
}
