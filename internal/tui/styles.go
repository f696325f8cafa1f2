package tui

import (
	"github.com/Zuo-Peng/chatprint/internal/period"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.Color("12")  // bright blue
	colorSender = lipgloss.Color("10")  // bright green
	colorMuted  = lipgloss.Color("240") // gray
	colorFrame  = lipgloss.Color("238") // dark gray
	colorDay    = lipgloss.Color("11")  // bright yellow, matches the day groups
	colorNight  = lipgloss.Color("14")  // bright cyan, matches the night groups

	stylePrompt  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleCursor  = lipgloss.NewStyle().Foreground(colorDay).Bold(true)
	styleChatKey = lipgloss.NewStyle().Foreground(colorAccent)
	styleSender  = lipgloss.NewStyle().Foreground(colorSender)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleFilter  = lipgloss.NewStyle().Foreground(colorSender).Bold(true)

	styleList = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFrame)
	stylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent)
	styleStatus = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)

	stylePeriod = map[period.Theme]lipgloss.Style{
		period.ThemeDay:   lipgloss.NewStyle().Foreground(colorDay),
		period.ThemeNight: lipgloss.NewStyle().Foreground(colorNight),
	}
)
