package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for stylemap.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Subtle gradient-like color scheme (Indigo/Violet)
	s1 := termenv.String("      _         _                            ").Foreground(p.Color("#818cf8"))
	s2 := termenv.String("  ___| |_ _   _| | ___ _ __ ___   __ _ _ __  ").Foreground(p.Color("#a78bfa"))
	s3 := termenv.String(" / __| __| | | | |/ _ \\ '_ ` _ \\ / _` | '_ \\ ").Foreground(p.Color("#c084fc"))
	s4 := termenv.String(" \\__ \\ |_| |_| | |  __/ | | | | | (_| | |_) |").Foreground(p.Color("#e879f9"))
	s5 := termenv.String(" |___/\\__|\\__, |_|\\___|_| |_| |_|\\__,_| .__/ ").Foreground(p.Color("#f472b6"))
	s6 := termenv.String("          |___/                       |_|    ").Foreground(p.Color("#fb7185"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	if version != "" {
		v := termenv.String("  v" + strings.TrimSpace(version)).Foreground(p.Color("#94a3b8"))
		fmt.Println(v)
	}
	fmt.Println()
}
