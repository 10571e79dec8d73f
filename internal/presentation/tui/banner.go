package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	` __      __       _   _                 _    `,
	` \ \    / /__ _ _| |_| |__  ___ _ _  __| |_  `,
	`  \ \/\/ / _ \ '_| / / '_ \/ -_) ' \/ _| ' \ `,
	`   \_/\_/\___/_| |_\_\_.__/\___|_||_\__|_||_|`,
}

var bannerColors = []string{"#38bdf8", "#22d3ee", "#2dd4bf", "#34d399"}

// PrintBanner writes the ASCII banner, coloured when the terminal supports it.
func PrintBanner(w io.Writer, version string, year int) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i])))
	}
	footer := fmt.Sprintf("   v%s · © %d", strings.TrimSpace(version), year)
	fmt.Fprintln(w, termenv.String(footer).Faint())
	fmt.Fprintln(w)
}
