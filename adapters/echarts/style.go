package echarts

// StyleConfig holds the visual settings shared by every generated chart
type StyleConfig struct {
	Palette []string

	ColorBackground string
	ColorText       string
	ColorTextMuted  string
	ColorBorder     string
	ColorGrid       string
	ColorTooltip    string

	FontFamily      string
	FontSizeTitle   int
	FontSizeLabel   int
	FontSizeTooltip int

	AnimationDuration int
	LineWidth         int
	MarkerSize        int
}

// DefaultStyleConfig returns a light theme with the qualitative palette the
// dashboard has always used
func DefaultStyleConfig() *StyleConfig {
	return &StyleConfig{
		Palette: []string{
			"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
			"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
		},
		ColorBackground:   "#ffffff",
		ColorText:         "#2a3f5f",
		ColorTextMuted:    "#506784",
		ColorBorder:       "#c8d4e3",
		ColorGrid:         "#e5ecf6",
		ColorTooltip:      "rgba(255, 255, 255, 0.95)",
		FontFamily:        "\"Open Sans\", verdana, arial, sans-serif",
		FontSizeTitle:     16,
		FontSizeLabel:     12,
		FontSizeTooltip:   12,
		AnimationDuration: 400,
		LineWidth:         2,
		MarkerSize:        8,
	}
}

// Color returns the palette entry for series i, cycling when exhausted
func (s *StyleConfig) Color(i int) string {
	if len(s.Palette) == 0 {
		return s.ColorText
	}
	return s.Palette[i%len(s.Palette)]
}
