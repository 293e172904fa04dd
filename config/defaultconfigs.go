package config

var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		Cells: map[string]CellStyle{
			".": {Symbol: '·', Color: 240},
			"x": {Symbol: '█', Color: 60},
			"0": {Symbol: '0', Color: 109},
			"1": {Symbol: '1', Color: 174},
			"C": {Symbol: '$', Color: 221},
			"E": {Symbol: 'E', Color: 160},
			"W": {Symbol: 'W', Color: 150},
		},
		Unknown:     CellStyle{Symbol: '?', Color: 245},
		OwnBotColor: 255,
		BorderColor: 60,
	}
}

// DefaultConfig returns the configuration used when nothing is set: random
// strategy, no history, no mirror.
func DefaultConfig() *Config {
	cells := make(map[string]CellStyle, len(DefaultTheme.Cells))
	for k, v := range DefaultTheme.Cells {
		cells[k] = v
	}
	theme := DefaultTheme
	theme.Cells = cells

	return &Config{
		Strategy: StrategyConfig{Name: "random"},
		Log:      LogConfig{Level: "INFO"},
		Mirror:   MirrorConfig{ClientID: "hackman-bot", Topic: "hackman"},
		Theme:    theme,
	}
}
