package console

import (
	"strconv"

	"pkt.systems/boxchat/schema"
)

type rgb struct {
	r int
	g int
	b int
}

type tuiTheme struct {
	Name     schema.ThemeName
	Color    bool
	FrameFG  rgb
	HeaderFG rgb
	PromptFG rgb
	NoticeFG rgb
}

const ansiReset = "\x1b[0m"

var tuiThemes = map[schema.ThemeName]tuiTheme{
	"outrun": {
		Name:     "outrun",
		Color:    true,
		FrameFG:  rgb{r: 110, g: 136, b: 255},
		HeaderFG: rgb{r: 0, g: 229, b: 255},
		PromptFG: rgb{r: 255, g: 91, b: 189},
		NoticeFG: rgb{r: 154, g: 163, b: 178},
	},
	"plain": {
		Name: "plain",
	},
}

func themeForName(name schema.ThemeName) tuiTheme {
	if name == "" {
		name = schema.DefaultTheme
	}
	if theme, ok := tuiThemes[name]; ok {
		return theme
	}
	return tuiThemes[schema.DefaultTheme]
}

func ansiFgRGB(c rgb) string {
	return "\x1b[38;2;" + strconv.Itoa(c.r) + ";" + strconv.Itoa(c.g) + ";" + strconv.Itoa(c.b) + "m"
}
