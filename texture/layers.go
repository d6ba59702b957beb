package texture

import (
	"math"
	"math/rand/v2"

	"travelglobe/gfx"
)

// ll is a longitude/latitude pair in degrees.
type ll struct{ Lng, Lat float64 }

var (
	oceanDeep   = gfx.RGB(0x0a, 0x23, 0x4f)
	oceanMid    = gfx.RGB(0x1d, 0x5c, 0xa6)
	landColor   = gfx.RGB(0x2e, 0x7d, 0x32)
	landShadow  = gfx.RGBA(0x12, 0x3a, 0x1a, 0xB0)
	mountainCol = gfx.RGBA(0x1b, 0x4d, 0x20, 0xC0)
	riverColor  = gfx.RGBA(0x2a, 0x6f, 0xc0, 0xE0)
	desertColor = gfx.RGBA(0xd2, 0xb4, 0x78, 0xB4)
	lakeColor   = gfx.RGBA(0x25, 0x66, 0xb4, 0xF0)
	iceColor    = gfx.RGBA(0xf4, 0xf8, 0xff, 0xF0)
)

// continents are coarse outlines of the major landmasses.
var continents = map[string][]ll{
	"north_america": {
		{-168, 66}, {-156, 71}, {-140, 70}, {-125, 70}, {-95, 72}, {-80, 73}, {-62, 60},
		{-55, 52}, {-66, 45}, {-70, 42}, {-76, 35}, {-81, 31}, {-80, 25}, {-82, 29},
		{-90, 29}, {-97, 26}, {-97, 21}, {-90, 21}, {-87, 16}, {-83, 10}, {-79, 8},
		{-84, 9}, {-92, 14}, {-105, 20}, {-110, 24}, {-117, 32}, {-124, 40}, {-124, 48},
		{-133, 56}, {-150, 60}, {-165, 60},
	},
	"south_america": {
		{-80, 9}, {-72, 12}, {-62, 10}, {-50, 1}, {-35, -6}, {-39, -15}, {-48, -26},
		{-58, -35}, {-65, -42}, {-68, -52}, {-72, -54}, {-74, -45}, {-73, -35},
		{-71, -20}, {-76, -14}, {-81, -5}, {-80, 1},
	},
	"europe": {
		{-10, 36}, {-9, 43}, {-2, 44}, {-5, 48}, {2, 51}, {8, 54}, {10, 58}, {5, 62},
		{15, 69}, {28, 71}, {40, 68}, {45, 60}, {40, 50}, {30, 45}, {28, 41}, {24, 38},
		{20, 40}, {12, 44}, {16, 38}, {10, 44}, {3, 43}, {-2, 37},
	},
	"africa": {
		{-17, 21}, {-10, 30}, {-6, 35}, {10, 37}, {20, 32}, {32, 31}, {34, 28}, {43, 12},
		{51, 12}, {40, -3}, {40, -15}, {33, -25}, {27, -34}, {18, -34}, {12, -18},
		{13, -6}, {9, 4}, {-8, 4}, {-15, 10},
	},
	"asia": {
		{28, 41}, {36, 36}, {35, 31}, {43, 13}, {56, 24}, {60, 25}, {67, 24}, {73, 20},
		{77, 8}, {80, 15}, {88, 22}, {92, 21}, {98, 16}, {103, 1}, {105, 10}, {109, 12},
		{107, 21}, {117, 23}, {122, 30}, {122, 40}, {130, 43}, {140, 48}, {141, 53},
		{156, 58}, {163, 60}, {180, 66}, {180, 69}, {140, 72}, {110, 77}, {80, 73},
		{68, 70}, {58, 68}, {45, 60}, {40, 50},
	},
	"australia": {
		{114, -22}, {122, -18}, {130, -12}, {137, -12}, {142, -11}, {146, -19}, {153, -25},
		{153, -32}, {150, -37}, {144, -38}, {138, -35}, {131, -31}, {123, -34}, {115, -34},
		{113, -26},
	},
	"antarctica": {
		{-180, -65}, {-120, -72}, {-60, -64}, {0, -69}, {60, -66}, {120, -66}, {180, -65},
		{180, -90}, {-180, -90},
	},
}

// continentOrder keeps painting independent of map iteration.
var continentOrder = []string{
	"north_america", "south_america", "europe", "africa", "asia", "australia", "antarctica",
}

var mountainRanges = []ll{
	{-110, 45}, {-70, -20}, {10, 46}, {85, 29}, {60, 58}, {-5, 32}, {37, -3}, {148, -28},
}

type river struct{ From, Ctrl, To ll }

var rivers = []river{
	{ll{-73, -4}, ll{-60, -1}, ll{-50, -1}}, // Amazon
	{ll{31, -2}, ll{33, 15}, ll{31, 30}},    // Nile
	{ll{-95, 47}, ll{-90, 38}, ll{-90, 29}}, // Mississippi
	{ll{92, 33}, ll{105, 28}, ll{121, 31}},  // Yangtze
	{ll{79, 30}, ll{84, 25}, ll{90, 22}},    // Ganges
	{ll{100, 56}, ll{92, 62}, ll{86, 72}},   // Yenisei
}

var deserts = [][2]ll{
	{{-15, 30}, {33, 15}},    // Sahara
	{{38, 30}, {56, 15}},     // Arabia
	{{95, 46}, {115, 38}},    // Gobi
	{{120, -20}, {140, -30}}, // Outback
	{{18, -20}, {25, -28}},   // Kalahari
	{{-117, 38}, {-105, 30}},
}

type lake struct {
	At     ll
	Radius float64 // degrees of latitude
}

var lakes = []lake{
	{ll{-85, 45}, 3},   // Great Lakes
	{ll{50, 42}, 3.5},  // Caspian
	{ll{33, -1}, 1.5},  // Victoria
	{ll{107, 53}, 1.2}, // Baikal
	{ll{34, 44}, 2.5},  // Black Sea
}

type archipelago struct {
	At     ll
	Spread float64
	Count  int
}

var archipelagos = []archipelago{
	{ll{138, 36}, 6, 25},  // Japan
	{ll{118, -3}, 15, 60}, // Indonesia
	{ll{122, 12}, 5, 20},  // Philippines
	{ll{-72, 18}, 8, 20},  // Caribbean
	{ll{-3, 54}, 3, 20},   // British Isles
	{ll{172, -41}, 5, 15}, // New Zealand
	{ll{47, -19}, 3, 15},  // Madagascar
	{ll{-19, 65}, 2, 8},   // Iceland
	{ll{-42, 72}, 10, 40}, // Greenland
}

const cloudCount = 160

// layer is one painting pass. Layers run in order and share rng so the
// output depends only on the seed and the resolution.
type layer struct {
	name  string
	paint func(c *canvas, rng *rand.Rand)
}

var layers = []layer{
	{"ocean", paintOcean},
	{"continents", paintContinents},
	{"mountains", paintMountains},
	{"rivers", paintRivers},
	{"deserts", paintDeserts},
	{"lakes", paintLakes},
	{"islands", paintIslands},
	{"clouds", paintClouds},
	{"ice", paintIce},
}

func paintOcean(c *canvas, _ *rand.Rand) {
	c.verticalGradient([]gradientStop{
		{0, oceanDeep},
		{0.5, oceanMid},
		{1, oceanDeep},
	})
}

func (c *canvas) outline(lls []ll) []pt {
	out := make([]pt, len(lls))
	for i, p := range lls {
		out[i] = c.xy(p.Lng, p.Lat)
	}
	return out
}

func paintContinents(c *canvas, _ *rand.Rand) {
	off := math.Max(1, float64(c.w)/512)
	for _, name := range continentOrder {
		poly := c.outline(continents[name])
		shadow := make([]pt, len(poly))
		for i, p := range poly {
			shadow[i] = pt{p.X + off, p.Y + off}
		}
		c.fillPolygon(shadow, landShadow)
		c.fillPolygon(poly, landColor)
	}
}

func paintMountains(c *canvas, rng *rand.Rand) {
	for _, m := range mountainRanges {
		for i := 0; i < 18; i++ {
			p := c.xy(m.Lng+(rng.Float64()*2-1)*6, m.Lat+(rng.Float64()*2-1)*5)
			r := c.sy(0.6 + rng.Float64()*1.2)
			c.fillCircle(p.X, p.Y, math.Max(r, 0.75), mountainCol)
		}
	}
}

func paintRivers(c *canvas, _ *rand.Rand) {
	width := math.Max(1, float64(c.w)/700)
	for _, r := range rivers {
		c.strokeQuad(
			c.xy(r.From.Lng, r.From.Lat),
			c.xy(r.Ctrl.Lng, r.Ctrl.Lat),
			c.xy(r.To.Lng, r.To.Lat),
			width, riverColor,
		)
	}
}

func paintDeserts(c *canvas, _ *rand.Rand) {
	for _, d := range deserts {
		a, b := c.xy(d[0].Lng, d[0].Lat), c.xy(d[1].Lng, d[1].Lat)
		c.fillRect(a.X, a.Y, b.X, b.Y, desertColor)
	}
}

func paintLakes(c *canvas, _ *rand.Rand) {
	for _, l := range lakes {
		p := c.xy(l.At.Lng, l.At.Lat)
		c.fillEllipse(p.X, p.Y, c.sx(l.Radius), c.sy(l.Radius), 0, lakeColor)
	}
}

func paintIslands(c *canvas, rng *rand.Rand) {
	for _, a := range archipelagos {
		for i := 0; i < a.Count; i++ {
			p := c.xy(a.At.Lng+(rng.Float64()*2-1)*a.Spread, a.At.Lat+(rng.Float64()*2-1)*a.Spread/2)
			r := c.sy(0.3 + rng.Float64()*0.9)
			c.fillCircle(p.X, p.Y, math.Max(r, 0.75), landColor)
		}
	}
}

func paintClouds(c *canvas, rng *rand.Rand) {
	w, h := float64(c.w), float64(c.h)
	for i := 0; i < cloudCount; i++ {
		x := rng.Float64() * w
		y := h*0.08 + rng.Float64()*h*0.84
		rx := w * (0.01 + rng.Float64()*0.04)
		ry := rx * (0.3 + rng.Float64()*0.4)
		rot := rng.Float64() * math.Pi
		alpha := uint8(40 + rng.IntN(60))
		c.fillEllipse(x, y, rx, ry, rot, gfx.RGBA(0xFF, 0xFF, 0xFF, alpha))
	}
}

func paintIce(c *canvas, _ *rand.Rand) {
	w, h := float64(c.w), float64(c.h)
	c.fillRect(0, 0, w, h*0.06, iceColor)
	c.fillEllipse(w/2, 0, w*0.55, h*0.09, 0, iceColor)
	c.fillRect(0, h*0.91, w, h, iceColor)
}
