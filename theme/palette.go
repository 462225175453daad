package theme

// RGB is a single palette color
type RGB [3]uint8

// Palette is an ordered color ramp sampled by normalized position
type Palette struct {
	Colors []RGB
}

// Brat returns the built-in palette: the signature green with a dark
// ramp below and warm accents above.
func Brat() *Palette {
	return &Palette{
		Colors: []RGB{
			{0x10, 0x14, 0x08}, // near-black green
			{0x2a, 0x3d, 0x0c},
			{0x4a, 0x6e, 0x08},
			{0x6c, 0xa2, 0x04},
			{0x8a, 0xce, 0x00}, // brat green
			{0xb5, 0xe5, 0x4d},
			{0xd9, 0xf2, 0x99},
			{0xf2, 0xb8, 0x30}, // warning amber
			{0xe8, 0x5d, 0x4a}, // hot red
			{0xff, 0xff, 0xff},
		},
	}
}

// Lookup samples the ramp at a normalized position 0-1 with linear
// interpolation between stops.
func (p *Palette) Lookup(norm float64) RGB {
	if len(p.Colors) == 0 {
		return RGB{}
	}
	if norm <= 0 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[len(p.Colors)-1]
	}

	pos := norm * float64(len(p.Colors)-1)
	i := int(pos)
	frac := pos - float64(i)

	a, b := p.Colors[i], p.Colors[i+1]
	var out RGB
	for c := 0; c < 3; c++ {
		out[c] = uint8(float64(a[c]) + frac*(float64(b[c])-float64(a[c])))
	}
	return out
}
