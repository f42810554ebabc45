package render

// RunStyle captures the inline formatting shared by the PDF and DOCX exporters.
// Size is in half-points, the unit OOXML uses; the PDF exporter halves it.
type RunStyle struct {
	Bold   bool
	Italic bool
	Size   int
	Color  string
}

const (
	HeadingColor = "1F2937"
	NameColor    = "111111"
	MetaColor    = "4B5563"
	NameSize     = 36
	TitleSize    = 24
	HeadingSize  = 24
	BodySize     = 21
)

// StyleMap centralizes the formatting for key resume elements.
var StyleMap = map[string]RunStyle{
	"name": {
		Bold:  true,
		Size:  NameSize,
		Color: NameColor,
	},
	"title": {
		Size:  TitleSize,
		Color: HeadingColor,
	},
	"contact": {
		Size:  BodySize,
		Color: MetaColor,
	},
	"sectionHeading": {
		Bold:  true,
		Size:  HeadingSize,
		Color: HeadingColor,
	},
	"roleLine": {
		Bold: true,
		Size: BodySize,
	},
	"meta": {
		Italic: true,
		Size:   BodySize,
		Color:  MetaColor,
	},
	"body": {
		Size: BodySize,
	},
}

func hexToRGB(hex string) (int, int, int) {
	if len(hex) != 6 {
		return 0, 0, 0
	}
	parse := func(s string) int {
		v := 0
		for _, ch := range s {
			v <<= 4
			switch {
			case ch >= '0' && ch <= '9':
				v |= int(ch - '0')
			case ch >= 'a' && ch <= 'f':
				v |= int(ch-'a') + 10
			case ch >= 'A' && ch <= 'F':
				v |= int(ch-'A') + 10
			}
		}
		return v
	}
	return parse(hex[0:2]), parse(hex[2:4]), parse(hex[4:6])
}
