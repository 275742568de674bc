package treelight

import (
	"io"
	"strings"

	"go.gopad.dev/treelight/themes"
)

const (
	csi       = "\x1b["
	sgrReset  = "\x1b[0m"
	sgrBold   = "1"
	sgrItalic = "3"
	sgrStrike = "9"
)

// underlineSGR maps an underline variant to its escape sequence. The styled
// variants use the colon subparameter form of SGR 4 supported by modern
// terminals; plain underline stays the classic parameter so it degrades
// everywhere.
func underlineSGR(u themes.UnderlineStyle) string {
	switch u {
	case themes.UnderlineSolid:
		return csi + "4m"
	case themes.UnderlineDouble:
		return csi + "4:2m"
	case themes.UnderlineWavy:
		return csi + "4:3m"
	case themes.UnderlineDotted:
		return csi + "4:4m"
	case themes.UnderlineDashed:
		return csi + "4:5m"
	default:
		return ""
	}
}

// sgr renders the full escape prefix for a style, with colors degraded to
// the formatter's color profile. The zero style renders to "".
func (f *Formatter) sgr(style themes.Style) string {
	var params []string

	if style.Fg != "" {
		if color := f.cfg.ColorProfile.Color(style.Fg); color != nil {
			if seq := color.Sequence(false); seq != "" {
				params = append(params, seq)
			}
		}
	}
	if style.Bg != "" {
		if color := f.cfg.ColorProfile.Color(style.Bg); color != nil {
			if seq := color.Sequence(true); seq != "" {
				params = append(params, seq)
			}
		}
	}
	if style.Bold {
		params = append(params, sgrBold)
	}
	if style.Italic {
		params = append(params, sgrItalic)
	}
	if style.TextDecoration.Strikethrough {
		params = append(params, sgrStrike)
	}

	var sb strings.Builder
	if len(params) > 0 {
		sb.WriteString(csi)
		sb.WriteString(strings.Join(params, ";"))
		sb.WriteString("m")
	}
	sb.WriteString(underlineSGR(style.TextDecoration.Underline))
	return sb.String()
}

// formatANSI renders the terminal backend. Each styled token is wrapped in
// its escape prefix and exactly one reset; unstyled runs pass through
// verbatim, so stripping the escapes yields the source byte for byte.
func (f *Formatter) formatANSI(w io.Writer, source []byte, captures []Capture, regions []Region) error {
	theme := f.cfg.Theme

	var err error
	for r := range runs(source, f.cfg.Language, captures, regions) {
		prefix := f.sgr(ResolveStack(theme, r.stack))

		if prefix != "" {
			if _, err = io.WriteString(w, prefix); err != nil {
				return err
			}
		}
		if _, err = w.Write(source[r.start:r.end]); err != nil {
			return err
		}
		if prefix != "" {
			if _, err = io.WriteString(w, sgrReset); err != nil {
				return err
			}
		}
	}
	return nil
}
