package export

import (
	"archive/zip"
	"fmt"
	"io"
	"regexp"

	"github.com/UnknownOlympus/plaza/internal/mapview"
	"github.com/UnknownOlympus/plaza/internal/models"
	svg "github.com/ajstarks/svgo"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

const (
	cardWidth  = 360
	cardHeight = 120
	cardFont   = "font-family:Arial, sans-serif"
)

type card struct {
	Ref        string
	Name       string
	Units      int
	UnitPrice  string
	MeanPrice  string
	Bedrooms   string
	PillWidth  int
	PillCenter int
	NameX      int
}

// WriteCards writes a ZIP archive holding one SVG summary card per development.
func WriteCards(w io.Writer, devs []models.Development) error {
	archive := zip.NewWriter(w)

	used := make(map[string]int)
	for _, dev := range devs {
		name := cardFileName(dev.Reference, used)
		entry, err := archive.Create(name)
		if err != nil {
			return fmt.Errorf("failed to add card %s: %w", name, err)
		}
		newCard(dev).draw(svg.New(entry))
	}

	if err := archive.Close(); err != nil {
		return fmt.Errorf("failed to finish card archive: %w", err)
	}
	return nil
}

func newCard(dev models.Development) card {
	const (
		charWidth = 8
		padding   = 16
		maxName   = 30
	)
	bedrooms := dev.Bedrooms
	if bedrooms == "" {
		bedrooms = "N/A"
	}
	name := []rune(dev.DisplayName())
	if len(name) > maxName {
		name = append(name[:maxName-3], []rune("...")...)
	}
	width := len([]rune(dev.Reference))*charWidth + padding
	return card{
		Ref:        dev.Reference,
		Name:       string(name),
		Units:      dev.Units,
		UnitPrice:  mapview.PriceLabel(dev.UnitPrice),
		MeanPrice:  mapview.AmountLabel(dev.MeanPrice),
		Bedrooms:   bedrooms,
		PillWidth:  width,
		PillCenter: 12 + width/2,
		NameX:      12 + width + 8,
	}
}

func cardFileName(ref string, used map[string]int) string {
	base := unsafeName.ReplaceAllString(ref, "_")
	if base == "" {
		base = "card"
	}
	used[base]++
	if n := used[base]; n > 1 {
		return fmt.Sprintf("%s_%d.svg", base, n)
	}
	return base + ".svg"
}

// draw renders the card. Text content is XML-escaped by the canvas.
func (c card) draw(canvas *svg.SVG) {
	canvas.Start(cardWidth, cardHeight)
	canvas.Roundrect(0, 0, cardWidth, cardHeight, 8, 8, "fill:#252525;stroke:#3a3a3a")
	canvas.Roundrect(12, 12, c.PillWidth, 22, 11, 11, "fill:#3a86ff")
	canvas.Text(c.PillCenter, 27, c.Ref, cardFont+";font-size:12px;font-weight:bold;fill:#ffffff;text-anchor:middle")
	canvas.Text(c.NameX, 28, c.Name, cardFont+";font-size:13px;font-weight:bold;fill:#ffffff")
	canvas.Text(12, 64, fmt.Sprintf("Uds: %d | %s", c.Units, c.UnitPrice), cardFont+";font-size:12px;fill:#b0b0b0")
	canvas.Text(12, 86, fmt.Sprintf("Med: %s | Tip: %s", c.MeanPrice, c.Bedrooms), cardFont+";font-size:12px;fill:#b0b0b0")
	canvas.End()
}
