// Package classify suggests a bookkeeping category for a transaction from the
// words in its line items and notes. Suggestions are advisory only: a category
// chosen by the user always takes precedence, and callers must not let a
// suggestion overwrite an explicit choice.
package classify

import "strings"

// Suggestion is a scored category guess. Confidence is the share of keyword
// hits belonging to the winning category, in (0, 1].
type Suggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// keywordTable maps lowercase keywords to category names. The table is static
// configuration, not learned state.
var keywordTable = map[string]string{
	"bahan":       "Bahan Baku",
	"tepung":      "Bahan Baku",
	"gula":        "Bahan Baku",
	"minyak":      "Bahan Baku",
	"beras":       "Bahan Baku",
	"kain":        "Bahan Baku",
	"gaji":        "Gaji Karyawan",
	"upah":        "Gaji Karyawan",
	"bonus":       "Gaji Karyawan",
	"sewa":        "Sewa Tempat",
	"kontrakan":   "Sewa Tempat",
	"listrik":     "Utilitas",
	"air":         "Utilitas",
	"internet":    "Utilitas",
	"pulsa":       "Utilitas",
	"bensin":      "Transportasi",
	"ongkir":      "Transportasi",
	"transport":   "Transportasi",
	"kirim":       "Transportasi",
	"iklan":       "Pemasaran",
	"promosi":     "Pemasaran",
	"banner":      "Pemasaran",
	"penjualan":   "Penjualan",
	"jual":        "Penjualan",
	"pesanan":     "Penjualan",
	"perbaikan":   "Perawatan",
	"servis":      "Perawatan",
	"maintenance": "Perawatan",
}

// Suggest scores the text against the keyword table and returns the best
// category. The second return value is false when no keyword matched.
func Suggest(text string) (Suggestion, bool) {
	scores := make(map[string]int)
	total := 0

	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,;:()\"'")
		if category, ok := keywordTable[token]; ok {
			scores[category]++
			total++
		}
	}

	if total == 0 {
		return Suggestion{}, false
	}

	best := Suggestion{}
	for category, hits := range scores {
		confidence := float64(hits) / float64(total)
		if confidence > best.Confidence {
			best = Suggestion{Category: category, Confidence: confidence}
		}
	}
	return best, true
}
