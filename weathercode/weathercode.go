// Package weathercode maps WMO weather interpretation codes, as returned by
// Open-Meteo, to display labels.
package weathercode

const Unknown = "Desconhecido"

var labels = map[int]string{
	0:  "Céu Limpo",
	1:  "Predom. Limpo",
	2:  "Parcial. Nublado",
	3:  "Nublado",
	45: "Nevoeiro",
	48: "Nevoeiro Gelo",
	51: "Garoa Leve",
	53: "Garoa Mod.",
	55: "Garoa Densa",
	61: "Chuva Fraca",
	63: "Chuva Mod.",
	65: "Chuva Forte",
	80: "Pancadas Chuva",
	95: "Trovoada",
	96: "Trovoada c/ Granizo",
}

// Code is a WMO weather interpretation code.
type Code int

// String returns the display label, so a Code prints as its description.
func (code Code) String() string {
	return Label(int(code))
}

// Label returns the display label for code, or Unknown.
func Label(code int) string {
	if label, ok := labels[code]; ok {
		return label
	}
	return Unknown
}
