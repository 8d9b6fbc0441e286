package location

// brazilianStates maps federative unit names, as the geocoders spell them
// in Portuguese, to their two-letter codes.
var brazilianStates = map[string]string{
	"Acre":                "AC",
	"Alagoas":             "AL",
	"Amapá":               "AP",
	"Amazonas":            "AM",
	"Bahia":               "BA",
	"Ceará":               "CE",
	"Distrito Federal":    "DF",
	"Espírito Santo":      "ES",
	"Goiás":               "GO",
	"Maranhão":            "MA",
	"Mato Grosso":         "MT",
	"Mato Grosso do Sul":  "MS",
	"Minas Gerais":        "MG",
	"Pará":                "PA",
	"Paraíba":             "PB",
	"Paraná":              "PR",
	"Pernambuco":          "PE",
	"Piauí":               "PI",
	"Rio de Janeiro":      "RJ",
	"Rio Grande do Norte": "RN",
	"Rio Grande do Sul":   "RS",
	"Rondônia":            "RO",
	"Roraima":             "RR",
	"Santa Catarina":      "SC",
	"São Paulo":           "SP",
	"Sergipe":             "SE",
	"Tocantins":           "TO",
}

// RegionCode returns the short code for a region name, and whether the
// name was in the table.
func RegionCode(name string) (string, bool) {
	code, ok := brazilianStates[name]
	return code, ok
}
