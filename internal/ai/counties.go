package ai

import (
	"strings"

	"sauti/backend/internal/models"
)

// KenyanCounties is the closed list of regions a complaint may be attributed
// to. Model output is matched against it case-insensitively.
var KenyanCounties = []string{
	"Nairobi", "Mombasa", "Kisumu", "Nakuru", "Eldoret", "Thika",
	"Malindi", "Kitale", "Garissa", "Kakamega", "Machakos", "Meru",
	"Nyeri", "Kiambu", "Kajiado", "Narok", "Murang'a", "Embu",
	"Kericho", "Migori", "Siaya", "Kisii", "Bungoma", "Busia",
	"Vihiga", "Bomet", "Homa Bay", "Turkana", "West Pokot", "Samburu",
	"Trans Nzoia", "Uasin Gishu", "Elgeyo Marakwet", "Nandi", "Baringo",
	"Laikipia", "Nyandarua", "Nyamira", "Kirinyaga", "Makueni",
	"Tharaka Nithi", "Kitui", "Marsabit", "Isiolo", "Wajir", "Mandera",
	"Taita Taveta", "Kwale", "Kilifi", "Lamu", "Tana River",
}

// MatchCounty resolves a model-supplied county name to its canonical entry,
// ignoring case and surrounding whitespace. Unrecognized names resolve to
// models.CountyUnknown.
func MatchCounty(name string) string {
	name = strings.TrimSpace(name)
	for _, c := range KenyanCounties {
		if strings.EqualFold(c, name) {
			return c
		}
	}
	return models.CountyUnknown
}
