package web

import (
	"golang.org/x/text/language"
)

const (
	LangEnglish = "en"
	LangHausa   = "ha"
)

// LangKey is the echo context key holding the resolved language code.
const LangKey = "lang"

type Locale struct {
	Code string
	Name string
}

var Locales = []Locale{{LangEnglish, "English"}, {LangHausa, "Hausa"}}

var matcher = language.NewMatcher([]language.Tag{language.English, language.MustParse(LangHausa)})

// Supported reports whether code has a string table.
func Supported(code string) bool {
	_, ok := messages[code]
	return ok
}

// MatchAcceptLanguage picks the best supported language for an
// Accept-Language header, or "" when nothing matches.
func MatchAcceptLanguage(header string) string {
	if header == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return ""
	}
	return Locales[idx].Code
}

// T looks up key in lang, then English, then returns the key itself.
func T(lang, key string) string {
	if s, ok := messages[lang][key]; ok {
		return s
	}
	if s, ok := messages[LangEnglish][key]; ok {
		return s
	}
	return key
}

var messages = map[string]map[string]string{
	LangEnglish: {
		"app_title":       "AgroSmart Farmer Registry",
		"nav_home":        "Home",
		"nav_register":    "Register Farmer",
		"nav_dashboard":   "Dashboard",
		"nav_admin":       "Admin",
		"nav_map":         "Map",
		"nav_weather":     "Add Weather",
		"home_intro":      "Register farmers, record local weather and see where crops are grown.",
		"advisory_title":  "Today's indicator",
		"advisory_stub":   "Advisory output is a placeholder, not a forecast.",
		"condition":       "Condition",
		"seed":            "Suggested seed",
		"flood_risk":      "Flood risk",
		"rainfall":        "Rainfall (mm)",
		"register_title":  "Farmer Registration",
		"id":              "ID",
		"name":            "Name",
		"state":           "State",
		"lga":             "LGA",
		"location":        "Location",
		"crop":            "Crop",
		"phone":           "Phone",
		"photo":           "Farmer photo",
		"farm_photo":      "Farm photo",
		"select_state":    "Select state",
		"select_lga":      "Select LGA",
		"submit":          "Submit",
		"photo_hint":      "PNG, JPG or GIF only.",
		"dashboard_title": "Farmer Dashboard",
		"filter":          "Filter",
		"search":          "Search name or crop",
		"all_states":      "All states",
		"by_state":        "Farmers per state",
		"recent":          "Recent registrations",
		"results":         "Matching farmers",
		"total":           "Total",
		"no_records":      "No farmers registered yet.",
		"form_error":      "Please fill in the required field:",
		"crop_advice":     "Crop advice",
		"download_csv":    "Download CSV",
		"download_xlsx":   "Download Excel",
		"download_pdf":    "Download PDF",
		"admin_title":     "Admin Dashboard",
		"admin_search":    "Search by Name, Location, or Crop",
		"lga_title":       "Farmers in",
		"weather_title":   "Add Weather Observation",
		"temperature":     "Temperature (°C)",
		"season":          "Season",
		"saved":           "Observation saved.",
		"recorded_at":     "Recorded",
		"registered_at":   "Registered",
		"map_title":       "Farmer Map",
		"crop_filter":     "Filter by crop",
		"count":           "Farmers",
		"language":        "Language",
	},
	LangHausa: {
		"app_title":       "Rajistar Manoma ta AgroSmart",
		"nav_home":        "Gida",
		"nav_register":    "Yi Rajistar Manomi",
		"nav_dashboard":   "Dashbod",
		"nav_admin":       "Admin",
		"nav_map":         "Taswira",
		"nav_weather":     "Ƙara Yanayi",
		"home_intro":      "Yi rajistar manoma, rubuta yanayin gari kuma ka ga inda ake noman amfanin gona.",
		"advisory_title":  "Alamar yau",
		"condition":       "Yanayi",
		"seed":            "Irin da aka ba da shawara",
		"flood_risk":      "Haɗarin ambaliya",
		"rainfall":        "Ruwan sama (mm)",
		"register_title":  "Rajistar Manomi",
		"name":            "Suna",
		"state":           "Jiha",
		"lga":             "Karamar Hukuma",
		"location":        "Wuri",
		"crop":            "Amfanin Gona",
		"phone":           "Waya",
		"photo":           "Hoton manomi",
		"farm_photo":      "Hoton gona",
		"select_state":    "Zaɓi jiha",
		"select_lga":      "Zaɓi karamar hukuma",
		"submit":          "Aika",
		"dashboard_title": "Dashbod na Manoma",
		"filter":          "Tace",
		"search":          "Bincika suna ko amfanin gona",
		"all_states":      "Duk jihohi",
		"by_state":        "Manoma a kowace jiha",
		"recent":          "Sabbin rajista",
		"results":         "Manoman da suka dace",
		"total":           "Jimla",
		"no_records":      "Babu manomin da aka yi wa rajista tukuna.",
		"form_error":      "Da fatan a cika wannan filin:",
		"download_csv":    "Sauke CSV",
		"admin_title":     "Dashbod ɗin Admin",
		"admin_search":    "Bincika da Suna, Wuri, ko Amfanin Gona",
		"lga_title":       "Manoma a",
		"weather_title":   "Ƙara Bayanan Yanayi",
		"season":          "Lokaci",
		"saved":           "An adana bayanan.",
		"map_title":       "Taswirar Manoma",
		"count":           "Manoma",
		"language":        "Harshe",
	},
}
