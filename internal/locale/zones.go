package locale

// zoneNames are CLDR English long metazone names: standard, then daylight.
// Metazones without daylight time repeat the standard name.
var zoneNames = map[string][2]string{
	"UTC":               {"Coordinated Universal Time", "Coordinated Universal Time"},
	"GMT":               {"Greenwich Mean Time", "Greenwich Mean Time"},
	"British":           {"Greenwich Mean Time", "British Summer Time"},
	"Irish":             {"Greenwich Mean Time", "Irish Standard Time"},
	"Europe_Western":    {"Western European Standard Time", "Western European Summer Time"},
	"Europe_Central":    {"Central European Standard Time", "Central European Summer Time"},
	"Europe_Eastern":    {"Eastern European Standard Time", "Eastern European Summer Time"},
	"Moscow":            {"Moscow Standard Time", "Moscow Summer Time"},
	"Israel":            {"Israel Standard Time", "Israel Daylight Time"},
	"Arabian":           {"Arabian Standard Time", "Arabian Daylight Time"},
	"Gulf":              {"Gulf Standard Time", "Gulf Standard Time"},
	"Iran":              {"Iran Standard Time", "Iran Daylight Time"},
	"Pakistan":          {"Pakistan Standard Time", "Pakistan Summer Time"},
	"India":             {"India Standard Time", "India Standard Time"},
	"Nepal":             {"Nepal Time", "Nepal Time"},
	"Bangladesh":        {"Bangladesh Standard Time", "Bangladesh Summer Time"},
	"Indochina":         {"Indochina Time", "Indochina Time"},
	"Indonesia_Western": {"Western Indonesia Time", "Western Indonesia Time"},
	"Malaysia":          {"Malaysia Time", "Malaysia Time"},
	"Singapore":         {"Singapore Standard Time", "Singapore Standard Time"},
	"China":             {"China Standard Time", "China Daylight Time"},
	"Hong_Kong":         {"Hong Kong Standard Time", "Hong Kong Summer Time"},
	"Taipei":            {"Taipei Standard Time", "Taipei Daylight Time"},
	"Philippines":       {"Philippine Standard Time", "Philippine Summer Time"},
	"Japan":             {"Japan Standard Time", "Japan Daylight Time"},
	"Korea":             {"Korean Standard Time", "Korean Daylight Time"},
	"Australia_Western": {"Australian Western Standard Time", "Australian Western Daylight Time"},
	"Australia_Central": {"Australian Central Standard Time", "Australian Central Daylight Time"},
	"Australia_Eastern": {"Australian Eastern Standard Time", "Australian Eastern Daylight Time"},
	"New_Zealand":       {"New Zealand Standard Time", "New Zealand Daylight Time"},
	"Africa_Western":    {"West Africa Standard Time", "West Africa Summer Time"},
	"Africa_Central":    {"Central Africa Time", "Central Africa Time"},
	"Africa_Eastern":    {"East Africa Time", "East Africa Time"},
	"Africa_Southern":   {"South Africa Standard Time", "South Africa Standard Time"},
	"Atlantic":          {"Atlantic Standard Time", "Atlantic Daylight Time"},
	"Newfoundland":      {"Newfoundland Standard Time", "Newfoundland Daylight Time"},
	"America_Eastern":   {"Eastern Standard Time", "Eastern Daylight Time"},
	"America_Central":   {"Central Standard Time", "Central Daylight Time"},
	"America_Mountain":  {"Mountain Standard Time", "Mountain Daylight Time"},
	"America_Pacific":   {"Pacific Standard Time", "Pacific Daylight Time"},
	"Alaska":            {"Alaska Standard Time", "Alaska Daylight Time"},
	"Hawaii_Aleutian":   {"Hawaii-Aleutian Standard Time", "Hawaii-Aleutian Daylight Time"},
	"Brasilia":          {"Brasilia Standard Time", "Brasilia Summer Time"},
	"Argentina":         {"Argentina Standard Time", "Argentina Summer Time"},
	"Chile":             {"Chile Standard Time", "Chile Summer Time"},
	"Colombia":          {"Colombia Standard Time", "Colombia Summer Time"},
	"Peru":              {"Peru Standard Time", "Peru Summer Time"},
	"Venezuela":         {"Venezuela Time", "Venezuela Time"},
}

// zoneMetazones maps IANA zone IDs to their current CLDR metazone.
var zoneMetazones = map[string]string{
	"UTC":                "UTC",
	"Etc/UTC":            "UTC",
	"Etc/UCT":            "UTC",
	"Universal":          "UTC",
	"Zulu":               "UTC",
	"GMT":                "GMT",
	"Etc/GMT":            "GMT",
	"Iceland":            "GMT",
	"Africa/Abidjan":     "GMT",
	"Africa/Accra":       "GMT",
	"Atlantic/Reykjavik": "GMT",

	"Europe/London": "British",
	"Europe/Dublin": "Irish",

	"Europe/Lisbon":    "Europe_Western",
	"Atlantic/Canary":  "Europe_Western",
	"Atlantic/Madeira": "Europe_Western",

	"Europe/Amsterdam":  "Europe_Central",
	"Europe/Belgrade":   "Europe_Central",
	"Europe/Berlin":     "Europe_Central",
	"Europe/Brussels":   "Europe_Central",
	"Europe/Budapest":   "Europe_Central",
	"Europe/Copenhagen": "Europe_Central",
	"Europe/Luxembourg": "Europe_Central",
	"Europe/Madrid":     "Europe_Central",
	"Europe/Oslo":       "Europe_Central",
	"Europe/Paris":      "Europe_Central",
	"Europe/Prague":     "Europe_Central",
	"Europe/Rome":       "Europe_Central",
	"Europe/Stockholm":  "Europe_Central",
	"Europe/Vienna":     "Europe_Central",
	"Europe/Warsaw":     "Europe_Central",
	"Europe/Zagreb":     "Europe_Central",
	"Europe/Zurich":     "Europe_Central",
	"Africa/Algiers":    "Europe_Central",
	"Africa/Tunis":      "Europe_Central",

	"Europe/Athens":    "Europe_Eastern",
	"Europe/Bucharest": "Europe_Eastern",
	"Europe/Helsinki":  "Europe_Eastern",
	"Europe/Kiev":      "Europe_Eastern",
	"Europe/Kyiv":      "Europe_Eastern",
	"Europe/Riga":      "Europe_Eastern",
	"Europe/Sofia":     "Europe_Eastern",
	"Europe/Tallinn":   "Europe_Eastern",
	"Europe/Vilnius":   "Europe_Eastern",
	"Africa/Cairo":     "Europe_Eastern",
	"Asia/Beirut":      "Europe_Eastern",

	"Europe/Moscow":     "Moscow",
	"Europe/Simferopol": "Moscow",
	"Asia/Jerusalem":    "Israel",
	"Asia/Tel_Aviv":     "Israel",
	"Asia/Riyadh":       "Arabian",
	"Asia/Baghdad":      "Arabian",
	"Asia/Kuwait":       "Arabian",
	"Asia/Qatar":        "Arabian",
	"Asia/Bahrain":      "Arabian",
	"Asia/Dubai":        "Gulf",
	"Asia/Muscat":       "Gulf",
	"Asia/Tehran":       "Iran",
	"Asia/Karachi":      "Pakistan",
	"Asia/Kolkata":      "India",
	"Asia/Calcutta":     "India",
	"Asia/Kathmandu":    "Nepal",
	"Asia/Katmandu":     "Nepal",
	"Asia/Dhaka":        "Bangladesh",
	"Asia/Bangkok":      "Indochina",
	"Asia/Ho_Chi_Minh":  "Indochina",
	"Asia/Saigon":       "Indochina",
	"Asia/Phnom_Penh":   "Indochina",
	"Asia/Vientiane":    "Indochina",
	"Asia/Jakarta":      "Indonesia_Western",
	"Asia/Kuala_Lumpur": "Malaysia",
	"Asia/Singapore":    "Singapore",
	"Singapore":         "Singapore",
	"Asia/Shanghai":     "China",
	"Asia/Chongqing":    "China",
	"PRC":               "China",
	"Asia/Hong_Kong":    "Hong_Kong",
	"Asia/Taipei":       "Taipei",
	"Asia/Manila":       "Philippines",
	"Asia/Tokyo":        "Japan",
	"Japan":             "Japan",
	"Asia/Seoul":        "Korea",

	"Australia/Perth":     "Australia_Western",
	"Australia/Adelaide":  "Australia_Central",
	"Australia/Darwin":    "Australia_Central",
	"Australia/Brisbane":  "Australia_Eastern",
	"Australia/Hobart":    "Australia_Eastern",
	"Australia/Melbourne": "Australia_Eastern",
	"Australia/Sydney":    "Australia_Eastern",
	"Pacific/Auckland":    "New_Zealand",

	"Africa/Lagos":         "Africa_Western",
	"Africa/Kinshasa":      "Africa_Western",
	"Africa/Maputo":        "Africa_Central",
	"Africa/Harare":        "Africa_Central",
	"Africa/Lusaka":        "Africa_Central",
	"Africa/Nairobi":       "Africa_Eastern",
	"Africa/Addis_Ababa":   "Africa_Eastern",
	"Africa/Dar_es_Salaam": "Africa_Eastern",
	"Africa/Johannesburg":  "Africa_Southern",

	"America/Halifax":     "Atlantic",
	"America/Puerto_Rico": "Atlantic",
	"Atlantic/Bermuda":    "Atlantic",
	"America/St_Johns":    "Newfoundland",

	"America/New_York":             "America_Eastern",
	"America/Detroit":              "America_Eastern",
	"America/Toronto":              "America_Eastern",
	"America/Nassau":               "America_Eastern",
	"America/Indiana/Indianapolis": "America_Eastern",
	"America/Kentucky/Louisville":  "America_Eastern",
	"US/Eastern":                   "America_Eastern",
	"EST5EDT":                      "America_Eastern",

	"America/Chicago":     "America_Central",
	"America/Winnipeg":    "America_Central",
	"America/Mexico_City": "America_Central",
	"America/Guatemala":   "America_Central",
	"America/Costa_Rica":  "America_Central",
	"US/Central":          "America_Central",
	"CST6CDT":             "America_Central",

	"America/Denver":   "America_Mountain",
	"America/Edmonton": "America_Mountain",
	"America/Phoenix":  "America_Mountain",
	"America/Boise":    "America_Mountain",
	"US/Mountain":      "America_Mountain",
	"MST7MDT":          "America_Mountain",

	"America/Los_Angeles": "America_Pacific",
	"America/Vancouver":   "America_Pacific",
	"America/Tijuana":     "America_Pacific",
	"US/Pacific":          "America_Pacific",
	"PST8PDT":             "America_Pacific",

	"America/Anchorage": "Alaska",
	"Pacific/Honolulu":  "Hawaii_Aleutian",
	"America/Adak":      "Hawaii_Aleutian",

	"America/Sao_Paulo":              "Brasilia",
	"America/Argentina/Buenos_Aires": "Argentina",
	"America/Buenos_Aires":           "Argentina",
	"America/Santiago":               "Chile",
	"America/Bogota":                 "Colombia",
	"America/Lima":                   "Peru",
	"America/Caracas":                "Venezuela",
}

// ZoneLongName returns the English long name of the IANA zone, in its
// daylight form when dst is set. ok is false for zones without a known
// metazone.
func ZoneLongName(zone string, dst bool) (name string, ok bool) {
	meta, ok := zoneMetazones[zone]
	if !ok {
		return "", false
	}
	names := zoneNames[meta]
	if dst {
		return names[1], true
	}
	return names[0], true
}
