package resolve

// aliasTable maps normalized alternate spellings (sponsor prefixes,
// historical names, native-language names, common abbreviations) to the
// normalized canonical key. Both sides are stored pre-normalized so
// lookups stay a single map read.
var aliasTable = map[string]string{
	// England
	"manutd":                "manchesterunited",
	"manunited":             "manchesterunited",
	"mancity":               "manchestercity",
	"spurs":                 "tottenhamhotspur",
	"tottenham":             "tottenhamhotspur",
	"wolves":                "wolverhamptonwanderers",
	"westham":               "westhamunited",
	"newcastle":             "newcastleunited",
	"brightonandhovealbion": "brighton",
	"brightonhovealbion":    "brighton",
	"nottmforest":           "nottinghamforest",
	"sheffieldutd":          "sheffieldunited",
	"leeds":                 "leedsunited",

	// Spain
	"atleticodemadrid":     "atleticomadrid",
	"atletimadrid":         "atleticomadrid",
	"athleticbilbao":       "athleticclub",
	"fcbarcelona":          "barcelona",
	"barca":                "barcelona",
	"realsociedaddefutbol": "realsociedad",

	// Germany
	"fcbayernmunchen":         "bayernmunich",
	"bayernmunchen":           "bayernmunich",
	"fcbayern":                "bayernmunich",
	"borussiamonchengladbach": "monchengladbach",
	"gladbach":                "monchengladbach",
	"bvb":                     "borussiadortmund",
	"dortmund":                "borussiadortmund",
	"bayer04leverkusen":       "bayerleverkusen",
	"rbleipzig":               "rasenballsportleipzig",

	// Italy
	"internazionale":         "intermilan",
	"fcinternazionalemilano": "intermilan",
	"inter":                  "intermilan",
	"acmilan":                "milan",
	"juve":                   "juventus",
	"asroma":                 "roma",
	"sscnapoli":              "napoli",

	// France
	"psg":          "parissaintgermain",
	"parissg":      "parissaintgermain",
	"saintetienne": "asse",
	"om":           "olympiquedemarseille",
	"marseille":    "olympiquedemarseille",
	"ol":           "olympiquelyonnais",
	"lyon":         "olympiquelyonnais",
}

// lookupAlias resolves a normalized key through the alias table.
func lookupAlias(key string) (string, bool) {
	canonical, ok := aliasTable[key]
	return canonical, ok
}

// RegisterAlias adds an alias at runtime; both arguments may be raw
// display names. Later registrations win, which lets a league-specific
// table override the built-in defaults.
func RegisterAlias(alias, canonical string) {
	aliasTable[Resolve(alias)] = Resolve(canonical)
}
