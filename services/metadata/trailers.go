package metadata

// trailerIDs maps well-known titles to their official YouTube trailer. Titles
// missing here fall through to a live YouTube scrape.
var trailerIDs = map[string]string{
	"Inception":                          "YoHD9XEInc0",
	"Interstellar":                       "zSWdZVtXT7E",
	"The Dark Knight":                    "EXeTwQWrcwY",
	"Dune":                               "n9xhJrPXop4",
	"Oppenheimer":                        "uYPbbksJxIg",
	"Breaking Bad":                       "HhesaQXLuRY",
	"Stranger Things":                    "b9EkMc79ZSU",
	"The Matrix":                         "vKQi3bBA1y8",
	"Avatar":                             "5PSNL1qE6VY",
	"Avengers: Endgame":                  "TcMBFSGVi1c",
	"Fight Club":                         "qtRKdVHc-cE",
	"Pulp Fiction":                       "s7EdQ4FqbhY",
	"The Shawshank Redemption":           "PLl99DlL6b4",
	"Forrest Gump":                       "bLvqoHBptjg",
	"Gladiator":                          "owK1qxDselE",
	"The Godfather":                      "UaVTIH8mujA",
	"Parasite":                           "5xH0HfJHsaY",
	"Joker":                              "zAGVQLHvwOY",
	"Spider-Man: No Way Home":            "JfVOs4VSpmA",
	"Top Gun: Maverick":                  "giXco2jaZ_4",
	"Barbie":                             "pBk4NYhUOQM",
	"Succession":                         "OzY2r24iWTE",
	"The Bear":                           "yBmeI8l-4zY",
	"House of the Dragon":                "DotnJ7tTA34",
	"The Last of Us":                     "uLtkt8BonwM",
	"Blade Runner 2049":                  "gCcx85zbxz4",
	"Mad Max: Fury Road":                 "hEJnMQG9ev8",
	"The Social Network":                 "lB95KLmpLR4",
	"La La Land":                         "0pdqf4P9MB8",
	"Whiplash":                           "7d_jQycdQGo",
	"Arrival":                            "tFMo3UJ4B4g",
	"Get Out":                            "DzfpyUB6Lgw",
	"Hereditary":                         "V6wWKNij_1M",
	"Midsommar":                          "1Vnghdsjmd0",
	"Everything Everywhere All At Once":  "wxN1T1uxQ2g",
	"The Batman":                         "mqqft2x_Aa4",
	"Dune: Part Two":                     "Way9Dexny3w",
	"Civil War":                          "aDyQxtgKWbs",
	"Poor Things":                        "RlbR5N6veqw",
	"Killers of the Flower Moon":         "EP34Yoxs3FQ",
	"Past Lives":                         "kA244xewjcI",
	"Anatomy of a Fall":                  "fTrsp5FGkEM",
	"Zone of Interest":                   "GFKnMWh-mMI",
	"Godzilla Minus One":                 "r7DqccP1Q_4",
	"Boy and the Heron":                  "t5khm-VjEu4",
}
