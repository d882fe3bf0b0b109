package metadata

import (
	"fmt"
	"strconv"
	"strings"

	"sutra/models"
)

// builtinTitles is the offline dataset served when the upstream API is
// unreachable or out of quota. A handful of well-known titles is enough to
// keep the UI browsable during an outage.
var builtinTitles = []models.Media{
	{
		IMDBID:     "tt0468569",
		Title:      "The Dark Knight",
		Year:       "2008",
		MediaType:  "movie",
		Poster:     "https://m.media-amazon.com/images/M/MV5BMTMxNTMwODM0NF5BMl5BanBnXkFtZTcwODAyMTk2Mw@@._V1_SX300.jpg",
		Plot:       "When the menace known as the Joker wreaks havoc and chaos on the people of Gotham, Batman must accept one of the greatest psychological and physical tests of his ability to fight injustice.",
		Rated:      "PG-13",
		Released:   "18 Jul 2008",
		Runtime:    "152 min",
		Genre:      "Action, Crime, Drama",
		Director:   "Christopher Nolan",
		Writer:     "Jonathan Nolan, Christopher Nolan, David S. Goyer",
		Actors:     "Christian Bale, Heath Ledger, Aaron Eckhart",
		Language:   "English, Mandarin",
		Country:    "United States, United Kingdom",
		Awards:     "Won 2 Oscars. 159 wins & 163 nominations total",
		IMDBRating: "9.0",
		IMDBVotes:  "2,800,000",
		Metascore:  "84",
		BoxOffice:  "$534,858,444",
		Production: "Warner Bros.",
		Trailers: []models.Trailer{
			{Language: "English", URL: "https://www.youtube.com/watch?v=EXeTwQWrcwY", Title: "Official Trailer"},
			{Language: "Spanish", URL: "https://www.youtube.com/watch?v=vpzV752LurA", Title: "Tráiler Oficial"},
			{Language: "French", URL: "https://www.youtube.com/watch?v=9j9s2s2s2s2", Title: "Bande Annonce"},
		},
	},
	{
		IMDBID:       "tt4574334",
		Title:        "Stranger Things",
		Year:         "2016–",
		MediaType:    "series",
		Poster:       "https://m.media-amazon.com/images/M/MV5BMDZkYmVhNjMtNWU4MC00MDQxLWE3MjYtZGMzZWI1ZjhlOWJmXkEyXkFqcGdeQXVyMTkxNjUyNQ@@._V1_SX300.jpg",
		Plot:         "When a young boy disappears, his mother, a police chief and his friends must confront terrifying supernatural forces in order to get him back.",
		Rated:        "TV-14",
		Released:     "15 Jul 2016",
		Runtime:      "51 min",
		Genre:        "Drama, Fantasy, Horror",
		Director:     "N/A",
		Writer:       "Matt Duffer, Ross Duffer",
		Actors:       "Millie Bobby Brown, Finn Wolfhard, Winona Ryder",
		Language:     "English",
		Country:      "United States",
		Awards:       "Won 12 Primetime Emmys. 106 wins & 373 nominations total",
		IMDBRating:   "8.7",
		IMDBVotes:    "1,300,000",
		Metascore:    "N/A",
		TotalSeasons: "4",
		Trailers: []models.Trailer{
			{Language: "English", URL: "https://www.youtube.com/watch?v=yQEondeGvKo", Title: "Season 4 Trailer"},
		},
	},
	{
		IMDBID:     "tt0816692",
		Title:      "Interstellar",
		Year:       "2014",
		MediaType:  "movie",
		Poster:     "https://m.media-amazon.com/images/M/MV5BZjdkOTU3MDktN2IxOS00OGEyLWFmMjktY2FiMmZkNWIyODZiXkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_SX300.jpg",
		Plot:       "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.",
		Rated:      "PG-13",
		Released:   "07 Nov 2014",
		Runtime:    "169 min",
		Genre:      "Adventure, Drama, Sci-Fi",
		Director:   "Christopher Nolan",
		Writer:     "Jonathan Nolan, Christopher Nolan",
		Actors:     "Matthew McConaughey, Anne Hathaway, Jessica Chastain",
		Language:   "English",
		Country:    "United States, United Kingdom, Canada",
		Awards:     "Won 1 Oscar. 44 wins & 148 nominations total",
		IMDBRating: "8.7",
		IMDBVotes:  "2,000,000",
		Metascore:  "74",
		BoxOffice:  "$188,020,017",
		Production: "Paramount Pictures",
	},
	{
		IMDBID:     "tt1375666",
		Title:      "Inception",
		Year:       "2010",
		MediaType:  "movie",
		Poster:     "https://m.media-amazon.com/images/M/MV5BMjAxMzY3NjcxNF5BMl5BanBnXkFtZTcwNTI5OTM0Mw@@._V1_SX300.jpg",
		Plot:       "A thief who steals corporate secrets through the use of dream-sharing technology is given the inverse task of planting an idea into the mind of a C.E.O.",
		Rated:      "PG-13",
		Released:   "16 Jul 2010",
		Runtime:    "148 min",
		Genre:      "Action, Adventure, Sci-Fi",
		Director:   "Christopher Nolan",
		Writer:     "Christopher Nolan",
		Actors:     "Leonardo DiCaprio, Joseph Gordon-Levitt, Elliot Page",
		Language:   "English, Japanese, French",
		Country:    "United States, United Kingdom",
		Awards:     "Won 4 Oscars. 157 wins & 220 nominations total",
		IMDBRating: "8.8",
		IMDBVotes:  "2,500,000",
		Metascore:  "74",
		BoxOffice:  "$292,576,195",
		Production: "Warner Bros.",
	},
	{
		IMDBID:     "tt0109830",
		Title:      "Forrest Gump",
		Year:       "1994",
		MediaType:  "movie",
		Poster:     "https://m.media-amazon.com/images/M/MV5BNWIwODRlZTUtY2U3ZS00Yzg1LWJhNzYtMmZiYmEyNmU1NjMzXkEyXkFqcGdeQXVyMTQxNzMzNDI@._V1_SX300.jpg",
		Plot:       "The history of the United States from the 1950s to the '70s unfolds from the perspective of an Alabama man with an IQ of 75, who yearns to be reunited with his childhood sweetheart.",
		Rated:      "PG-13",
		Released:   "06 Jul 1994",
		Runtime:    "142 min",
		Genre:      "Drama, Romance",
		Director:   "Robert Zemeckis",
		Writer:     "Winston Groom, Eric Roth",
		Actors:     "Tom Hanks, Robin Wright, Gary Sinise",
		Language:   "English",
		Country:    "United States",
		Awards:     "Won 6 Oscars. 50 wins & 75 nominations total",
		IMDBRating: "8.8",
		IMDBVotes:  "2,200,000",
		Metascore:  "82",
		BoxOffice:  "$330,455,270",
		Production: "Paramount Pictures",
	},
	{
		IMDBID:     "tt0137523",
		Title:      "Fight Club",
		Year:       "1999",
		MediaType:  "movie",
		Poster:     "https://m.media-amazon.com/images/M/MV5BNDIzNDU0YzEtYzE5Ni00ZjlkLTk5ZjgtNjM3NWE4YzA3Nzk3XkEyXkFqcGdeQXVyMjUzOTY1NTc@._V1_SX300.jpg",
		Plot:       "An insomniac office worker and a devil-may-care soap maker form an underground fight club that evolves into much more.",
		Rated:      "R",
		Released:   "15 Oct 1999",
		Runtime:    "139 min",
		Genre:      "Drama",
		Director:   "David Fincher",
		Writer:     "Chuck Palahniuk, Jim Uhls",
		Actors:     "Brad Pitt, Edward Norton, Meat Loaf",
		Language:   "English",
		Country:    "Germany, United States",
		Awards:     "Nominated for 1 Oscar. 11 wins & 38 nominations total",
		IMDBRating: "8.8",
		IMDBVotes:  "2,300,000",
		Metascore:  "66",
		BoxOffice:  "$37,030,102",
		Production: "20th Century Fox",
	},
	{
		IMDBID:       "tt0944947",
		Title:        "Game of Thrones",
		Year:         "2011–2019",
		MediaType:    "series",
		Poster:       "https://m.media-amazon.com/images/M/MV5BN2IzYzBiOTQtNGZmMi00NDI5LTgxMzMtN2EzZjA1NjhlOGMxXkEyXkFqcGdeQXVyNjAwNDUxODI@._V1_SX300.jpg",
		Plot:         "Nine noble families fight for control over the lands of Westeros, while an ancient enemy returns after being dormant for millennia.",
		Rated:        "TV-MA",
		Released:     "17 Apr 2011",
		Runtime:      "57 min",
		Genre:        "Action, Adventure, Drama",
		Director:     "N/A",
		Writer:       "David Benioff, D.B. Weiss",
		Actors:       "Emilia Clarke, Peter Dinklage, Kit Harington",
		Language:     "English",
		Country:      "United States, United Kingdom",
		Awards:       "Won 59 Primetime Emmys. 389 wins & 634 nominations total",
		IMDBRating:   "9.2",
		IMDBVotes:    "2,200,000",
		Metascore:    "N/A",
		TotalSeasons: "8",
	},
	{
		IMDBID:       "tt0903747",
		Title:        "Breaking Bad",
		Year:         "2008–2013",
		MediaType:    "series",
		Poster:       "https://m.media-amazon.com/images/M/MV5BYmQ4YWMxYjUtNjZmYi00MDQ1LWFjMjMtNjA5ZDdiYjdiODU5XkEyXkFqcGdeQXVyMTMzNDExODE5._V1_SX300.jpg",
		Plot:         "A chemistry teacher diagnosed with inoperable lung cancer turns to manufacturing and selling methamphetamine with a former student in order to secure his family's future.",
		Rated:        "TV-MA",
		Released:     "20 Jan 2008",
		Runtime:      "49 min",
		Genre:        "Crime, Drama, Thriller",
		Director:     "N/A",
		Writer:       "Vince Gilligan",
		Actors:       "Bryan Cranston, Aaron Paul, Anna Gunn",
		Language:     "English, Spanish",
		Country:      "United States",
		Awards:       "Won 16 Primetime Emmys. 240 wins & 319 nominations total",
		IMDBRating:   "9.5",
		IMDBVotes:    "2,100,000",
		Metascore:    "N/A",
		TotalSeasons: "5",
	},
	{
		IMDBID:     "tt0133093",
		Title:      "The Matrix",
		Year:       "1999",
		MediaType:  "movie",
		Poster:     "https://m.media-amazon.com/images/M/MV5BNzQzOTk3OTAtNDQ0Zi00ZTVkLWI0MTEtMDllZjNkYzNjNTc4L2ltYWdlXkEyXkFqcGdeQXVyNjU0OTQ0OTY@._V1_SX300.jpg",
		Plot:       "When a beautiful stranger leads computer hacker Neo to a forbidding underworld, he discovers the shocking truth--the life he knows is the elaborate deception of an evil cyber-intelligence.",
		Rated:      "R",
		Released:   "31 Mar 1999",
		Runtime:    "136 min",
		Genre:      "Action, Sci-Fi",
		Director:   "Lana Wachowski, Lilly Wachowski",
		Writer:     "Lilly Wachowski, Lana Wachowski",
		Actors:     "Keanu Reeves, Laurence Fishburne, Carrie-Anne Moss",
		Language:   "English",
		Country:    "United States",
		Awards:     "Won 4 Oscars. 42 wins & 51 nominations total",
		IMDBRating: "8.7",
		IMDBVotes:  "2,000,000",
		Metascore:  "73",
		BoxOffice:  "$172,076,928",
		Production: "Warner Bros.",
	},
}

// BuiltinTitles returns a copy of the offline dataset. Other services use it
// as seed material, so callers may mutate the returned slice freely.
func BuiltinTitles() []models.Media {
	out := make([]models.Media, len(builtinTitles))
	copy(out, builtinTitles)
	return out
}

func builtinSearch(query, mediaType string) *models.SearchResult {
	q := strings.ToLower(query)
	var matches []models.Media
	for _, m := range builtinTitles {
		if !strings.Contains(strings.ToLower(m.Title), q) {
			continue
		}
		if mediaType != "" && m.MediaType != mediaType {
			continue
		}
		matches = append(matches, m)
	}
	return &models.SearchResult{
		Search:       matches,
		TotalResults: strconv.Itoa(len(matches)),
		Page:         1,
	}
}

func builtinDetails(imdbID string) *models.Media {
	for i := range builtinTitles {
		if builtinTitles[i].IMDBID == imdbID {
			m := builtinTitles[i]
			return &m
		}
	}
	return nil
}

// builtinSeason fabricates a plausible episode listing for outage fallback.
// Deterministic so repeated requests for the same season agree.
func builtinSeason(imdbID string, season int) *models.Season {
	const episodeCount = 8
	episodes := make([]models.Episode, 0, episodeCount)
	for i := 1; i <= episodeCount; i++ {
		episodes = append(episodes, models.Episode{
			Title:      fmt.Sprintf("Chapter %d: The Unfolding", i),
			Released:   fmt.Sprintf("202%d-0%d-15", season%4, (i%9)+1),
			Episode:    strconv.Itoa(i),
			IMDBRating: fmt.Sprintf("%.1f", 7.0+float64((i*3)%20)/10),
			IMDBID:     fmt.Sprintf("mock-ep-%s-%d-%d", imdbID, season, i),
		})
	}
	return &models.Season{
		Season:       season,
		TotalSeasons: "5",
		Episodes:     episodes,
	}
}
