// defaults.go - The stock Netfix dataset used when no catalog is configured.
package catalog

// Default returns a fresh copy of the built-in dataset. Callers may mutate it.
func Default() *Catalog {
	return &Catalog{
		Movies:     DefaultMovies(),
		Categories: Categories(defaultCategories...),
		Palette:    DefaultPalette(),
		Clips:      DefaultClips(),
	}
}

// DefaultMovies returns the twelve trailer movies.
func DefaultMovies() []MovieRecord {
	return []MovieRecord{
		{Title: "Cosmic Adventure", Genre: "Sci-Fi", Year: 2025, Rating: 4.8},
		{Title: "The Last Detective", Genre: "Thriller", Year: 2024, Rating: 4.6},
		{Title: "Love in Paris", Genre: "Romance", Year: 2025, Rating: 4.5},
		{Title: "Jungle Quest", Genre: "Adventure", Year: 2024, Rating: 4.7},
		{Title: "Midnight Shadows", Genre: "Horror", Year: 2025, Rating: 4.4},
		{Title: "Laugh Factory", Genre: "Comedy", Year: 2024, Rating: 4.9},
		{Title: "Urban Legend", Genre: "Drama", Year: 2025, Rating: 4.3},
		{Title: "Robot Revolution", Genre: "Sci-Fi", Year: 2024, Rating: 4.7},
		{Title: "Mountain Explorer", Genre: "Documentary", Year: 2025, Rating: 4.8},
		{Title: "Magical Kingdom", Genre: "Fantasy", Year: 2024, Rating: 4.5},
		{Title: "Speed Racers", Genre: "Action", Year: 2025, Rating: 4.6},
		{Title: "Cartoon World", Genre: "Animation", Year: 2024, Rating: 4.9},
	}
}

var defaultCategories = []string{
	"Action", "Comedy", "Drama", "Sci-Fi", "Documentary",
	"Horror", "Romance", "Thriller", "Animation", "Fantasy",
}

// DefaultPalette returns the genre → banner colour table.
func DefaultPalette() Palette {
	return Palette{
		"Action":      "#b41e1e", // 180,30,30
		"Comedy":      "#ffbf00", // 255,191,0
		"Drama":       "#4682b4", // 70,130,180
		"Sci-Fi":      "#4b0082", // 75,0,130
		"Documentary": "#228b22", // 34,139,34
		"Horror":      "#191919", // 25,25,25
		"Romance":     "#db7093", // 219,112,147
		"Thriller":    "#2f4f4f", // 47,79,79
		"Animation":   "#ff8c00", // 255,140,0
		"Fantasy":     "#9400d3", // 148,0,211
	}
}

// DefaultClips returns two stock clips per trailer category.
func DefaultClips() []ClipSource {
	const cdn = "https://cdn.pixabay.com/vimeo/"
	return []ClipSource{
		{URL: cdn + "328428371/explosion-23704.mp4?width=640", Category: "action", Name: "explosion.mp4"},
		{URL: cdn + "190163566/car-5719.mp4?width=640", Category: "action", Name: "car.mp4"},
		{URL: cdn + "295516281/dog-15031.mp4?width=640", Category: "comedy", Name: "dog.mp4"},
		{URL: cdn + "414804510/cat-21768.mp4?width=640", Category: "comedy", Name: "cat.mp4"},
		{URL: cdn + "330285013/sunset-17638.mp4?width=640", Category: "drama", Name: "sunset.mp4"},
		{URL: cdn + "221214950/rain-7622.mp4?width=640", Category: "drama", Name: "rain.mp4"},
		{URL: cdn + "149356071/earth-1809.mp4?width=640", Category: "scifi", Name: "space.mp4"},
		{URL: cdn + "317221840/technology-16394.mp4?width=640", Category: "scifi", Name: "tech.mp4"},
		{URL: cdn + "328428416/nature-17723.mp4?width=640", Category: "documentary", Name: "nature.mp4"},
		{URL: cdn + "371845661/city-24064.mp4?width=640", Category: "documentary", Name: "city.mp4"},
	}
}
