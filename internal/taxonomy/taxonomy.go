package taxonomy

import "strings"

// Anime describes one of the series the catalog is organised around.
type Anime struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Animes lists the supported series in display order. Product.Anime must be
// one of the Name values.
var Animes = []Anime{
	{
		Slug:        "naruto",
		Name:        "Naruto",
		Description: "Follow the ninja way with Naruto Uzumaki as he dreams of becoming Hokage.",
	},
	{
		Slug:        "jujutsu-kaisen",
		Name:        "Jujutsu Kaisen",
		Description: "Join Yuji Itadori and his fellow sorcerers as they battle cursed spirits.",
	},
	{
		Slug:        "one-piece",
		Name:        "One Piece",
		Description: "Set sail with Monkey D. Luffy and the Straw Hat Pirates on the Grand Line.",
	},
	{
		Slug:        "demon-slayer",
		Name:        "Demon Slayer",
		Description: "Join Tanjiro Kamado in his quest to save his sister and defeat demons.",
	},
	{
		Slug:        "solo-leveling",
		Name:        "Solo Leveling",
		Description: "Rise from E-rank to S-rank hunter with Sung Jin-Woo and his Shadow Army.",
	},
}

// Categories are the supported apparel cuts.
var Categories = []string{"normal", "drop-shoulder"}

// Sizes are the supported garment sizes, smallest first.
var Sizes = []string{"M", "L", "XL"}

// IsAnime reports whether name is a supported series name.
func IsAnime(name string) bool {
	for _, a := range Animes {
		if a.Name == name {
			return true
		}
	}
	return false
}

// IsCategory reports whether c is a supported apparel category.
func IsCategory(c string) bool {
	return contains(Categories, c)
}

// IsSize reports whether s is a supported size.
func IsSize(s string) bool {
	return contains(Sizes, s)
}

// AnimeBySlug looks a series up by its URL slug, case-insensitively.
func AnimeBySlug(slug string) (Anime, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, a := range Animes {
		if a.Slug == slug {
			return a, true
		}
	}
	return Anime{}, false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
