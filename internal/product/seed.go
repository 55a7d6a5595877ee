package product

import "time"

func ptrString(s string) *string { return &s }

func ptrFloat(f float64) *float64 { return &f }

// SampleProducts returns the catalog used by the dev reset endpoint and the
// memory driver on first start.
func SampleProducts(now time.Time) []Product {
	all := []string{"M", "L", "XL"}
	mk := func(name string, price float64, orig *float64, img, anime, category string, isNew bool, discount int) Product {
		return Product{
			Name:          name,
			Price:         price,
			OriginalPrice: orig,
			Images: Images{
				Front: ptrString("/placeholder-" + img + ".jpg"),
				Back:  ptrString("/placeholder-" + img + "-back.jpg"),
			},
			Anime:     anime,
			Category:  category,
			Sizes:     append([]string{}, all...),
			IsNew:     isNew,
			Discount:  discount,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return []Product{
		mk("Gojo Satoru Domain Expansion", 29.99, ptrFloat(39.99), "gojo", "Jujutsu Kaisen", "normal", true, 25),
		mk("Naruto Uzumaki Hokage", 27.99, nil, "naruto", "Naruto", "drop-shoulder", false, 0),
		mk("Luffy Gear 5 Awakening", 32.99, ptrFloat(42.99), "luffy", "One Piece", "normal", true, 23),
		mk("Tanjiro Water Breathing", 26.99, nil, "tanjiro", "Demon Slayer", "normal", false, 0),
		mk("Sung Jin-Woo Shadow Army", 34.99, ptrFloat(44.99), "jinwoo", "Solo Leveling", "drop-shoulder", true, 22),
		mk("Sukuna King of Curses", 31.99, nil, "sukuna", "Jujutsu Kaisen", "normal", false, 0),
		mk("Sasuke Uchiha Sharingan", 28.99, ptrFloat(36.99), "sasuke", "Naruto", "drop-shoulder", false, 22),
		mk("Zoro Three Sword Style", 30.99, nil, "zoro", "One Piece", "normal", false, 0),
	}
}
