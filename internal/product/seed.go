package product

import (
	"github.com/shopspring/decimal"
)

func vnd(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

// Demo returns the storefront's demo drink for the given id: the traditional
// phin drip coffee with its full size and temperature ladder. Prices are in
// đồng.
func Demo(id string) Product {
	return Product{
		ID:          id,
		Name:        "Cà Phê Phin Truyền Thống",
		NameEn:      "Traditional Vietnamese Drip Coffee",
		Description: "Cà phê Việt Nam truyền thống pha bằng phin với sữa đặc, hương vị đậm đà đặc trưng",
		BasePrice:   vnd(25000),
		Images: []string{
			"/placeholder.svg?height=400&width=400",
			"/placeholder.svg?height=400&width=400",
			"/placeholder.svg?height=400&width=400",
			"/placeholder.svg?height=400&width=400",
		},
		Rating:   4.8,
		Reviews:  127,
		PrepTime: "5-7 phút",
		Category: "coffee",
		Popular:  true,
		Sizes: []SizeVariant{
			{ID: "small", Name: "Nhỏ", NameEn: "Small", Volume: "150ml", Surcharge: vnd(0)},
			{ID: "medium", Name: "Vừa", NameEn: "Medium", Volume: "200ml", Surcharge: vnd(5000)},
			{ID: "large", Name: "Lớn", NameEn: "Large", Volume: "250ml", Surcharge: vnd(10000)},
			{ID: "extra", Name: "Đặc Biệt", NameEn: "Extra Large", Volume: "300ml", Surcharge: vnd(15000)},
		},
		Temperatures: []TemperatureVariant{
			{ID: "hot", Name: "Nóng", NameEn: "Hot"},
			{ID: "iced", Name: "Đá", NameEn: "Iced"},
		},
	}
}

// DemoCatalog returns the seed catalog for a fresh database.
func DemoCatalog() []Product {
	phin := Demo("ca-phe-phin")

	egg := Demo("ca-phe-trung")
	egg.Name = "Cà Phê Trứng"
	egg.NameEn = "Vietnamese Egg Coffee"
	egg.Description = "Cà phê trứng Hà Nội với lớp kem trứng béo ngậy"
	egg.BasePrice = vnd(35000)
	egg.Rating = 4.9
	egg.Reviews = 98
	egg.Popular = false

	bacXiu := Demo("bac-xiu")
	bacXiu.Name = "Bạc Xỉu"
	bacXiu.NameEn = "White Coffee with Condensed Milk"
	bacXiu.Description = "Sữa đặc và sữa tươi pha cùng một phần cà phê phin"
	bacXiu.BasePrice = vnd(30000)
	bacXiu.Rating = 4.6
	bacXiu.Reviews = 64
	bacXiu.Popular = false

	return []Product{phin, egg, bacXiu}
}
