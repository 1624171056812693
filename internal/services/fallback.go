package services

import "yenesuq/internal/models"

// Fallback datasets keep the screens populated when the backend is
// unreachable. They are returned with Source set to SourceFallback so the
// UI can surface the network error alongside the demo data.

func mockCategories() []models.Category {
	return []models.Category{
		{
			ID:    1,
			Name:  "Electronics",
			Image: "/placeholder.svg?height=60&width=60",
			Subcats: []models.Subcategory{
				{ID: 1, Name: "Phones", Image: "/placeholder.svg?height=40&width=40"},
				{ID: 2, Name: "Laptops", Image: "/placeholder.svg?height=40&width=40"},
			},
		},
		{
			ID:    2,
			Name:  "Fashion",
			Image: "/placeholder.svg?height=60&width=60",
			Subcats: []models.Subcategory{
				{ID: 3, Name: "Clothing", Image: "/placeholder.svg?height=40&width=40"},
				{ID: 4, Name: "Shoes", Image: "/placeholder.svg?height=40&width=40"},
			},
		},
	}
}

func mockProducts() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Title:       "Premium Smartphone",
			Price:       25000,
			Description: "Latest smartphone with advanced features",
			Category:    "Electronics",
			Stock:       models.StockIn,
			ProductFor:  models.ForUser,
		},
		{
			ID:          2,
			Title:       "Wireless Headphones",
			Price:       5500,
			Description: "High-quality wireless headphones",
			Category:    "Electronics",
			Stock:       models.StockIn,
			ProductFor:  models.ForUser,
		},
		{
			ID:          3,
			Title:       "Business Laptop",
			Price:       45000,
			Description: "Professional laptop for business use",
			Category:    "Electronics",
			Stock:       models.StockLimited,
			ProductFor:  models.ForSeller,
		},
	}
}

func mockNewArrivals() []models.Product {
	return []models.Product{
		{ID: 1, Title: "Latest Smartphone Pro", Price: 28000, Description: "Brand new flagship smartphone", Stock: models.StockIn},
		{ID: 2, Title: "Wireless Earbuds Pro", Price: 4500, Description: "Premium wireless earbuds", Stock: models.StockIn},
		{ID: 3, Title: "Smart Watch Series X", Price: 12000, Description: "Advanced fitness tracking", Stock: models.StockLimited},
		{ID: 4, Title: "Gaming Laptop Ultra", Price: 55000, Description: "High-performance gaming laptop", Stock: models.StockIn},
	}
}

func mockSubcategoryProducts() []models.Product {
	return []models.Product{
		{ID: 1, Title: "Premium Product 1", Price: 1500, Stock: models.StockIn},
		{ID: 2, Title: "Quality Item 2", Price: 2300, Stock: models.StockIn},
		{ID: 3, Title: "Special Offer 3", Price: 890, Stock: models.StockLimited},
	}
}

func mockProductDetail(id int) *models.Product {
	return &models.Product{
		ID:          id,
		Title:       "Fresh Highland Vegetables",
		Price:       175,
		Description: "Fresh quality produce direct from local suppliers",
		Category:    "Groceries",
		Stock:       models.StockIn,
		ProductFor:  models.ForUser,
		Brand:       "Yene Suq Store",
	}
}

func mockOrders() []models.Order {
	return []models.Order{
		{
			ID:              1,
			OrderNumber:     "YS-2024-001",
			TotalAmount:     2450.75,
			PaymentStatus:   "paid",
			OrderStatus:     "delivered",
			CreatedAt:       "2024-01-15T10:30:00Z",
			ShippingAddress: "Bole, Addis Ababa",
			CustomerName:    "John Doe",
			CustomerPhone:   "+251911234567",
			DeliveryFee:     150,
			ServiceFee:      75,
			Items: []models.OrderItem{
				{ID: 1, Title: "ብሮኪሊ 20-50", Price: 175, Quantity: 2, Image: "/placeholder.svg?height=60&width=60"},
				{ID: 2, Title: "ካሮት 30-60", Price: 120, Quantity: 3, Image: "/placeholder.svg?height=60&width=60"},
			},
		},
		{
			ID:              2,
			OrderNumber:     "YS-2024-002",
			TotalAmount:     1850.5,
			PaymentStatus:   "pending",
			OrderStatus:     "processing",
			CreatedAt:       "2024-01-20T14:15:00Z",
			ShippingAddress: "Kazanchis, Addis Ababa",
			CustomerName:    "Jane Smith",
			CustomerPhone:   "+251922345678",
			DeliveryFee:     100,
			ServiceFee:      75,
			Items: []models.OrderItem{
				{ID: 3, Title: "ቲማቲም 25-45", Price: 95, Quantity: 5, Image: "/placeholder.svg?height=60&width=60"},
			},
		},
		{
			ID:              3,
			OrderNumber:     "YS-2024-003",
			TotalAmount:     3200.25,
			PaymentStatus:   "paid",
			OrderStatus:     "shipped",
			CreatedAt:       "2024-01-22T09:45:00Z",
			ShippingAddress: "Piassa, Addis Ababa",
			CustomerName:    "Abebe Kebede",
			CustomerPhone:   "+251933456789",
			DeliveryFee:     192,
			ServiceFee:      75,
			Items: []models.OrderItem{
				{ID: 4, Title: "አቮካዶ 15-35", Price: 140, Quantity: 4, Image: "/placeholder.svg?height=60&width=60"},
			},
		},
	}
}

func mockUserDetails() *models.UserDetails {
	return &models.UserDetails{
		ID:            1,
		Name:          "John Doe",
		Email:         "john@example.com",
		WalletBalance: 1250.75,
		BankName:      "Commercial Bank of Ethiopia",
		AccountNumber: "1234567890",
		Agent:         true,
		ReferralCode:  "REF123456",
	}
}
