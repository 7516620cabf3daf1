package store

import (
	"foodies/internal/log"
	"foodies/internal/model"
)

const unsplash = "https://images.unsplash.com/"

// SeedIfEmpty installs the demo dataset when every collection is empty. It
// reports whether anything was written.
func (s *Store) SeedIfEmpty() (bool, error) {
	var seeded model.Document
	err := s.mutate(log.OpSeed, "document", "", func(doc *model.Document) error {
		if !doc.IsEmpty() {
			return errUnchanged
		}
		s.seed(doc)
		seeded = *doc
		return nil
	})
	if err != nil {
		return false, err
	}
	if seeded.IsEmpty() {
		return false, nil
	}
	s.logger.Info("seeded demo data",
		"places", len(seeded.Places),
		"shops", len(seeded.Shops),
		"foods", len(seeded.Foods),
		"trips", len(seeded.Trips),
	)
	return true, nil
}

func (s *Store) seed(doc *model.Document) {
	place := func(name, address, city, state string) model.Place {
		p := s.buildPlace(model.NewPlace{Name: name, Address: address, City: city, State: state})
		doc.Places = append(doc.Places, p)
		return p
	}
	shop := func(name, address string, p model.Place) model.Shop {
		sh := s.buildShop(model.NewShop{Name: name, Address: address, PlaceID: p.ID})
		doc.Shops = append(doc.Shops, sh)
		return sh
	}
	food := func(in model.NewFood) model.Food {
		f := s.buildFood(in)
		doc.Foods = append(doc.Foods, f)
		return f
	}
	trip := func(in model.NewTrip) model.Trip {
		t := s.buildTrip(in)
		doc.Trips = append(doc.Trips, t)
		return t
	}

	p1 := place("Old Town", "123 Main St", "Hanoi", "HN")
	p2 := place("Riverside", "200 River Ave", "Saigon", "HCM")
	p3 := place("Downtown", "45 Central Blvd", "Da Nang", "DN")

	s1 := shop("Pho 24", "Near market", p1)
	s2 := shop("Com Tam 79", "Block B", p2)
	s3 := shop("Banh Mi Hoi An", "Street corner", p3)
	s4 := shop("Cafe Sua Da", "Old Quarter", p1)

	f1 := food(model.NewFood{Name: "Pho Bo", Kind: model.KindNoodle, ShopID: s1.ID, Price: "45000", Rating: model.IntPtr(5), Favorite: true,
		ImageURL: unsplash + "photo-1582878826629-29b7ad1cdc43?w=400"})
	f2 := food(model.NewFood{Name: "Com Tam Suon", Kind: model.KindRice, ShopID: s2.ID, Price: "55000", Rating: model.IntPtr(4),
		ImageURL: unsplash + "photo-1596040033229-a0b0c9e2e6b6?w=400"})
	f3 := food(model.NewFood{Name: "Banh Mi Thit", Kind: model.KindSnack, ShopID: s3.ID, Price: "25000", Rating: model.IntPtr(5), Favorite: true,
		ImageURL: unsplash + "photo-1541592106381-b31e9677c0e5?w=400"})
	f4 := food(model.NewFood{Name: "Ca Phe Sua Da", Kind: model.KindDrink, ShopID: s4.ID, Price: "20000", Rating: model.IntPtr(4),
		ImageURL: unsplash + "photo-1559056199-641a0ac8b55e?w=400"})
	f5 := food(model.NewFood{Name: "Bun Cha", Kind: model.KindNoodle, ShopID: s1.ID, Price: "50000", Rating: model.IntPtr(5)})
	f6 := food(model.NewFood{Name: "Goi Cuon", Kind: model.KindSnack, ShopID: s2.ID, Price: "30000", Rating: model.IntPtr(4), Favorite: true})

	trip(model.NewTrip{
		Date:        "2025-10-15",
		Title:       "Hanoi Food Adventure",
		Description: "A wonderful day exploring street food in Old Town. Started with the iconic Pho Bo, moved on to fresh spring rolls, and ended with iced coffee. The weather was perfect and the food was incredible!",
		PlaceIDs:    []string{p1.ID},
		ShopIDs:     []string{s1.ID, s4.ID},
		FoodIDs:     []string{f1.ID, f4.ID, f5.ID},
		Photos: []string{
			unsplash + "photo-1555396273-367ea4eb4db5?w=400",
			unsplash + "photo-1559056199-641a0ac8b55e?w=400",
		},
		Rating: 5,
		Tags:   []string{"hanoi", "streetfood"},
		Budget: "200000",
		Timeline: []model.TimelineItem{
			{Time: "08:30", Title: "Breakfast", Note: "Pho Bo at Pho 24", ShopID: s1.ID, FoodID: f1.ID, PlaceID: p1.ID},
			{Time: "10:00", Title: "Coffee Break", Note: "Ca Phe Sua Da", ShopID: s4.ID, FoodID: f4.ID, PlaceID: p1.ID},
			{Time: "12:00", Title: "Walk & Explore", Note: "Old Quarter stroll"},
		},
		Activities: []model.Activity{
			{Title: "Visited Old Quarter", Note: "Took photos and tried local snacks"},
			{Title: "Coffee Tasting", Note: "Compared different roasts"},
		},
		Expenses: []model.Expense{
			foodExpense("Pho Bo", 45000, "Food", f1),
			foodExpense("Iced Coffee", 20000, "Drink", f4),
			expense("Taxi", 80000, "Transport"),
		},
	})
	trip(model.NewTrip{
		Date:        "2025-10-20",
		Title:       "Saigon Culinary Tour",
		Description: "Enjoyed amazing rice dishes by the river. The sunset view made the meal even more special. Tried the famous broken rice with grilled pork chop and fresh spring rolls.",
		PlaceIDs:    []string{p2.ID},
		ShopIDs:     []string{s2.ID},
		FoodIDs:     []string{f2.ID, f6.ID},
		Photos:      []string{unsplash + "photo-1596040033229-a0b0c9e2e6b6?w=400"},
		Rating:      4,
		Tags:        []string{"saigon", "river"},
		Budget:      "150000",
		Timeline: []model.TimelineItem{
			{Time: "13:00", Title: "Lunch", Note: "Com Tam Suon by the river", ShopID: s2.ID, FoodID: f2.ID, PlaceID: p2.ID},
			{Time: "15:30", Title: "Afternoon Snack", Note: "Goi Cuon", FoodID: f6.ID},
		},
		Activities: []model.Activity{{Title: "River Walk", Note: "Sunset by the river"}},
		Expenses: []model.Expense{
			foodExpense("Com Tam", 55000, "Food", f2),
			foodExpense("Spring Rolls", 30000, "Food", f6),
		},
	})
	trip(model.NewTrip{
		Date:        "2025-10-25",
		Title:       "Da Nang Street Food Hunt",
		Description: "Quick lunch stop in Da Nang during our road trip. Found an amazing banh mi stall with the crispiest bread and most flavorful filling. A must-visit for any banh mi lover!",
		PlaceIDs:    []string{p3.ID},
		ShopIDs:     []string{s3.ID},
		FoodIDs:     []string{f3.ID},
		Photos: []string{
			unsplash + "photo-1541592106381-b31e9677c0e5?w=400",
			unsplash + "photo-1568254183919-78a4f43a2877?w=400",
		},
		Rating: 5,
		Tags:   []string{"danang", "banhmi"},
		Budget: "80000",
		Timeline: []model.TimelineItem{
			{Time: "11:45", Title: "Banh Mi Stop", Note: "Crunchy bread, perfect filling", ShopID: s3.ID, FoodID: f3.ID, PlaceID: p3.ID},
		},
		Activities: []model.Activity{{Title: "Road Trip Break", Note: "Short stop for food"}},
		Expenses:   []model.Expense{foodExpense("Banh Mi", 25000, "Food", f3)},
	})
	trip(model.NewTrip{
		Date:        "2025-10-28",
		Title:       "Weekend Food Market Tour",
		Description: "Explored the bustling weekend market in Hanoi. Sampled various street foods and discovered some hidden gems. The atmosphere was lively and the vendors were incredibly friendly.",
		PlaceIDs:    []string{p1.ID},
		ShopIDs:     []string{s1.ID, s4.ID},
		FoodIDs:     []string{f1.ID, f4.ID},
		Rating:      4,
		Tags:        []string{"market", "weekend", "hanoi"},
		Budget:      "100000",
		Timeline: []model.TimelineItem{
			{Time: "09:00", Title: "Market Stroll", Note: "Sampling snacks"},
			{Time: "11:00", Title: "Coffee", Note: "Iced coffee break", ShopID: s4.ID, FoodID: f4.ID, PlaceID: p1.ID},
		},
		Activities: []model.Activity{{Title: "Explored Vendors", Note: "Found hidden gems"}},
		Expenses: []model.Expense{
			expense("Snacks", 40000, "Food"),
			foodExpense("Coffee", 20000, "Drink", f4),
		},
	})
	trip(model.NewTrip{
		Date:        "2025-11-01",
		Title:       "Coffee & Snacks Morning",
		Description: "Started the day with Vietnamese iced coffee and some light snacks. Perfect morning routine before work. The coffee was strong and sweet, just the way I like it.",
		PlaceIDs:    []string{p1.ID, p2.ID},
		ShopIDs:     []string{s4.ID, s2.ID},
		FoodIDs:     []string{f4.ID, f6.ID},
		Photos:      []string{unsplash + "photo-1559056199-641a0ac8b55e?w=400"},
		Rating:      4,
		Tags:        []string{"coffee", "morning"},
		Budget:      "70000",
		Timeline: []model.TimelineItem{
			{Time: "07:45", Title: "Morning Coffee", Note: "Cafe Sua Da", ShopID: s4.ID, FoodID: f4.ID, PlaceID: p1.ID},
			{Time: "08:30", Title: "Light Snack", Note: "Goi Cuon", FoodID: f6.ID, PlaceID: p2.ID},
		},
		Activities: []model.Activity{{Title: "Chill Morning", Note: "Relaxed start to the day"}},
		Expenses: []model.Expense{
			foodExpense("Coffee", 20000, "Drink", f4),
			foodExpense("Snack", 30000, "Food", f6),
		},
	})

	tokyo := trip(model.NewTrip{
		Date:        "2025-11-01",
		Title:       "Japan, Tokyo",
		Description: "Main trip container for Tokyo adventures. Add daily journals as entries beneath.",
		Tags:        []string{"japan", "tokyo"},
	})
	trip(model.NewTrip{
		Date:        "2025-11-02",
		Title:       "Coffee & Snacks Morning",
		Description: "Shibuya coffee and snacks run.",
		Rating:      4,
		Tags:        []string{"coffee", "tokyo"},
		ParentID:    &tokyo.ID,
		Expenses:    []model.Expense{expense("Latte", 600, "Drink")},
	})
	trip(model.NewTrip{
		Date:        "2025-11-03",
		Title:       "Weekend Food Market Tour",
		Description: "Explored a local weekend market in Tokyo.",
		Rating:      5,
		Tags:        []string{"market", "tokyo"},
		ParentID:    &tokyo.ID,
		Expenses:    []model.Expense{expense("Snacks", 1200, "Food")},
	})

	kyoto := trip(model.NewTrip{
		Date:        "2025-11-04",
		Title:       "Japan, Kyoto",
		Description: "Main trip container for Kyoto experiences.",
		Tags:        []string{"japan", "kyoto"},
	})
	trip(model.NewTrip{
		Date:        "2025-11-05",
		Title:       "Gion Night Walk",
		Description: "Evening stroll through Gion with street snacks.",
		Rating:      5,
		Tags:        []string{"gion", "streetfood"},
		ParentID:    &kyoto.ID,
		Expenses: []model.Expense{
			expense("Yakitori", 1200, "Food"),
			expense("Matcha Ice Cream", 600, "Dessert"),
		},
		Order: model.IntPtr(0),
	})
	trip(model.NewTrip{
		Date:        "2025-11-06",
		Title:       "Arashiyama Bento Picnic",
		Description: "Bento by the river after bamboo grove walk.",
		Rating:      4,
		Tags:        []string{"arashiyama", "bento"},
		ParentID:    &kyoto.ID,
		Expenses: []model.Expense{
			expense("Bento", 1000, "Food"),
			expense("Train", 400, "Transport"),
		},
		Order: model.IntPtr(1),
	})

	hanoi := trip(model.NewTrip{
		Date:        "2025-11-07",
		Title:       "Vietnam, Hanoi Weekend",
		Description: "Two-day foodie weekend in Hanoi.",
		Tags:        []string{"vietnam", "hanoi", "weekend"},
		Budget:      "300000",
		PlaceIDs:    []string{p1.ID},
	})
	trip(model.NewTrip{
		Date:        "2025-11-08",
		Title:       "Old Quarter Street Food",
		Description: "Pho and banh mi hits in the Old Quarter.",
		Rating:      5,
		Tags:        []string{"streetfood", "oldquarter"},
		ParentID:    &hanoi.ID,
		PlaceIDs:    []string{p1.ID},
		ShopIDs:     []string{s1.ID},
		FoodIDs:     []string{f1.ID, f3.ID},
		Timeline: []model.TimelineItem{
			{Time: "09:00", Title: "Pho Breakfast", ShopID: s1.ID, FoodID: f1.ID, PlaceID: p1.ID},
			{Time: "12:30", Title: "Banh Mi Lunch", FoodID: f3.ID, PlaceID: p1.ID},
		},
		Expenses: []model.Expense{
			foodExpense("Pho Bo", 45000, "Food", f1),
			foodExpense("Banh Mi", 25000, "Food", f3),
		},
		Order: model.IntPtr(0),
	})
	trip(model.NewTrip{
		Date:        "2025-11-09",
		Title:       "Coffee Crawl",
		Description: "Iced coffee and people watching.",
		Rating:      4,
		Tags:        []string{"coffee"},
		ParentID:    &hanoi.ID,
		PlaceIDs:    []string{p1.ID},
		ShopIDs:     []string{s4.ID},
		FoodIDs:     []string{f4.ID},
		Expenses:    []model.Expense{foodExpense("Ca Phe Sua Da", 20000, "Drink", f4)},
		Order:       model.IntPtr(1),
	})

	saigon := trip(model.NewTrip{
		Date:        "2025-11-10",
		Title:       "Vietnam, Saigon Long Weekend",
		Description: "Food-focused long weekend in Saigon.",
		Tags:        []string{"vietnam", "saigon", "weekend"},
		Budget:      "350000",
		PlaceIDs:    []string{p2.ID},
	})
	trip(model.NewTrip{
		Date:        "2025-11-11",
		Title:       "Broken Rice Feast",
		Description: "Iconic com tam with grilled pork.",
		Rating:      5,
		Tags:        []string{"comtam"},
		ParentID:    &saigon.ID,
		PlaceIDs:    []string{p2.ID},
		ShopIDs:     []string{s2.ID},
		FoodIDs:     []string{f2.ID},
		Expenses:    []model.Expense{foodExpense("Com Tam Suon", 55000, "Food", f2)},
		Order:       model.IntPtr(0),
	})
	trip(model.NewTrip{
		Date:        "2025-11-12",
		Title:       "Riverside Evening",
		Description: "Spring rolls by the river.",
		Rating:      4,
		Tags:        []string{"river"},
		ParentID:    &saigon.ID,
		PlaceIDs:    []string{p2.ID},
		FoodIDs:     []string{f6.ID},
		Expenses:    []model.Expense{foodExpense("Goi Cuon", 30000, "Food", f6)},
		Order:       model.IntPtr(1),
	})
}

func expense(label string, amount float64, category string) model.Expense {
	return model.Expense{Label: label, Amount: model.AmountOf(amount), Category: category}
}

func foodExpense(label string, amount float64, category string, f model.Food) model.Expense {
	e := expense(label, amount, category)
	e.RelatedType = model.RelatedFood
	e.RelatedID = f.ID
	return e
}
